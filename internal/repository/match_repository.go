package repository

import (
	"context"

	"github.com/dateit-app/dateit-backend/internal/domain"
	"github.com/jmoiron/sqlx"
)

type MatchRepository interface {
	// Create inserts a new record for the pair. Returns
	// domain.ErrMatchExists when the unordered-pair unique index
	// rejects the insert (a concurrent writer won).
	Create(ctx context.Context, tx *sqlx.Tx, match *domain.Match) error
	GetByID(ctx context.Context, id int) (*domain.Match, error)
	// GetByUsers looks the pair up in either orientation.
	GetByUsers(ctx context.Context, tx *sqlx.Tx, user1ID, user2ID int) (*domain.Match, error)
	ListActive(ctx context.Context, userID int) ([]*domain.Match, error)
	// ListPendingFor returns pending records where userID is the liked
	// side (user2), i.e. incoming match requests.
	ListPendingFor(ctx context.Context, userID int) ([]*domain.Match, error)
	UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int, status domain.MatchStatus) error
	End(ctx context.Context, id, endedBy int) error
	Delete(ctx context.Context, id int) error

	// BeginTx opens the transaction that Like runs its
	// lookup-decide-write sequence in.
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
}
