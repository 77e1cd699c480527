package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dateit-app/dateit-backend/internal/domain"
	"github.com/dateit-app/dateit-backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

func (r *matchRepository) Create(ctx context.Context, tx *sqlx.Tx, match *domain.Match) error {
	// The unique index on (LEAST(user1_id,user2_id), GREATEST(...))
	// rejects a second record for the pair no matter which side is
	// stored as the initiator. The loser of a concurrent insert gets
	// ErrMatchExists and retries as an update.
	query := `
		INSERT INTO matches (user1_id, user2_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := tx.QueryRowContext(ctx, query, match.User1ID, match.User2ID, match.Status).
		Scan(&match.ID, &match.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrMatchExists
		}
		return err
	}
	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	var match domain.Match
	query := `SELECT * FROM matches WHERE id = $1`
	err := r.db.GetContext(ctx, &match, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) GetByUsers(ctx context.Context, tx *sqlx.Tx, user1ID, user2ID int) (*domain.Match, error) {
	var match domain.Match
	query := `
		SELECT * FROM matches
		WHERE (user1_id = $1 AND user2_id = $2)
		   OR (user1_id = $2 AND user2_id = $1)
	`
	var err error
	if tx != nil {
		err = tx.GetContext(ctx, &match, query, user1ID, user2ID)
	} else {
		err = r.db.GetContext(ctx, &match, query, user1ID, user2ID)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) ListActive(ctx context.Context, userID int) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND status = 'active'
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, userID)
	return matches, err
}

func (r *matchRepository) ListPendingFor(ctx context.Context, userID int) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT * FROM matches
		WHERE user2_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, userID)
	return matches, err
}

func (r *matchRepository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int, status domain.MatchStatus) error {
	// Transitions into ended go through End, which stamps the end
	// metadata. Any other status sheds it, so a re-activated record
	// does not keep carrying ended_by/ended_at.
	query := `UPDATE matches SET status = $1, ended_by = NULL, ended_at = NULL WHERE id = $2`
	var result sql.Result
	var err error
	if tx != nil {
		result, err = tx.ExecContext(ctx, query, status, id)
	} else {
		result, err = r.db.ExecContext(ctx, query, status, id)
	}
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}

func (r *matchRepository) End(ctx context.Context, id, endedBy int) error {
	// Guarding on status in the query keeps double-end safe even if
	// two participants race.
	query := `
		UPDATE matches
		SET status = 'ended', ended_by = $1, ended_at = NOW()
		WHERE id = $2 AND status <> 'ended'
	`
	result, err := r.db.ExecContext(ctx, query, endedBy, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchEnded
	}
	return nil
}

func (r *matchRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM matches WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}
