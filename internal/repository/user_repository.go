package repository

import (
	"context"

	"github.com/dateit-app/dateit-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int) error

	// Suggestions returns candidate users for actorID, excluding the
	// actor itself, everyone in the actor's liked/passed sets and every
	// counterpart of any match record involving the actor, optionally
	// filtered to a single gender.
	Suggestions(ctx context.Context, actorID int, gender *domain.Gender, limit int) ([]*domain.User, error)
}
