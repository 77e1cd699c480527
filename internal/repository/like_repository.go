package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// LikeRepository maintains the per-user liked and passed sets. All
// writes are idempotent upserts; re-liking or re-passing is a no-op.
type LikeRepository interface {
	AddLike(ctx context.Context, tx *sqlx.Tx, userID, targetID int) error
	AddPass(ctx context.Context, userID, targetID int) error
	HasLiked(ctx context.Context, tx *sqlx.Tx, userID, targetID int) (bool, error)
	ListLikedIDs(ctx context.Context, userID int) ([]int, error)
	ListPassedIDs(ctx context.Context, userID int) ([]int, error)
}
