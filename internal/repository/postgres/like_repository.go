package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dateit-app/dateit-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) repository.LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) AddLike(ctx context.Context, tx *sqlx.Tx, userID, targetID int) error {
	query := `
		INSERT INTO likes (user_id, target_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, target_id) DO NOTHING
	`
	_, err := tx.ExecContext(ctx, query, userID, targetID)
	return err
}

func (r *likeRepository) AddPass(ctx context.Context, userID, targetID int) error {
	query := `
		INSERT INTO passes (user_id, target_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, target_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID, targetID)
	return err
}

func (r *likeRepository) HasLiked(ctx context.Context, tx *sqlx.Tx, userID, targetID int) (bool, error) {
	var one int
	query := `SELECT 1 FROM likes WHERE user_id = $1 AND target_id = $2 LIMIT 1`
	err := tx.QueryRowContext(ctx, query, userID, targetID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *likeRepository) ListLikedIDs(ctx context.Context, userID int) ([]int, error) {
	var ids []int
	query := `SELECT target_id FROM likes WHERE user_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}

func (r *likeRepository) ListPassedIDs(ctx context.Context, userID int) ([]int, error) {
	var ids []int
	query := `SELECT target_id FROM passes WHERE user_id = $1`
	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}
