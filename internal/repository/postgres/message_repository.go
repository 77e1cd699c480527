package postgres

import (
	"context"

	"github.com/dateit-app/dateit-backend/internal/domain"
	"github.com/dateit-app/dateit-backend/internal/repository"
	"github.com/jmoiron/sqlx"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (match_id, sender_id, receiver_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		msg.MatchID, msg.SenderID, msg.ReceiverID, msg.Content,
	).Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt)
}

func (r *messageRepository) ListByMatch(ctx context.Context, matchID, limit, offset int) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT * FROM messages
		WHERE match_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &messages, query, matchID, limit, offset)
	return messages, err
}

func (r *messageRepository) CountByMatch(ctx context.Context, matchID int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM messages WHERE match_id = $1`
	err := r.db.GetContext(ctx, &count, query, matchID)
	return count, err
}

func (r *messageRepository) MarkRead(ctx context.Context, matchID, receiverID int) (int, error) {
	query := `
		UPDATE messages
		SET is_read = TRUE, read_at = NOW()
		WHERE match_id = $1 AND receiver_id = $2 AND is_read = FALSE
	`
	result, err := r.db.ExecContext(ctx, query, matchID, receiverID)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}

func (r *messageRepository) CountUnread(ctx context.Context, matchID, receiverID int) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM messages
		WHERE match_id = $1 AND receiver_id = $2 AND is_read = FALSE
	`
	err := r.db.GetContext(ctx, &count, query, matchID, receiverID)
	return count, err
}
