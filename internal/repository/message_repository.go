package repository

import (
	"context"

	"github.com/dateit-app/dateit-backend/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	// ListByMatch returns messages newest-first.
	ListByMatch(ctx context.Context, matchID, limit, offset int) ([]*domain.Message, error)
	CountByMatch(ctx context.Context, matchID int) (int, error)
	// MarkRead flips every unread message addressed to receiverID in
	// the match and returns the number of rows updated.
	MarkRead(ctx context.Context, matchID, receiverID int) (int, error)
	CountUnread(ctx context.Context, matchID, receiverID int) (int, error)
}
