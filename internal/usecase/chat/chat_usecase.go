package chat

import (
	"context"
	"strings"

	"github.com/dateit-app/dateit-backend/internal/domain"
	"github.com/dateit-app/dateit-backend/internal/repository"
)

// Broadcaster pushes a stored message to the recipient's live
// sessions. Delivery is best-effort.
type Broadcaster interface {
	NotifyMessage(msg *domain.Message)
}

type ChatUseCase struct {
	matchRepo   repository.MatchRepository
	messageRepo repository.MessageRepository
	broadcaster Broadcaster
}

func NewChatUseCase(
	matchRepo repository.MatchRepository,
	messageRepo repository.MessageRepository,
	broadcaster Broadcaster,
) *ChatUseCase {
	return &ChatUseCase{
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
		broadcaster: broadcaster,
	}
}

const maxContentLen = 2000

// Send persists a message inside the match conversation, then fans it
// out to the receiver's sessions.
func (uc *ChatUseCase) Send(ctx context.Context, senderID, matchID int, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxContentLen {
		return nil, domain.ErrInvalidInput
	}

	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(senderID) {
		return nil, domain.ErrNotParticipant
	}
	if match.Status == domain.MatchEnded {
		return nil, domain.ErrMatchEnded
	}

	receiverID, _ := match.OtherUserID(senderID)
	msg := &domain.Message{
		MatchID:    matchID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	go uc.broadcaster.NotifyMessage(msg)
	return msg, nil
}

// HistoryPage is one page of a conversation, oldest message first.
type HistoryPage struct {
	Messages []*domain.Message `json:"messages"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	HasMore  bool              `json:"has_more"`
}

// History returns a page of the conversation. Pages are counted from
// the newest message but each page is returned oldest-first so clients
// can prepend older pages while scrolling back.
func (uc *ChatUseCase) History(ctx context.Context, userID, matchID, page, pageSize int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasUser(userID) {
		return nil, domain.ErrNotParticipant
	}

	total, err := uc.messageRepo.CountByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * pageSize
	msgs, err := uc.messageRepo.ListByMatch(ctx, matchID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	// ListByMatch is newest-first; reverse in place.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	return &HistoryPage{
		Messages: msgs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  offset+len(msgs) < total,
	}, nil
}

// MarkRead flips every unread message addressed to userID in the match
// and returns how many were updated.
func (uc *ChatUseCase) MarkRead(ctx context.Context, userID, matchID int) (int, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return 0, err
	}
	if !match.HasUser(userID) {
		return 0, domain.ErrNotParticipant
	}
	return uc.messageRepo.MarkRead(ctx, matchID, userID)
}

func (uc *ChatUseCase) UnreadCount(ctx context.Context, userID, matchID int) (int, error) {
	match, err := uc.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return 0, err
	}
	if !match.HasUser(userID) {
		return 0, domain.ErrNotParticipant
	}
	return uc.messageRepo.CountUnread(ctx, matchID, userID)
}
