package domain

import "time"

type Message struct {
	ID         int        `json:"id" db:"id"`
	MatchID    int        `json:"match_id" db:"match_id"`
	SenderID   int        `json:"sender_id" db:"sender_id"`
	ReceiverID int        `json:"receiver_id" db:"receiver_id"`
	Content    string     `json:"content" db:"content"`
	IsRead     bool       `json:"is_read" db:"is_read"`
	ReadAt     *time.Time `json:"read_at" db:"read_at"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
