package domain

import "time"

type MatchStatus string

const (
	// MatchPending is a one-sided like waiting for the other side.
	MatchPending MatchStatus = "pending"
	// MatchActive means both sides liked each other.
	MatchActive MatchStatus = "active"
	// MatchEnded is terminal for the record; only reachable from active.
	MatchEnded MatchStatus = "ended"
)

// Match is one relationship record per unordered user pair. User1 is
// whichever side created the record (the liking party of a pending
// request); the pair itself has no order.
type Match struct {
	ID        int         `json:"id" db:"id"`
	User1ID   int         `json:"user1_id" db:"user1_id"`
	User2ID   int         `json:"user2_id" db:"user2_id"`
	Status    MatchStatus `json:"status" db:"status"`
	EndedBy   *int        `json:"ended_by" db:"ended_by"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	EndedAt   *time.Time  `json:"ended_at" db:"ended_at"`
}

func (m *Match) HasUser(userID int) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) OtherUserID(userID int) (int, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return 0, false
}
