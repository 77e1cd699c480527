package ws

import (
	"sync"

	"github.com/dateit-app/dateit-backend/internal/domain"
	"github.com/dateit-app/dateit-backend/pkg/logger"
	"go.uber.org/zap"
)

// Hub tracks live sessions per user. A user may hold several
// connections at once; delivery targets all of them directly, never by
// scanning the full connection set.
type Hub struct {
	mu       sync.RWMutex
	byUser   map[int]map[*Client]struct{}
	shutdown bool
}

func NewHub() *Hub {
	return &Hub{
		byUser: make(map[int]map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.shutdown {
		client.close()
		return
	}

	conns, ok := h.byUser[client.userID]
	if !ok {
		conns = make(map[*Client]struct{})
		h.byUser[client.userID] = conns
	}
	conns[client] = struct{}{}
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.byUser[client.userID]
	if !ok {
		return
	}
	if _, ok := conns[client]; !ok {
		return
	}
	delete(conns, client)
	if len(conns) == 0 {
		delete(h.byUser, client.userID)
	}
	client.close()
}

// SendToUser fans an event out to every session of the user. Returns
// how many sessions accepted the frame.
func (h *Hub) SendToUser(userID int, event Event) int {
	data, err := event.encode()
	if err != nil {
		logger.L().Error("encode event", zap.String("type", event.Type), zap.Error(err))
		return 0
	}

	h.mu.RLock()
	conns := h.byUser[userID]
	clients := make([]*Client, 0, len(conns))
	for client := range conns {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	sent := 0
	for _, client := range clients {
		if client.enqueue(data) {
			sent++
			continue
		}
		if !client.closing() {
			// Full buffer means a stalled consumer; drop the session.
			h.Unregister(client)
		}
	}
	return sent
}

// Online reports whether the user has at least one live session.
func (h *Hub) Online(userID int) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.byUser[userID]) > 0
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, conns := range h.byUser {
		n += len(conns)
	}
	return n
}

// Shutdown closes every connection and rejects further registrations.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	if h.shutdown {
		h.mu.Unlock()
		return
	}
	h.shutdown = true
	var clients []*Client
	for _, conns := range h.byUser {
		for client := range conns {
			clients = append(clients, client)
		}
	}
	h.byUser = make(map[int]map[*Client]struct{})
	h.mu.Unlock()

	for _, client := range clients {
		client.close()
	}
}

// NotifyMatch implements matching.Notifier. Both participants learn
// about a newly active match.
func (h *Hub) NotifyMatch(match *domain.Match) {
	event := Event{Type: EventMatchNew, Payload: match}
	h.SendToUser(match.User1ID, event)
	h.SendToUser(match.User2ID, event)
}

// NotifyMatchEnded implements matching.Notifier.
func (h *Hub) NotifyMatchEnded(match *domain.Match) {
	event := Event{Type: EventMatchStatus, Payload: match}
	h.SendToUser(match.User1ID, event)
	h.SendToUser(match.User2ID, event)
}

// NotifyMessage implements chat.Broadcaster.
func (h *Hub) NotifyMessage(msg *domain.Message) {
	h.SendToUser(msg.ReceiverID, Event{Type: EventMessageReceived, Payload: msg})
}
