package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dateit-app/dateit-backend/internal/repository"
	"github.com/dateit-app/dateit-backend/pkg/logger"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameSize   = 4096
	sendBufferSize = 64
)

// Client is one live WebSocket session of a user.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	matchRepo repository.MatchRepository
	userID    int

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, matchRepo repository.MatchRepository, userID int) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		matchRepo: matchRepo,
		userID:    userID,
		send:      make(chan []byte, sendBufferSize),
		done:      make(chan struct{}),
	}
}

// enqueue hands a frame to the write pump. Returns false when the
// session is closing or its buffer is full. The send channel is never
// closed; close only signals done, so a concurrent enqueue can race a
// disconnect without panicking.
func (c *Client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// closing reports whether the session has been told to shut down.
func (c *Client) closing() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// readPump consumes client frames. The only frame a client may send is
// a typing notification, which is relayed to the other participant.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.L().Debug("websocket read error",
					zap.Int("user_id", c.userID),
					zap.Error(err),
				)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		if frame.Type == frameTyping && frame.Payload.MatchID > 0 {
			c.relayTyping(frame.Payload.MatchID)
		}
	}
}

// relayTyping forwards a typing signal to the other side of the match.
func (c *Client) relayTyping(matchID int) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	match, err := c.matchRepo.GetByID(ctx, matchID)
	if err != nil || !match.HasUser(c.userID) {
		return
	}

	otherID, _ := match.OtherUserID(c.userID)
	c.hub.SendToUser(otherID, Event{
		Type: EventTyping,
		Payload: map[string]int{
			"match_id": matchID,
			"user_id":  c.userID,
		},
	})
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
