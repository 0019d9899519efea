package realtime

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// Ping period; must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum frame size accepted from a peer.
	maxFrameSize = 8 * 1024

	// Outbound buffer per client; slow readers get dropped frames, not a
	// blocked hub.
	sendBufferSize = 64
)

// Client is one authenticated WebSocket connection bound to a trip room.
type Client struct {
	hub  *Hub
	conn *websocket.Conn

	tripID      uuid.UUID
	userID      uuid.UUID
	displayName string

	send   chan []byte
	closed atomic.Bool

	pongAt   time.Time
	pongAtMu sync.RWMutex
}

// NewClient wraps an upgraded connection for the given trip room member.
// The caller must start ReadPump and WritePump.
func NewClient(hub *Hub, conn *websocket.Conn, tripID, userID uuid.UUID, displayName string) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		tripID:      tripID,
		userID:      userID,
		displayName: displayName,
		send:        make(chan []byte, sendBufferSize),
		pongAt:      time.Now(),
	}
}

// Register admits the client to its trip room.
func (c *Client) Register() {
	c.hub.register <- c
}

// ReadPump reads frames from the connection and dispatches them to the hub.
// It runs until the connection drops and then unregisters the client.
// There is at most one ReadPump per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.markPong()
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("websocket read failed",
					slog.String("error", err.Error()),
					slog.String("user_id", c.userID.String()))
			}
			return
		}

		c.markPong()
		c.hub.handleFrame(c.hub.ctx, c, raw)
	}
}

// WritePump writes queued frames to the connection and keeps the heartbeat
// going. It runs until the send channel closes or a write fails. There is
// at most one WritePump per connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
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

// enqueue queues an encoded frame for delivery, dropping it when the client
// is closed or its buffer is full.
func (c *Client) enqueue(data []byte) {
	if c.closed.Load() {
		return
	}
	defer func() {
		// The hub may close the send channel between the check above and
		// the send below.
		_ = recover()
	}()

	select {
	case c.send <- data:
	default:
		c.hub.logger.Warn("dropping frame for slow client",
			slog.String("trip_id", c.tripID.String()),
			slog.String("user_id", c.userID.String()))
	}
}

// enqueueReliable queues an encoded frame, waiting for buffer space instead
// of dropping. Backfill uses it so a replay larger than the send buffer is
// not silently truncated; the caller must ensure WritePump is draining.
// Returns false when the client or hub shut down before the frame queued.
func (c *Client) enqueueReliable(data []byte) (queued bool) {
	if c.closed.Load() {
		return false
	}
	defer func() {
		// The hub may close the send channel while the send is blocked.
		if recover() != nil {
			queued = false
		}
	}()

	select {
	case c.send <- data:
		return true
	case <-c.hub.ctx.Done():
		return false
	}
}

// sendError queues an error frame for this client only.
func (c *Client) sendError(message string) {
	data, err := encodeFrame(FrameError, errorPayload{Message: message})
	if err != nil {
		return
	}
	c.enqueue(data)
}

// markPong records heartbeat liveness for the stale sweep.
func (c *Client) markPong() {
	c.pongAtMu.Lock()
	c.pongAt = time.Now()
	c.pongAtMu.Unlock()
}

// lastPong returns the time of the last heartbeat or read.
func (c *Client) lastPong() time.Time {
	c.pongAtMu.RLock()
	defer c.pongAtMu.RUnlock()
	return c.pongAt
}
