// Package realtime provides the WebSocket hub for trip rooms: group chat
// with server-assigned ordering, presence, and trip list change fan-out.
package realtime

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/service"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// staleAfter is how long a client may go without a pong before the sweep
// evicts it.
const staleAfter = 90 * time.Second

// Hub maintains the set of connected clients grouped into trip rooms and
// fans chat, presence, and trip change frames out to them.
//
// Chat ordering is server-authoritative: messages are persisted first, which
// assigns the per-trip sequence number, and broadcast only after the
// transaction commits. Clients reconcile gaps by requesting a backfill with
// the last sequence they saw.
type Hub struct {
	db       *sql.DB
	messages store.MessageStore
	logger   *slog.Logger

	rooms   map[uuid.UUID]map[*Client]bool
	roomsMu sync.RWMutex

	register   chan *Client
	unregister chan *Client

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Hub fans persisted trip mutations into rooms on behalf of the trip service.
var _ service.TripEventPublisher = (*Hub)(nil)

// NewHub creates a new Hub. Run must be called for clients to be admitted.
func NewHub(ctx context.Context, db *sql.DB, messages store.MessageStore, logger *slog.Logger) *Hub {
	hubCtx, cancel := context.WithCancel(ctx)

	if logger == nil {
		logger = slog.Default()
	}

	return &Hub{
		db:         db,
		messages:   messages,
		logger:     logger.With(slog.String("component", "realtime_hub")),
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		ctx:        hubCtx,
		cancel:     cancel,
	}
}

// Run starts the hub's event loop. It returns when the hub is shut down.
func (h *Hub) Run() {
	h.wg.Add(1)
	defer h.wg.Done()

	sweep := time.NewTicker(30 * time.Second)
	defer sweep.Stop()

	for {
		select {
		case <-h.ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case <-sweep.C:
			h.evictStale()
		}
	}
}

// Shutdown stops the event loop and disconnects every client.
func (h *Hub) Shutdown() {
	h.cancel()
	h.wg.Wait()
	h.logger.Info("realtime hub stopped")
}

// addClient admits a client to its trip room and announces the join.
func (h *Hub) addClient(client *Client) {
	h.roomsMu.Lock()
	room := h.rooms[client.tripID]
	if room == nil {
		room = make(map[*Client]bool)
		h.rooms[client.tripID] = room
	}
	room[client] = true
	h.roomsMu.Unlock()

	h.logger.Info("client joined trip room",
		slog.String("trip_id", client.tripID.String()),
		slog.String("user_id", client.userID.String()))

	h.broadcastPresence(client, PresenceJoined)
}

// removeClient drops a client from its room, closes its send channel, and
// announces the departure to the remaining members. A client that is no
// longer a room member has already been removed; eviction and the read
// pump's deferred unregister can both report the same departure.
func (h *Hub) removeClient(client *Client) {
	h.roomsMu.Lock()
	room, ok := h.rooms[client.tripID]
	if !ok || !room[client] {
		h.roomsMu.Unlock()
		return
	}
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, client.tripID)
	}
	h.roomsMu.Unlock()

	client.closed.Store(true)
	close(client.send)

	h.logger.Info("client left trip room",
		slog.String("trip_id", client.tripID.String()),
		slog.String("user_id", client.userID.String()))

	h.broadcastPresence(client, PresenceLeft)
}

// evictStale unregisters clients whose last pong is older than staleAfter.
func (h *Hub) evictStale() {
	h.roomsMu.RLock()
	var stale []*Client
	for _, room := range h.rooms {
		for client := range room {
			if time.Since(client.lastPong()) > staleAfter {
				stale = append(stale, client)
			}
		}
	}
	h.roomsMu.RUnlock()

	for _, client := range stale {
		h.logger.Warn("evicting stale client",
			slog.String("trip_id", client.tripID.String()),
			slog.String("user_id", client.userID.String()))
		if client.conn != nil {
			client.conn.Close()
		}
		// Remove directly: the sweep runs on the event loop, so queueing
		// on the unregister channel could fill it and block the loop on
		// itself.
		h.removeClient(client)
	}
}

// closeAll disconnects every client during shutdown.
func (h *Hub) closeAll() {
	h.roomsMu.Lock()
	defer h.roomsMu.Unlock()

	for _, room := range h.rooms {
		for client := range room {
			client.closed.Store(true)
			if client.conn != nil {
				client.conn.Close()
			}
		}
	}
	h.rooms = make(map[uuid.UUID]map[*Client]bool)
}

// PublishTripChange implements service.TripEventPublisher by fanning a
// persisted trip mutation out to the trip's room.
func (h *Hub) PublishTripChange(tripID uuid.UUID, change service.TripChange) {
	data, err := encodeFrame(FrameTripChange, change)
	if err != nil {
		h.logger.Error("failed to encode trip change frame",
			slog.String("error", err.Error()),
			slog.String("trip_id", tripID.String()))
		return
	}
	h.broadcastToRoom(tripID, data)
}

// broadcastToRoom delivers an encoded frame to every client in a room.
// Clients with a full send buffer are skipped rather than blocking the hub.
func (h *Hub) broadcastToRoom(tripID uuid.UUID, data []byte) {
	h.roomsMu.RLock()
	room, ok := h.rooms[tripID]
	if !ok {
		h.roomsMu.RUnlock()
		return
	}
	clients := make([]*Client, 0, len(room))
	for client := range room {
		clients = append(clients, client)
	}
	h.roomsMu.RUnlock()

	for _, client := range clients {
		client.enqueue(data)
	}
}

// broadcastPresence announces a roster change to the client's room. The
// departing or arriving client is included in the announcement; the roster
// reflects the room after the change.
func (h *Hub) broadcastPresence(client *Client, event string) {
	payload := presencePayload{
		Event: event,
		Member: Member{
			UserID:      client.userID.String(),
			DisplayName: client.displayName,
		},
		Roster: h.roster(client.tripID),
	}

	data, err := encodeFrame(FramePresence, payload)
	if err != nil {
		h.logger.Error("failed to encode presence frame",
			slog.String("error", err.Error()))
		return
	}
	h.broadcastToRoom(client.tripID, data)
}

// roster returns the room's current members sorted by user ID for stable
// output.
func (h *Hub) roster(tripID uuid.UUID) []Member {
	h.roomsMu.RLock()
	defer h.roomsMu.RUnlock()

	room := h.rooms[tripID]
	members := make([]Member, 0, len(room))
	for client := range room {
		members = append(members, Member{
			UserID:      client.userID.String(),
			DisplayName: client.displayName,
		})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].UserID < members[j].UserID })
	return members
}

// handleFrame dispatches one decoded client frame.
func (h *Hub) handleFrame(ctx context.Context, client *Client, raw []byte) {
	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		client.sendError("malformed frame")
		return
	}

	switch frame.Type {
	case FrameChat:
		var payload chatPayload
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			client.sendError("malformed chat payload")
			return
		}
		h.handleChat(ctx, client, payload.Body)

	case FrameBackfill:
		var payload backfillPayload
		if err := json.Unmarshal(frame.Data, &payload); err != nil {
			client.sendError("malformed backfill payload")
			return
		}
		h.Backfill(ctx, client, payload.AfterSeq)

	default:
		h.logger.Debug("ignoring unknown frame type",
			slog.String("frame_type", frame.Type))
	}
}

// handleChat persists a chat message, which assigns its sequence number,
// then broadcasts it to the room. Nothing reaches the room on a failed
// persist, so connected clients never see a message the store lost.
func (h *Hub) handleChat(ctx context.Context, client *Client, body string) {
	msg, err := domain.NewChatMessage(client.tripID, client.userID, body)
	if err != nil {
		client.sendError(err.Error())
		return
	}

	err = store.RunInTransaction(ctx, h.db, func(ctx context.Context, tx *sql.Tx) error {
		return h.messages.WithTx(tx).Create(ctx, msg)
	})
	if err != nil {
		h.logger.Error("failed to persist chat message",
			slog.String("error", err.Error()),
			slog.String("trip_id", client.tripID.String()))
		client.sendError("message could not be saved")
		return
	}

	data, err := encodeFrame(FrameChatMessage, msg)
	if err != nil {
		h.logger.Error("failed to encode chat frame",
			slog.String("error", err.Error()))
		return
	}
	h.broadcastToRoom(client.tripID, data)
}

// Backfill replays messages with a sequence greater than afterSeq to a
// single client, oldest first. Delivery is lossless: a replay larger than
// the client's send buffer blocks until the write pump drains it, so the
// caller must have WritePump running.
func (h *Hub) Backfill(ctx context.Context, client *Client, afterSeq int64) {
	msgs, err := h.messages.ListSince(ctx, client.tripID, afterSeq)
	if err != nil {
		h.logger.Error("failed to load backfill messages",
			slog.String("error", err.Error()),
			slog.String("trip_id", client.tripID.String()))
		client.sendError("backfill failed")
		return
	}

	for _, msg := range msgs {
		data, err := encodeFrame(FrameChatMessage, msg)
		if err != nil {
			h.logger.Error("failed to encode backfill frame",
				slog.String("error", err.Error()))
			return
		}
		if !client.enqueueReliable(data) {
			return
		}
	}

	h.logger.Debug("backfill replayed",
		slog.String("trip_id", client.tripID.String()),
		slog.Int("message_count", len(msgs)),
		slog.Int64("after_seq", afterSeq))
}

// RoomSize reports the number of clients connected to a trip room.
func (h *Hub) RoomSize(tripID uuid.UUID) int {
	h.roomsMu.RLock()
	defer h.roomsMu.RUnlock()
	return len(h.rooms[tripID])
}
