package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/parkhopper/parkhopper-api/internal/api/shared"
	"github.com/parkhopper/parkhopper-api/internal/realtime"
	"github.com/parkhopper/parkhopper-api/internal/service"
	"github.com/parkhopper/parkhopper-api/internal/service/auth"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// WSHandler upgrades authenticated requests into trip room WebSocket
// connections. Authentication happens inside the handler rather than in
// middleware: browsers cannot set an Authorization header on a WebSocket
// handshake, so the token is also accepted as a query parameter.
type WSHandler struct {
	hub         *realtime.Hub
	tripService service.TripService
	userStore   store.UserStore
	jwtService  auth.JWTService
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

// NewWSHandler creates a new WSHandler with the given dependencies.
func NewWSHandler(
	hub *realtime.Hub,
	tripService service.TripService,
	userStore store.UserStore,
	jwtService auth.JWTService,
	log *slog.Logger,
) *WSHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WSHandler{
		hub:         hub,
		tripService: tripService,
		userStore:   userStore,
		jwtService:  jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is not a trust boundary here; every connection must
			// still present a valid token.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log.With(slog.String("component", "ws_handler")),
	}
}

// Connect handles GET /trips/{tripID}/ws. The client may pass after_seq to
// replay chat messages it missed while disconnected.
func (h *WSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid trip ID")
		return
	}

	var afterSeq int64 = -1
	if raw := r.URL.Query().Get("after_seq"); raw != "" {
		afterSeq, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || afterSeq < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid after_seq parameter")
			return
		}
	}

	// Room membership requires access to the trip itself.
	if _, err := h.tripService.GetTrip(r.Context(), userID, tripID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.logger.Debug("websocket upgrade failed",
			slog.String("error", err.Error()),
			slog.String("trip_id", tripID.String()))
		return
	}

	client := realtime.NewClient(h.hub, conn, tripID, userID, user.DisplayName)
	client.Register()

	// The write pump must be draining before backfill: a replay larger
	// than the send buffer blocks until the pump catches up.
	go client.WritePump()

	if afterSeq >= 0 {
		h.hub.Backfill(r.Context(), client, afterSeq)
	}

	go client.ReadPump()
}

// authenticate resolves the requesting user from the Authorization header or
// the token query parameter, writing the error response itself on failure.
func (h *WSHandler) authenticate(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	token := r.URL.Query().Get("token")
	if token == "" {
		header := r.Header.Get("Authorization")
		if after, found := strings.CutPrefix(header, "Bearer "); found {
			token = after
		}
	}
	if token == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication token required")
		return uuid.Nil, false
	}

	claims, err := h.jwtService.ValidateToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrExpiredToken):
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
		case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrWrongTokenType):
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
		default:
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
		}
		return uuid.Nil, false
	}

	return claims.UserID, true
}
