package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/parkhopper/parkhopper-api/internal/api/shared"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/service"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// parseDatePair parses the YYYY-MM-DD date strings used on the wire.
func parseDatePair(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return startDate, endDate, nil
}

// TripHandler handles trip and trip item API requests.
type TripHandler struct {
	tripService  service.TripService
	messageStore store.MessageStore
	validator    *validator.Validate
	logger       *slog.Logger
}

// NewTripHandler creates a new TripHandler with the given dependencies.
// The message store may be nil, which disables the chat history endpoint.
func NewTripHandler(
	tripService service.TripService,
	messageStore store.MessageStore,
	log *slog.Logger,
) *TripHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TripHandler{
		tripService:  tripService,
		messageStore: messageStore,
		validator:    validator.New(),
		logger:       log.With(slog.String("component", "trip_handler")),
	}
}

// CreateTrip handles POST /trips.
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateTripRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	trip, err := h.tripService.CreateTrip(r.Context(), userID,
		req.Name, req.StartDate, req.EndDate, req.PartySize)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, trip)
}

// ListTrips handles GET /trips.
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	trips, err := h.tripService.ListTrips(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, trips)
}

// GetTrip handles GET /trips/{tripID}.
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := handleUserIDAndPathUUID(w, r, "tripID", h.logger)
	if !ok {
		return
	}

	trip, err := h.tripService.GetTrip(r.Context(), userID, tripID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{tripID}.
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := handleUserIDAndPathUUID(w, r, "tripID", h.logger)
	if !ok {
		return
	}

	var req UpdateTripRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	// Load the current trip so unchanged fields survive the update.
	trip, err := h.tripService.GetTrip(r.Context(), userID, tripID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	start, end, err := parseDatePair(req.StartDate, req.EndDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid trip dates")
		return
	}

	trip.Name = req.Name
	trip.StartDate = start
	trip.EndDate = end
	trip.PartySize = req.PartySize

	if err := trip.Validate(); err != nil {
		HandleAPIError(w, r, domain.NewValidationError("trip", err.Error(), domain.ErrValidation), "")
		return
	}

	if err := h.tripService.UpdateTrip(r.Context(), userID, trip); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /trips/{tripID}.
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := handleUserIDAndPathUUID(w, r, "tripID", h.logger)
	if !ok {
		return
	}

	if err := h.tripService.DeleteTrip(r.Context(), userID, tripID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /trips/{tripID}/items.
func (h *TripHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := handleUserIDAndPathUUID(w, r, "tripID", h.logger)
	if !ok {
		return
	}

	var req TripItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	item, err := domain.NewTripItem(tripID, req.EntityID, domain.EntityKind(req.Kind), req.Day)
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError("item", err.Error(), domain.ErrValidation), "")
		return
	}
	item.Note = req.Note
	item.SortOrder = req.SortOrder

	if err := h.tripService.AddItem(r.Context(), userID, item); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, item)
}

// ListItems handles GET /trips/{tripID}/items.
func (h *TripHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := handleUserIDAndPathUUID(w, r, "tripID", h.logger)
	if !ok {
		return
	}

	items, err := h.tripService.ListItems(r.Context(), userID, tripID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// UpdateItem handles PUT /trips/{tripID}/items/{itemID}.
func (h *TripHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := handleUserIDAndPathUUID(w, r, "tripID", h.logger)
	if !ok {
		return
	}

	itemID, err := getPathUUID(r, "itemID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req TripItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	item := &domain.TripItem{
		ID:        itemID,
		TripID:    tripID,
		EntityID:  req.EntityID,
		Kind:      domain.EntityKind(req.Kind),
		Day:       req.Day,
		Note:      req.Note,
		SortOrder: req.SortOrder,
	}

	if err := h.tripService.UpdateItem(r.Context(), userID, item); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// InviteMember handles POST /trips/{tripID}/members. Only the trip owner
// may invite, and the invitee is looked up by email.
func (h *TripHandler) InviteMember(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := handleUserIDAndPathUUID(w, r, "tripID", h.logger)
	if !ok {
		return
	}

	var req TripMemberRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	member, err := h.tripService.InviteMember(r.Context(), userID, tripID, req.Email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, member)
}

// ListMembers handles GET /trips/{tripID}/members.
func (h *TripHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := handleUserIDAndPathUUID(w, r, "tripID", h.logger)
	if !ok {
		return
	}

	members, err := h.tripService.ListMembers(r.Context(), userID, tripID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, members)
}

// RemoveMember handles DELETE /trips/{tripID}/members/{memberID}.
func (h *TripHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := handleUserIDAndPathUUID(w, r, "tripID", h.logger)
	if !ok {
		return
	}

	memberID, err := getPathUUID(r, "memberID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.tripService.RemoveMember(r.Context(), userID, tripID, memberID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Default and maximum page sizes for the chat history endpoint.
const (
	defaultMessageLimit = 50
	maxMessageLimit     = 500
)

// ListMessages handles GET /trips/{tripID}/messages. With after_seq it
// returns everything the caller missed; otherwise the most recent messages
// up to limit.
func (h *TripHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := handleUserIDAndPathUUID(w, r, "tripID", h.logger)
	if !ok {
		return
	}

	// Chat history follows trip access.
	if _, err := h.tripService.GetTrip(r.Context(), userID, tripID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var (
		msgs []*domain.ChatMessage
		err  error
	)
	if raw := r.URL.Query().Get("after_seq"); raw != "" {
		afterSeq, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil || afterSeq < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid after_seq parameter")
			return
		}
		msgs, err = h.messageStore.ListSince(r.Context(), tripID, afterSeq)
	} else {
		limit := defaultMessageLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, parseErr := strconv.Atoi(raw)
			if parseErr != nil || n < 1 || n > maxMessageLimit {
				shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
				return
			}
			limit = n
		}
		msgs, err = h.messageStore.ListRecent(r.Context(), tripID, limit)
	}
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ChatBackfillResponse{
		TripID:   tripID,
		Messages: msgs,
	})
}

// RemoveItem handles DELETE /trips/{tripID}/items/{itemID}.
func (h *TripHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, tripID, ok := handleUserIDAndPathUUID(w, r, "tripID", h.logger)
	if !ok {
		return
	}

	itemID, err := getPathUUID(r, "itemID")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.tripService.RemoveItem(r.Context(), userID, tripID, itemID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
