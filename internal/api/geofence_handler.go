package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/parkhopper/parkhopper-api/internal/api/shared"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/geo"
	"github.com/parkhopper/parkhopper-api/internal/service"
)

// GeofenceHandler handles geofence API requests.
type GeofenceHandler struct {
	fenceService service.GeofenceService
	validator    *validator.Validate
	logger       *slog.Logger
}

// NewGeofenceHandler creates a new GeofenceHandler with the given
// dependencies.
func NewGeofenceHandler(fenceService service.GeofenceService, log *slog.Logger) *GeofenceHandler {
	if log == nil {
		log = slog.Default()
	}
	return &GeofenceHandler{
		fenceService: fenceService,
		validator:    validator.New(),
		logger:       log.With(slog.String("component", "geofence_handler")),
	}
}

// CreateGeofence handles POST /geofences.
func (h *GeofenceHandler) CreateGeofence(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	req, ok := h.decodeFenceRequest(w, r)
	if !ok {
		return
	}

	fence, err := domain.NewGeofence(userID, req.Name, req.Latitude, req.Longitude, req.RadiusMeters)
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError("geofence", err.Error(), domain.ErrValidation), "")
		return
	}
	applyFenceOptions(fence, req)

	if err := fence.Validate(); err != nil {
		HandleAPIError(w, r, domain.NewValidationError("geofence", err.Error(), domain.ErrValidation), "")
		return
	}

	if err := h.fenceService.CreateGeofence(r.Context(), fence); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, fence)
}

// ListGeofences handles GET /geofences.
func (h *GeofenceHandler) ListGeofences(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	fences, err := h.fenceService.ListGeofences(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, fences)
}

// GetGeofence handles GET /geofences/{fenceID}.
func (h *GeofenceHandler) GetGeofence(w http.ResponseWriter, r *http.Request) {
	userID, fenceID, ok := handleUserIDAndPathUUID(w, r, "fenceID", h.logger)
	if !ok {
		return
	}

	fence, err := h.fenceService.GetGeofence(r.Context(), userID, fenceID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, fence)
}

// UpdateGeofence handles PUT /geofences/{fenceID}.
func (h *GeofenceHandler) UpdateGeofence(w http.ResponseWriter, r *http.Request) {
	userID, fenceID, ok := handleUserIDAndPathUUID(w, r, "fenceID", h.logger)
	if !ok {
		return
	}

	req, ok := h.decodeFenceRequest(w, r)
	if !ok {
		return
	}

	fence := &domain.Geofence{
		ID:           fenceID,
		OwnerID:      userID,
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
	}
	applyFenceOptions(fence, req)

	if err := fence.Validate(); err != nil {
		HandleAPIError(w, r, domain.NewValidationError("geofence", err.Error(), domain.ErrValidation), "")
		return
	}

	if err := h.fenceService.UpdateGeofence(r.Context(), userID, fence); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, fence)
}

// DeleteGeofence handles DELETE /geofences/{fenceID}.
func (h *GeofenceHandler) DeleteGeofence(w http.ResponseWriter, r *http.Request) {
	userID, fenceID, ok := handleUserIDAndPathUUID(w, r, "fenceID", h.logger)
	if !ok {
		return
	}

	if err := h.fenceService.DeleteGeofence(r.Context(), userID, fenceID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CheckPosition handles POST /geofences/check.
func (h *GeofenceHandler) CheckPosition(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req GeofenceCheckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	at := time.Now().UTC()
	if req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid timestamp")
			return
		}
		at = parsed
	}

	pos := geo.Position{
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		AltitudeM:  req.AltitudeM,
		HeadingDeg: req.HeadingDeg,
		Timestamp:  at,
	}

	checks, err := h.fenceService.CheckPosition(r.Context(), userID, pos)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, checks)
}

// decodeFenceRequest decodes and validates a geofence payload, writing the
// error response itself on failure.
func (h *GeofenceHandler) decodeFenceRequest(
	w http.ResponseWriter,
	r *http.Request,
) (GeofenceRequest, bool) {
	var req GeofenceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return req, false
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return req, false
	}
	return req, true
}

// applyFenceOptions copies the optional fence fields from the payload.
func applyFenceOptions(fence *domain.Geofence, req GeofenceRequest) {
	fence.MinAltitudeM = req.MinAltitudeM
	fence.MaxAltitudeM = req.MaxAltitudeM
	fence.HeadingStartDeg = req.HeadingStartDeg
	fence.HeadingEndDeg = req.HeadingEndDeg
	fence.ActiveStartMin = req.ActiveStartMin
	fence.ActiveEndMin = req.ActiveEndMin
	fence.CooldownSec = req.CooldownSec
	fence.DwellMinSec = req.DwellMinSec
}
