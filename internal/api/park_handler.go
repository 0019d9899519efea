package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/parkhopper/parkhopper-api/internal/analytics"
	"github.com/parkhopper/parkhopper-api/internal/api/shared"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/platform/logger"
	"github.com/parkhopper/parkhopper-api/internal/platform/themeparks"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// ParkHandler serves live park state: posted waits, operating hours, and
// the crowd level heuristic. Each live fetch is also recorded as wait
// samples so the analytics endpoints have history to work with.
type ParkHandler struct {
	client    *themeparks.Client
	waitStore store.WaitSampleStore
	logger    *slog.Logger
}

// NewParkHandler creates a new ParkHandler with the given dependencies.
func NewParkHandler(
	client *themeparks.Client,
	waitStore store.WaitSampleStore,
	log *slog.Logger,
) *ParkHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ParkHandler{
		client:    client,
		waitStore: waitStore,
		logger:    log.With(slog.String("component", "park_handler")),
	}
}

// GetLive handles GET /parks/{parkID}/live.
func (h *ParkHandler) GetLive(w http.ResponseWriter, r *http.Request) {
	parkID := chi.URLParam(r, "parkID")
	if parkID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Park ID is required")
		return
	}

	waits, err := h.client.LiveWaitTimes(r.Context(), parkID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.recordSamples(r, parkID, waits)

	shared.RespondWithJSON(w, r, http.StatusOK, waits)
}

// GetSchedule handles GET /parks/{parkID}/schedule.
func (h *ParkHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	parkID := chi.URLParam(r, "parkID")
	if parkID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Park ID is required")
		return
	}

	schedule, err := h.client.ParkSchedule(r.Context(), parkID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, schedule)
}

// crowdResponse is the payload of the crowd level endpoint.
type crowdResponse struct {
	ParkID     string               `json:"park_id"`
	CrowdLevel analytics.CrowdLevel `json:"crowd_level"`
	SampledAt  time.Time            `json:"sampled_at"`
}

// GetCrowd handles GET /parks/{parkID}/crowd. The level is computed from
// the current posted waits rather than stored history, so it reflects the
// park right now.
func (h *ParkHandler) GetCrowd(w http.ResponseWriter, r *http.Request) {
	parkID := chi.URLParam(r, "parkID")
	if parkID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Park ID is required")
		return
	}

	waits, err := h.client.LiveWaitTimes(r.Context(), parkID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	now := time.Now().UTC()
	samples := liveToSamples(parkID, waits, now)

	level, err := analytics.CrowdLevelFor(samples)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, crowdResponse{
		ParkID:     parkID,
		CrowdLevel: level,
		SampledAt:  now,
	})
}

// recordSamples persists a live snapshot as wait samples. Failures are
// logged, never surfaced: history is best effort and must not break the
// live endpoint.
func (h *ParkHandler) recordSamples(r *http.Request, parkID string, waits []themeparks.LiveWaitTime) {
	if h.waitStore == nil || len(waits) == 0 {
		return
	}

	log := logger.FromContextOrDefault(r.Context(), h.logger)
	samples := liveToSamples(parkID, waits, time.Now().UTC())
	if len(samples) == 0 {
		return
	}

	if err := h.waitStore.CreateBatch(r.Context(), samples); err != nil {
		log.Warn("failed to record wait samples",
			slog.String("error", err.Error()),
			slog.String("park_id", parkID),
			slog.Int("sample_count", len(samples)))
	}
}

// liveToSamples converts upstream live waits into domain samples, mapping
// upstream statuses onto ours. Refurbishment counts as closed.
func liveToSamples(parkID string, waits []themeparks.LiveWaitTime, at time.Time) []*domain.WaitSample {
	samples := make([]*domain.WaitSample, 0, len(waits))
	for _, wt := range waits {
		var status domain.RideStatus
		switch wt.Status {
		case themeparks.StatusOperating:
			status = domain.StatusOperating
		case themeparks.StatusDown:
			status = domain.StatusDown
		default:
			status = domain.StatusClosed
		}

		sample, err := domain.NewWaitSample(parkID, wt.EntityID, wt.WaitMinutes, status, at)
		if err != nil {
			continue
		}
		samples = append(samples, sample)
	}
	return samples
}
