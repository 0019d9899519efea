package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/parkhopper/parkhopper-api/internal/analytics"
	"github.com/parkhopper/parkhopper-api/internal/api/shared"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// Trend window defaults and bounds, in hours.
const (
	defaultTrendHours = 6
	maxTrendHours     = 24 * 7
	defaultAlpha      = 0.3
)

// AnalyticsHandler serves wait-time analytics computed from stored samples.
type AnalyticsHandler struct {
	waitStore store.WaitSampleStore
	logger    *slog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(waitStore store.WaitSampleStore, log *slog.Logger) *AnalyticsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AnalyticsHandler{
		waitStore: waitStore,
		logger:    log.With(slog.String("component", "analytics_handler")),
	}
}

// trendResponse is the payload of the trend endpoint.
type trendResponse struct {
	AttractionID   string                `json:"attraction_id"`
	WindowHours    int                   `json:"window_hours"`
	SampleCount    int                   `json:"sample_count"`
	Trend          analytics.TrendResult `json:"trend"`
	SmoothedWait   float64               `json:"smoothed_wait"`
	HourlyAverages map[int]float64       `json:"hourly_averages"`
}

// GetTrend handles GET /attractions/{attractionID}/trend.
// Query parameters: hours (lookback window, default 6), alpha (smoothing
// factor, default 0.3).
func (h *AnalyticsHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	attractionID := chi.URLParam(r, "attractionID")
	if attractionID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Attraction ID is required")
		return
	}

	hours := defaultTrendHours
	if raw := r.URL.Query().Get("hours"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxTrendHours {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid hours parameter")
			return
		}
		hours = n
	}

	alpha := defaultAlpha
	if raw := r.URL.Query().Get("alpha"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid alpha parameter")
			return
		}
		alpha = f
	}

	now := time.Now().UTC()
	samples, err := h.waitStore.ListByAttraction(r.Context(), attractionID,
		now.Add(-time.Duration(hours)*time.Hour), now)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	trend, err := analytics.Trend(samples)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	smoothed, err := analytics.SmoothedWait(samples, alpha)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	hourly, err := analytics.HourlyAverages(samples)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, trendResponse{
		AttractionID:   attractionID,
		WindowHours:    hours,
		SampleCount:    len(samples),
		Trend:          trend,
		SmoothedWait:   smoothed,
		HourlyAverages: hourly,
	})
}
