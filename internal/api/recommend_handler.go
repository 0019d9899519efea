package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/parkhopper/parkhopper-api/internal/analytics"
	"github.com/parkhopper/parkhopper-api/internal/api/shared"
	"github.com/parkhopper/parkhopper-api/internal/content"
	"github.com/parkhopper/parkhopper-api/internal/platform/logger"
	"github.com/parkhopper/parkhopper-api/internal/platform/themeparks"
	"github.com/parkhopper/parkhopper-api/internal/service/itinerary"
	"github.com/parkhopper/parkhopper-api/internal/service/recommend"
)

// RecommendHandler serves recommendation rankings and day plans. Live waits
// and the crowd level are fetched per request so scores reflect the park as
// it is right now; a failed live fetch degrades to scoring without waits.
type RecommendHandler struct {
	scorer    *recommend.Scorer
	planner   *itinerary.Planner
	client    *themeparks.Client
	validator *validator.Validate
	logger    *slog.Logger
}

// NewRecommendHandler creates a new RecommendHandler with the given
// dependencies.
func NewRecommendHandler(
	scorer *recommend.Scorer,
	planner *itinerary.Planner,
	client *themeparks.Client,
	log *slog.Logger,
) *RecommendHandler {
	if log == nil {
		log = slog.Default()
	}
	return &RecommendHandler{
		scorer:    scorer,
		planner:   planner,
		client:    client,
		validator: validator.New(),
		logger:    log.With(slog.String("component", "recommend_handler")),
	}
}

// recommendationResponse is the payload of the recommendations endpoint.
type recommendationResponse struct {
	ParkID      string                       `json:"park_id"`
	CrowdLevel  analytics.CrowdLevel         `json:"crowd_level"`
	Attractions []recommend.ScoredAttraction `json:"attractions"`
	Restaurants []recommend.ScoredRestaurant `json:"restaurants"`
}

// Recommend handles POST /recommendations.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if _, ok := content.ParkByID(req.ParkID); !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "Unknown park")
		return
	}

	profile := req.toProfile()
	scoringCtx := h.buildContext(r, req)

	attractions := h.scorer.ScoreAttractions(profile, scoringCtx,
		content.AttractionsByPark(req.ParkID))
	restaurants := h.scorer.ScoreRestaurants(profile, scoringCtx,
		content.FilterRestaurants(content.RestaurantFilter{ParkID: req.ParkID}))

	shared.RespondWithJSON(w, r, http.StatusOK, recommendationResponse{
		ParkID:      req.ParkID,
		CrowdLevel:  scoringCtx.CrowdLevel,
		Attractions: attractions,
		Restaurants: restaurants,
	})
}

// BuildItinerary handles POST /itinerary.
func (h *RecommendHandler) BuildItinerary(w http.ResponseWriter, r *http.Request) {
	var req ItineraryRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if _, ok := content.ParkByID(req.ParkID); !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "Unknown park")
		return
	}

	open, close, err := req.parkHours()
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid park hours")
		return
	}

	params := itinerary.Params{
		ParkOpen:         open,
		ParkClose:        close,
		Profile:          req.toProfile(),
		Context:          h.buildContext(r, req.RecommendationRequest),
		LightningLaneCap: req.LightningLaneCap,
	}

	plan, err := h.planner.Build(params,
		content.AttractionsByPark(req.ParkID),
		content.FilterRestaurants(content.RestaurantFilter{ParkID: req.ParkID}))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, plan)
}

// buildContext assembles live scoring context for a park. Upstream failures
// leave waits empty and the crowd level at its zero value; recommendations
// still work, just without live data.
func (h *RecommendHandler) buildContext(
	r *http.Request,
	req RecommendationRequest,
) recommend.Context {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	scoringCtx := recommend.Context{
		ParkID:    req.ParkID,
		HourOfDay: time.Now().Hour(),
	}

	if req.Latitude != nil && req.Longitude != nil {
		scoringCtx.Position = &content.Coordinates{
			Latitude:  *req.Latitude,
			Longitude: *req.Longitude,
		}
	}

	if h.client == nil {
		return scoringCtx
	}

	waits, err := h.client.LiveWaitTimes(r.Context(), req.ParkID)
	if err != nil {
		log.Warn("scoring without live waits",
			slog.String("error", err.Error()),
			slog.String("park_id", req.ParkID))
		return scoringCtx
	}

	scoringCtx.Waits = make(map[string]int, len(waits))
	for _, wt := range waits {
		scoringCtx.Waits[wt.EntityID] = wt.WaitMinutes
	}

	if level, err := analytics.CrowdLevelFor(liveToSamples(req.ParkID, waits, time.Now().UTC())); err == nil {
		scoringCtx.CrowdLevel = level
	}

	return scoringCtx
}

// toProfile converts the request payload to a scoring profile.
func (req RecommendationRequest) toProfile() recommend.PartyProfile {
	return recommend.PartyProfile{
		Ages:             req.Ages,
		HeightsCM:        req.HeightsCM,
		ThrillPreference: req.ThrillPreference,
		MaxWaitMinutes:   req.MaxWaitMinutes,
		HasLightningLane: req.HasLightningLane,
		RideSwap:         req.RideSwap,
		Interests:        req.Interests,
		DietaryNeeds:     req.DietaryNeeds,
		CuisinePrefs:     req.CuisinePrefs,
		MaxPriceTier:     req.MaxPriceTier,
	}
}

// parkHours combines the plan date with the open/close clock times.
func (req ItineraryRequest) parkHours() (time.Time, time.Time, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	openClock, err := time.Parse("15:04", req.ParkOpen)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	closeClock, err := time.Parse("15:04", req.ParkClose)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	open := time.Date(day.Year(), day.Month(), day.Day(),
		openClock.Hour(), openClock.Minute(), 0, 0, time.UTC)
	close := time.Date(day.Year(), day.Month(), day.Day(),
		closeClock.Hour(), closeClock.Minute(), 0, 0, time.UTC)

	// Parks that close after midnight roll into the next day.
	if !close.After(open) {
		close = close.AddDate(0, 0, 1)
	}

	return open, close, nil
}
