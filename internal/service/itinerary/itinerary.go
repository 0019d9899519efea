// Package itinerary builds single-day park plans from recommendation
// rankings under simple scheduling rules: park hours bound the plan, the
// rope-drop slot goes to the best headliner, meals pin near noon and
// 18:00, walking distance penalizes successive picks, Lightning Lane use
// is capped, and nothing repeats.
package itinerary

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/parkhopper/parkhopper-api/internal/content"
	"github.com/parkhopper/parkhopper-api/internal/geo"
	"github.com/parkhopper/parkhopper-api/internal/service/recommend"
)

// Planner errors
var (
	ErrInvalidWindow = errors.New("park close must be after park open")
	ErrNoCandidates  = errors.New("no eligible attractions to plan")
)

// Entry kinds
const (
	KindAttraction = "attraction"
	KindMeal       = "meal"
)

// Scheduling constants. Durations are minutes.
const (
	defaultRideDuration  = 15
	transitionBuffer     = 10
	lunchHour            = 12
	dinnerHour           = 18
	defaultLLCap         = 3
	walkPenaltyPerKm     = 0.05
	quickServiceDuration = 30
	tableServiceDuration = 60
	signatureDuration    = 90
)

// Entry is one scheduled stop in a day plan.
type Entry struct {
	Start       time.Time `json:"start"`
	DurationMin int       `json:"duration_min"`
	EntityID    string    `json:"entity_id"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Reason      string    `json:"reason"`
}

// Plan is an ordered day plan for one park.
type Plan struct {
	ParkID  string  `json:"park_id"`
	Entries []Entry `json:"entries"`
}

// Params configures one planning run.
type Params struct {
	ParkOpen  time.Time
	ParkClose time.Time
	Profile   recommend.PartyProfile
	Context   recommend.Context

	// LightningLaneCap limits paid-queue picks per day; zero means the
	// default cap.
	LightningLaneCap int
}

// Planner assembles day plans from scored candidates.
type Planner struct {
	scorer *recommend.Scorer
	logger *slog.Logger
}

// NewPlanner creates a planner around the given scorer.
// If logger is nil, a default logger will be used.
func NewPlanner(scorer *recommend.Scorer, logger *slog.Logger) *Planner {
	if scorer == nil {
		// ALLOW-PANIC: Constructor requires non-nil scorer
		panic("scorer cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		scorer: scorer,
		logger: logger.With(slog.String("component", "itinerary_planner")),
	}
}

// Build produces a day plan for the attractions and restaurants given.
// Attractions scoring zero (height gates, etc.) never enter the plan.
func (p *Planner) Build(
	params Params,
	attractions []content.Attraction,
	restaurants []content.Restaurant,
) (*Plan, error) {
	if !params.ParkClose.After(params.ParkOpen) {
		return nil, ErrInvalidWindow
	}

	ranked := p.scorer.ScoreAttractions(params.Profile, params.Context, attractions)
	candidates := make([]recommend.ScoredAttraction, 0, len(ranked))
	for _, sa := range ranked {
		if sa.Score > 0 {
			candidates = append(candidates, sa)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	llCap := params.LightningLaneCap
	if llCap <= 0 {
		llCap = defaultLLCap
	}

	meals := p.pinMeals(params, restaurants)

	plan := &Plan{ParkID: params.Context.ParkID}
	used := make(map[string]bool)
	cursor := params.ParkOpen
	var here *content.Coordinates
	llUsed := 0

	// Rope drop: the highest-scored headliner goes first, before the
	// queues build. A headliner that would run past close is skipped in
	// favor of the next one, the same bound the main loop applies.
	for _, sa := range candidates {
		if !sa.Attraction.Headliner {
			continue
		}
		entry, next := p.scheduleRide(sa, cursor, params, &llUsed, llCap, true)
		end := entry.Start.Add(time.Duration(entry.DurationMin) * time.Minute)
		if end.After(params.ParkClose) {
			continue
		}
		plan.Entries = append(plan.Entries, entry)
		used[sa.Attraction.ID] = true
		loc := sa.Attraction.Coordinates
		here = &loc
		cursor = next
		break
	}

	for {
		// A pinned meal whose slot has arrived interrupts the ride loop.
		if len(meals) > 0 && !cursor.Before(meals[0].Start) {
			meal := meals[0]
			meals = meals[1:]
			if cursor.Add(time.Duration(meal.DurationMin)*time.Minute).After(params.ParkClose) {
				continue
			}
			meal.Start = cursor
			plan.Entries = append(plan.Entries, meal)
			cursor = cursor.Add(time.Duration(meal.DurationMin+transitionBuffer) * time.Minute)
			continue
		}

		next := p.nextRide(candidates, used, here)
		if next == nil {
			// Out of rides; jump ahead to any meal slots still pinned.
			if len(meals) == 0 {
				break
			}
			cursor = meals[0].Start
			continue
		}

		entry, after := p.scheduleRide(*next, cursor, params, &llUsed, llCap, false)
		end := entry.Start.Add(time.Duration(entry.DurationMin) * time.Minute)
		if end.After(params.ParkClose) {
			break
		}
		// Don't run through a pinned meal slot.
		if len(meals) > 0 && end.After(meals[0].Start) {
			cursor = meals[0].Start
			continue
		}

		plan.Entries = append(plan.Entries, entry)
		used[next.Attraction.ID] = true
		loc := next.Attraction.Coordinates
		here = &loc
		cursor = after
	}

	p.logger.Debug("built itinerary",
		slog.String("park_id", params.Context.ParkID),
		slog.Int("entries", len(plan.Entries)),
		slog.Int("lightning_lane_used", llUsed))
	return plan, nil
}

// nextRide picks the unused candidate with the best score after the
// walking-distance penalty from the current location.
func (p *Planner) nextRide(
	candidates []recommend.ScoredAttraction,
	used map[string]bool,
	here *content.Coordinates,
) *recommend.ScoredAttraction {
	var best *recommend.ScoredAttraction
	bestScore := 0.0

	for i := range candidates {
		sa := &candidates[i]
		if used[sa.Attraction.ID] {
			continue
		}

		effective := sa.Score
		if here != nil {
			km := geo.Distance(
				here.Latitude, here.Longitude,
				sa.Attraction.Coordinates.Latitude, sa.Attraction.Coordinates.Longitude,
			) / 1000
			effective -= walkPenaltyPerKm * km
		}

		if best == nil || effective > bestScore {
			best = sa
			bestScore = effective
		}
	}
	return best
}

// scheduleRide turns a pick into a plan entry starting at cursor and
// returns the entry plus the cursor after it (including the transition
// buffer). Lightning Lane picks under the cap skip the posted wait.
func (p *Planner) scheduleRide(
	sa recommend.ScoredAttraction,
	cursor time.Time,
	params Params,
	llUsed *int,
	llCap int,
	ropeDrop bool,
) (Entry, time.Time) {
	a := sa.Attraction

	duration := a.DurationMin
	if duration <= 0 {
		duration = defaultRideDuration
	}

	wait := params.Context.Waits[a.ID]
	reason := fmt.Sprintf("scored %.2f for your party", sa.Score)

	switch {
	case ropeDrop:
		wait = 0 // first in at open, no queue yet
		reason = "rope-drop headliner: ride it before the lines build"
	case a.LightningLane && params.Profile.HasLightningLane && *llUsed < llCap:
		*llUsed++
		wait = 0
		reason = fmt.Sprintf("Lightning Lane pick %d of %d, skipping a %d min wait",
			*llUsed, llCap, params.Context.Waits[a.ID])
	case wait > 0:
		reason = fmt.Sprintf("scored %.2f, expect about %d min in line", sa.Score, wait)
	}

	entry := Entry{
		Start:       cursor,
		DurationMin: wait + duration,
		EntityID:    a.ID,
		Kind:        KindAttraction,
		Name:        a.Name,
		Reason:      reason,
	}
	next := cursor.Add(time.Duration(entry.DurationMin+transitionBuffer) * time.Minute)
	return entry, next
}

// pinMeals reserves lunch and dinner slots from the restaurant ranking,
// skipping slots that fall outside park hours. The two meals use distinct
// restaurants.
func (p *Planner) pinMeals(params Params, restaurants []content.Restaurant) []Entry {
	ranked := p.scorer.ScoreRestaurants(params.Profile, params.Context, restaurants)

	var meals []Entry
	mealHours := []struct {
		hour   int
		reason string
	}{
		{lunchHour, "lunch"},
		{dinnerHour, "dinner"},
	}

	idx := 0
	for _, m := range mealHours {
		slot := time.Date(
			params.ParkOpen.Year(), params.ParkOpen.Month(), params.ParkOpen.Day(),
			m.hour, 0, 0, 0, params.ParkOpen.Location(),
		)
		if slot.Before(params.ParkOpen) || !slot.Before(params.ParkClose) {
			continue
		}

		for idx < len(ranked) {
			r := ranked[idx]
			idx++
			if r.Score <= 0 {
				continue
			}
			meals = append(meals, Entry{
				Start:       slot,
				DurationMin: mealDuration(r.Restaurant.Service),
				EntityID:    r.Restaurant.ID,
				Kind:        KindMeal,
				Name:        r.Restaurant.Name,
				Reason:      fmt.Sprintf("%s at your top dining match", m.reason),
			})
			break
		}
	}
	return meals
}

func mealDuration(service content.ServiceType) int {
	switch service {
	case content.ServiceSignature:
		return signatureDuration
	case content.ServiceTable:
		return tableServiceDuration
	default:
		return quickServiceDuration
	}
}
