package itinerary

import (
	"testing"
	"time"

	"github.com/parkhopper/parkhopper-api/internal/content"
	"github.com/parkhopper/parkhopper-api/internal/service/recommend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parkDay(t *testing.T, openClock, closeClock string) (time.Time, time.Time) {
	t.Helper()
	open, err := time.Parse(time.RFC3339, "2026-08-20T"+openClock+":00-04:00")
	require.NoError(t, err)
	close, err := time.Parse(time.RFC3339, "2026-08-20T"+closeClock+":00-04:00")
	require.NoError(t, err)
	return open, close
}

func planAttractions() []content.Attraction {
	return []content.Attraction{
		{
			ID: "mk-mountain", Name: "The Mountain", Headliner: true,
			ThrillLevel: 4, DurationMin: 10, LightningLane: true,
			Tags:        []string{"coaster"},
			Coordinates: content.Coordinates{Latitude: 28.4190, Longitude: -81.5770},
		},
		{
			ID: "mk-mansion", Name: "The Mansion",
			ThrillLevel: 2, DurationMin: 10,
			Tags:        []string{"dark"},
			Coordinates: content.Coordinates{Latitude: 28.4201, Longitude: -81.5830},
		},
		{
			ID: "mk-teacups", Name: "Teacups",
			ThrillLevel: 1, DurationMin: 5,
			Tags:        []string{"kids"},
			Coordinates: content.Coordinates{Latitude: 28.4188, Longitude: -81.5790},
		},
	}
}

func planRestaurants() []content.Restaurant {
	return []content.Restaurant{
		{ID: "mk-grill", Name: "The Grill", Service: content.ServiceQuick, PriceTier: 1},
		{ID: "mk-tavern", Name: "The Tavern", Service: content.ServiceTable, PriceTier: 2},
	}
}

func newPlanner() *Planner {
	return NewPlanner(recommend.NewScorer(recommend.DefaultWeights(), nil), nil)
}

func TestBuildRejectsInvalidWindow(t *testing.T) {
	t.Parallel()

	open, _ := parkDay(t, "09:00", "21:00")
	_, err := newPlanner().Build(
		Params{ParkOpen: open, ParkClose: open},
		planAttractions(), planRestaurants(),
	)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestBuildRejectsNoCandidates(t *testing.T) {
	t.Parallel()

	open, close := parkDay(t, "09:00", "21:00")
	// Every attraction height-gated away.
	gated := []content.Attraction{
		{ID: "mk-tall-ride", Name: "Tall Ride", HeightMinCM: 200},
	}
	profile := recommend.PartyProfile{HeightsCM: []int{120}}

	_, err := newPlanner().Build(
		Params{ParkOpen: open, ParkClose: close, Profile: profile},
		gated, nil,
	)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestBuildRopeDropsHeadliner(t *testing.T) {
	t.Parallel()

	open, close := parkDay(t, "09:00", "21:00")
	profile := recommend.PartyProfile{ThrillPreference: 3, Interests: []string{"coaster"}}

	plan, err := newPlanner().Build(
		Params{ParkOpen: open, ParkClose: close, Profile: profile},
		planAttractions(), planRestaurants(),
	)
	require.NoError(t, err)
	require.NotEmpty(t, plan.Entries)

	first := plan.Entries[0]
	assert.Equal(t, "mk-mountain", first.EntityID, "headliner should take the rope-drop slot")
	assert.True(t, first.Start.Equal(open))
	assert.Contains(t, first.Reason, "rope-drop")
}

func TestBuildPinsMealsAndNeverRepeats(t *testing.T) {
	t.Parallel()

	open, close := parkDay(t, "09:00", "21:00")
	profile := recommend.PartyProfile{ThrillPreference: 3}

	plan, err := newPlanner().Build(
		Params{ParkOpen: open, ParkClose: close, Profile: profile},
		planAttractions(), planRestaurants(),
	)
	require.NoError(t, err)

	seen := map[string]int{}
	meals := 0
	for _, e := range plan.Entries {
		seen[e.EntityID]++
		if e.Kind == KindMeal {
			meals++
		}
	}

	assert.Equal(t, 2, meals, "expected lunch and dinner pinned")
	for id, count := range seen {
		assert.Equal(t, 1, count, "entity %s repeated in plan", id)
	}

	// Entries are in chronological order and inside park hours.
	for i := 1; i < len(plan.Entries); i++ {
		assert.False(t, plan.Entries[i].Start.Before(plan.Entries[i-1].Start))
	}
	last := plan.Entries[len(plan.Entries)-1]
	end := last.Start.Add(time.Duration(last.DurationMin) * time.Minute)
	assert.False(t, end.After(close), "plan must not run past park close")
}

func TestBuildCapsLightningLane(t *testing.T) {
	t.Parallel()

	open, close := parkDay(t, "09:00", "21:00")
	profile := recommend.PartyProfile{
		ThrillPreference: 3,
		HasLightningLane: true,
		MaxWaitMinutes:   120,
	}
	ctx := recommend.Context{
		Waits: map[string]int{"mk-mountain": 60, "mk-mansion": 45, "mk-teacups": 30},
	}

	plan, err := newPlanner().Build(
		Params{
			ParkOpen: open, ParkClose: close,
			Profile: profile, Context: ctx,
			LightningLaneCap: 1,
		},
		planAttractions(), planRestaurants(),
	)
	require.NoError(t, err)

	llPicks := 0
	for _, e := range plan.Entries {
		if e.Kind == KindAttraction && containsLL(e.Reason) {
			llPicks++
		}
	}
	assert.LessOrEqual(t, llPicks, 1, "Lightning Lane picks must respect the cap")
}

func TestBuildShortDayNeverOverrunsClose(t *testing.T) {
	t.Parallel()

	// Five-minute day: the top headliner runs 10 minutes, so the
	// rope-drop slot must pass it over instead of scheduling past close.
	open, close := parkDay(t, "09:00", "09:05")
	profile := recommend.PartyProfile{ThrillPreference: 3, Interests: []string{"coaster"}}

	plan, err := newPlanner().Build(
		Params{ParkOpen: open, ParkClose: close, Profile: profile},
		planAttractions(), planRestaurants(),
	)
	require.NoError(t, err)

	for _, e := range plan.Entries {
		end := e.Start.Add(time.Duration(e.DurationMin) * time.Minute)
		assert.False(t, end.After(close),
			"entry %s ends at %s, past park close", e.EntityID, end)
	}
}

func TestBuildSkipsMealsOutsideHours(t *testing.T) {
	t.Parallel()

	// Evening-only hours: lunch slot falls before open.
	open, close := parkDay(t, "16:00", "22:00")
	profile := recommend.PartyProfile{ThrillPreference: 3}

	plan, err := newPlanner().Build(
		Params{ParkOpen: open, ParkClose: close, Profile: profile},
		planAttractions(), planRestaurants(),
	)
	require.NoError(t, err)

	for _, e := range plan.Entries {
		if e.Kind == KindMeal {
			assert.False(t, e.Start.Before(open), "meal pinned before park open")
		}
	}
}

func containsLL(reason string) bool {
	return len(reason) >= 14 && reason[:14] == "Lightning Lane"
}
