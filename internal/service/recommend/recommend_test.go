package recommend

import (
	"testing"

	"github.com/parkhopper/parkhopper-api/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAttractions() []content.Attraction {
	return []content.Attraction{
		{
			ID: "mk-coaster", ParkID: "magic-kingdom", Name: "Coaster",
			Category: content.CategoryThrill, ThrillLevel: 4, HeightMinCM: 112,
			LightningLane: true, Headliner: true,
			Tags: []string{"coaster", "dark"},
		},
		{
			ID: "mk-carousel", ParkID: "magic-kingdom", Name: "Carousel",
			Category: content.CategoryKids, ThrillLevel: 1, HeightMinCM: 0,
			Tags: []string{"classic", "kids"},
		},
		{
			ID: "mk-boat-ride", ParkID: "magic-kingdom", Name: "Boat Ride",
			Category: content.CategoryDark, ThrillLevel: 2, HeightMinCM: 0,
			LightningLane: true,
			Tags:          []string{"dark", "classic"},
		},
	}
}

func TestScoreAttractionsOrdering(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultWeights(), nil)
	profile := PartyProfile{
		ThrillPreference: 4,
		MaxWaitMinutes:   60,
		Interests:        []string{"coaster", "dark"},
		HasLightningLane: true,
	}
	ctx := Context{
		ParkID: "magic-kingdom",
		Waits:  map[string]int{"mk-coaster": 30, "mk-carousel": 5, "mk-boat-ride": 10},
	}

	ranked := scorer.ScoreAttractions(profile, ctx, testAttractions())
	require.Len(t, ranked, 3)

	// The thrill-matched, interest-matched coaster wins for this party.
	assert.Equal(t, "mk-coaster", ranked[0].Attraction.ID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)

	// Every entry carries a full breakdown.
	for _, r := range ranked {
		assert.Contains(t, r.Breakdown, "interest")
		assert.Contains(t, r.Breakdown, "thrill_fit")
		assert.Contains(t, r.Breakdown, "wait_fit")
	}
}

func TestScoreAttractionsDeterministicTieBreak(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultWeights(), nil)
	// Two identical attractions except for ID: scores tie, IDs break it.
	twins := []content.Attraction{
		{ID: "mk-b-ride", ThrillLevel: 2, Tags: []string{"dark"}},
		{ID: "mk-a-ride", ThrillLevel: 2, Tags: []string{"dark"}},
	}

	for i := 0; i < 5; i++ {
		ranked := scorer.ScoreAttractions(PartyProfile{ThrillPreference: 2}, Context{}, twins)
		require.Len(t, ranked, 2)
		assert.Equal(t, "mk-a-ride", ranked[0].Attraction.ID, "ties must break by ID ascending")
	}
}

func TestHeightGateHardZero(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultWeights(), nil)
	profile := PartyProfile{
		HeightsCM:        []int{180, 100}, // one rider under the 112cm gate
		ThrillPreference: 4,
		Interests:        []string{"coaster"},
	}

	ranked := scorer.ScoreAttractions(profile, Context{}, testAttractions())

	var coaster *ScoredAttraction
	for i := range ranked {
		if ranked[i].Attraction.ID == "mk-coaster" {
			coaster = &ranked[i]
		}
	}
	require.NotNil(t, coaster)
	assert.Zero(t, coaster.Score, "height-excluded ride must score zero")
	assert.Equal(t, 0.0, coaster.Breakdown["height_eligibility"])

	// Ride swap lifts the gate.
	profile.RideSwap = true
	ranked = scorer.ScoreAttractions(profile, Context{}, testAttractions())
	assert.Equal(t, "mk-coaster", ranked[0].Attraction.ID)
	assert.Positive(t, ranked[0].Score)
}

func TestWaitToleranceZeroesWaitFit(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultWeights(), nil)
	profile := PartyProfile{ThrillPreference: 2, MaxWaitMinutes: 20}
	ctx := Context{Waits: map[string]int{"mk-boat-ride": 90}}

	ranked := scorer.ScoreAttractions(profile, ctx, testAttractions())
	for _, r := range ranked {
		if r.Attraction.ID == "mk-boat-ride" {
			assert.Equal(t, 0.0, r.Breakdown["wait_fit"],
				"wait beyond tolerance should zero the wait component")
		}
	}
}

func testRestaurants() []content.Restaurant {
	return []content.Restaurant{
		{
			ID: "mk-burgers", Cuisine: "american", PriceTier: 1,
			DietaryTags: []string{"vegetarian"},
			Coordinates: content.Coordinates{Latitude: 28.4180, Longitude: -81.5810},
		},
		{
			ID: "mk-bistro", Cuisine: "french", PriceTier: 4,
			DietaryTags: []string{"vegetarian", "vegan", "gluten-free"},
			Coordinates: content.Coordinates{Latitude: 28.4200, Longitude: -81.5830},
		},
		{
			ID: "mk-steakhouse", Cuisine: "steakhouse", PriceTier: 3,
			DietaryTags: nil,
			Coordinates: content.Coordinates{Latitude: 28.4190, Longitude: -81.5820},
		},
	}
}

func TestScoreRestaurantsDietaryHardZero(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultWeights(), nil)
	profile := PartyProfile{DietaryNeeds: []string{"vegan"}}

	ranked := scorer.ScoreRestaurants(profile, Context{}, testRestaurants())
	require.Len(t, ranked, 3)

	// Only the bistro covers vegan; the others are hard zeros.
	assert.Equal(t, "mk-bistro", ranked[0].Restaurant.ID)
	assert.Positive(t, ranked[0].Score)
	assert.Zero(t, ranked[1].Score)
	assert.Zero(t, ranked[2].Score)
}

func TestScoreRestaurantsCuisineAndPrice(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultWeights(), nil)
	profile := PartyProfile{
		CuisinePrefs: []string{"French"},
		MaxPriceTier: 2,
	}

	ranked := scorer.ScoreRestaurants(profile, Context{}, testRestaurants())

	var bistro ScoredRestaurant
	for _, r := range ranked {
		if r.Restaurant.ID == "mk-bistro" {
			bistro = r
		}
	}
	assert.Equal(t, 1.0, bistro.Breakdown["cuisine"], "cuisine match is case-insensitive")
	assert.Equal(t, 0.0, bistro.Breakdown["price_fit"], "tier 4 vs max 2 bottoms out")
}

func TestScoreRestaurantsProximity(t *testing.T) {
	t.Parallel()

	scorer := NewScorer(DefaultWeights(), nil)
	pos := content.Coordinates{Latitude: 28.4180, Longitude: -81.5810}

	ranked := scorer.ScoreRestaurants(PartyProfile{}, Context{Position: &pos}, testRestaurants())

	var burgers, bistro ScoredRestaurant
	for _, r := range ranked {
		switch r.Restaurant.ID {
		case "mk-burgers":
			burgers = r
		case "mk-bistro":
			bistro = r
		}
	}
	assert.Greater(t, burgers.Breakdown["proximity"], bistro.Breakdown["proximity"],
		"the closer restaurant should score higher on proximity")
}
