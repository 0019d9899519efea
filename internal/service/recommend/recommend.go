// Package recommend scores catalog entities against a party's preferences
// and the park's live state, producing deterministic ranked lists with
// per-component score breakdowns.
package recommend

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/parkhopper/parkhopper-api/internal/analytics"
	"github.com/parkhopper/parkhopper-api/internal/content"
	"github.com/parkhopper/parkhopper-api/internal/geo"
)

// PartyProfile describes the group a recommendation is for.
type PartyProfile struct {
	Ages             []int    `json:"ages"`
	HeightsCM        []int    `json:"heights_cm"`
	ThrillPreference int      `json:"thrill_preference" validate:"min=1,max=5"`
	MaxWaitMinutes   int      `json:"max_wait_minutes"`
	HasLightningLane bool     `json:"has_lightning_lane"`
	RideSwap         bool     `json:"ride_swap"` // adults can split so height gates don't exclude the whole party
	Interests        []string `json:"interests"`
	DietaryNeeds     []string `json:"dietary_needs"`
	CuisinePrefs     []string `json:"cuisine_prefs"`
	MaxPriceTier     int      `json:"max_price_tier"`
}

// Context is the live park state a scoring run happens in.
type Context struct {
	ParkID     string               `json:"park_id"`
	Waits      map[string]int       `json:"waits"` // attraction ID -> posted wait minutes
	CrowdLevel analytics.CrowdLevel `json:"crowd_level"`
	HourOfDay  int                  `json:"hour_of_day"`
	Position   *content.Coordinates `json:"position,omitempty"` // for restaurant proximity
}

// Weights are the linear-combination coefficients of the scorer.
type Weights struct {
	Interest      float64
	ThrillFit     float64
	WaitFit       float64
	LightningLane float64
	Crowd         float64

	Cuisine   float64
	PriceFit  float64
	Proximity float64
}

// DefaultWeights returns the tuning used when callers don't supply one.
func DefaultWeights() Weights {
	return Weights{
		Interest:      0.35,
		ThrillFit:     0.25,
		WaitFit:       0.20,
		LightningLane: 0.10,
		Crowd:         0.10,

		Cuisine:   0.35,
		PriceFit:  0.25,
		Proximity: 0.40,
	}
}

// Breakdown maps component names to their unweighted 0-1 values.
type Breakdown map[string]float64

// ScoredAttraction is one ranked attraction with its score breakdown.
type ScoredAttraction struct {
	Attraction content.Attraction `json:"attraction"`
	Score      float64            `json:"score"`
	Breakdown  Breakdown          `json:"breakdown"`
}

// ScoredRestaurant is one ranked restaurant with its score breakdown.
type ScoredRestaurant struct {
	Restaurant content.Restaurant `json:"restaurant"`
	Score      float64            `json:"score"`
	Breakdown  Breakdown          `json:"breakdown"`
}

// Scorer ranks attractions and restaurants for a party.
type Scorer struct {
	weights Weights
	logger  *slog.Logger
}

// NewScorer creates a scorer with the given weights.
// If logger is nil, a default logger will be used.
func NewScorer(weights Weights, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{
		weights: weights,
		logger:  logger.With(slog.String("component", "recommend_scorer")),
	}
}

// ScoreAttractions ranks the given attractions for the party. The result
// is ordered score descending, ties broken by ID ascending, so identical
// inputs always produce identical output.
func (s *Scorer) ScoreAttractions(
	profile PartyProfile,
	ctx Context,
	attractions []content.Attraction,
) []ScoredAttraction {
	scored := make([]ScoredAttraction, 0, len(attractions))
	for _, a := range attractions {
		scored = append(scored, s.scoreAttraction(profile, ctx, a))
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Attraction.ID < scored[j].Attraction.ID
	})

	s.logger.Debug("scored attractions",
		slog.String("park_id", ctx.ParkID),
		slog.Int("count", len(scored)))
	return scored
}

func (s *Scorer) scoreAttraction(
	profile PartyProfile,
	ctx Context,
	a content.Attraction,
) ScoredAttraction {
	breakdown := Breakdown{}

	// Height gates are a hard zero: if someone in the party can't ride and
	// the party won't split via ride swap, recommending it helps no one.
	if !heightEligible(a, profile) {
		breakdown["height_eligibility"] = 0
		return ScoredAttraction{Attraction: a, Score: 0, Breakdown: breakdown}
	}
	breakdown["height_eligibility"] = 1

	interest := tagOverlap(a.Tags, profile.Interests)
	breakdown["interest"] = interest

	thrill := thrillFit(a.ThrillLevel, profile.ThrillPreference)
	breakdown["thrill_fit"] = thrill

	wait := waitFit(ctx.Waits[a.ID], profile.MaxWaitMinutes)
	breakdown["wait_fit"] = wait

	ll := 0.0
	if a.LightningLane && profile.HasLightningLane {
		ll = 1.0
	}
	breakdown["lightning_lane"] = ll

	crowd := crowdFit(ctx.CrowdLevel, ll > 0)
	breakdown["crowd"] = crowd

	score := s.weights.Interest*interest +
		s.weights.ThrillFit*thrill +
		s.weights.WaitFit*wait +
		s.weights.LightningLane*ll +
		s.weights.Crowd*crowd

	return ScoredAttraction{Attraction: a, Score: score, Breakdown: breakdown}
}

// ScoreRestaurants ranks the given restaurants for the party, ordered
// score descending with ID-ascending tie-breaks.
func (s *Scorer) ScoreRestaurants(
	profile PartyProfile,
	ctx Context,
	restaurants []content.Restaurant,
) []ScoredRestaurant {
	scored := make([]ScoredRestaurant, 0, len(restaurants))
	for _, r := range restaurants {
		scored = append(scored, s.scoreRestaurant(profile, ctx, r))
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Restaurant.ID < scored[j].Restaurant.ID
	})

	return scored
}

func (s *Scorer) scoreRestaurant(
	profile PartyProfile,
	ctx Context,
	r content.Restaurant,
) ScoredRestaurant {
	breakdown := Breakdown{}

	// A stated dietary need the kitchen can't cover is a hard zero.
	if !dietaryCovered(r.DietaryTags, profile.DietaryNeeds) {
		breakdown["dietary_coverage"] = 0
		return ScoredRestaurant{Restaurant: r, Score: 0, Breakdown: breakdown}
	}
	breakdown["dietary_coverage"] = 1

	cuisine := cuisineMatch(r.Cuisine, profile.CuisinePrefs)
	breakdown["cuisine"] = cuisine

	price := priceFit(r.PriceTier, profile.MaxPriceTier)
	breakdown["price_fit"] = price

	proximity := 0.5 // neutral when position is unknown
	if ctx.Position != nil {
		proximity = proximityFit(*ctx.Position, r.Coordinates)
	}
	breakdown["proximity"] = proximity

	score := s.weights.Cuisine*cuisine +
		s.weights.PriceFit*price +
		s.weights.Proximity*proximity

	return ScoredRestaurant{Restaurant: r, Score: score, Breakdown: breakdown}
}

// heightEligible checks whether everyone in the party clears the height
// requirement, or the party accepts splitting via ride swap. A party with
// no recorded heights is assumed eligible.
func heightEligible(a content.Attraction, profile PartyProfile) bool {
	if a.HeightMinCM == 0 || profile.RideSwap || len(profile.HeightsCM) == 0 {
		return true
	}
	for _, h := range profile.HeightsCM {
		if h < a.HeightMinCM {
			return false
		}
	}
	return true
}

// tagOverlap is the fraction of the party's interests the entity's tags
// cover. No stated interests scores neutral.
func tagOverlap(tags, interests []string) float64 {
	if len(interests) == 0 {
		return 0.5
	}

	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[strings.ToLower(t)] = true
	}

	matched := 0
	for _, interest := range interests {
		if tagSet[strings.ToLower(interest)] {
			matched++
		}
	}
	return float64(matched) / float64(len(interests))
}

// thrillFit is 1 at an exact thrill-level match, falling off linearly to 0
// at the maximum possible distance of 4.
func thrillFit(level, preference int) float64 {
	if preference < 1 {
		return 0.5
	}
	diff := level - preference
	if diff < 0 {
		diff = -diff
	}
	return 1 - float64(diff)/4
}

// waitFit is 1 for a walk-on, 0 at or beyond the party's tolerance.
// A party with no stated tolerance doesn't care about waits.
func waitFit(waitMinutes, tolerance int) float64 {
	if tolerance <= 0 {
		return 1
	}
	if waitMinutes >= tolerance {
		return 0
	}
	return 1 - float64(waitMinutes)/float64(tolerance)
}

// crowdFit degrades with the park's crowd level, except for Lightning Lane
// picks the party can bypass queues on.
func crowdFit(level analytics.CrowdLevel, hasPriority bool) float64 {
	if hasPriority {
		return 1
	}
	if level < 1 {
		return 1
	}
	return 1 - float64(level-1)/9
}

// dietaryCovered checks that every stated need appears in the restaurant's
// dietary tags.
func dietaryCovered(tags, needs []string) bool {
	if len(needs) == 0 {
		return true
	}

	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[strings.ToLower(t)] = true
	}

	for _, need := range needs {
		if !tagSet[strings.ToLower(need)] {
			return false
		}
	}
	return true
}

// cuisineMatch is 1 for a preferred cuisine, neutral with no stated
// preferences, and 0 otherwise.
func cuisineMatch(cuisine string, prefs []string) float64 {
	if len(prefs) == 0 {
		return 0.5
	}
	for _, p := range prefs {
		if strings.EqualFold(p, cuisine) {
			return 1
		}
	}
	return 0
}

// priceFit is 1 within budget and falls off by half a point per tier over.
func priceFit(tier, maxTier int) float64 {
	if maxTier <= 0 || tier <= maxTier {
		return 1
	}
	fit := 1 - 0.5*float64(tier-maxTier)
	if fit < 0 {
		return 0
	}
	return fit
}

// proximityFit is 1 at the guest's position and 0 at two kilometers away,
// roughly the far corner of a park.
func proximityFit(from, to content.Coordinates) float64 {
	const maxWalkMeters = 2000.0
	d := geo.Distance(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
	if d >= maxWalkMeters {
		return 0
	}
	return 1 - d/maxWalkMeters
}
