package content

// AttractionFilter selects attractions by the criteria the browse UI
// exposes. Zero values mean "no restriction".
type AttractionFilter struct {
	ParkID            string
	Category          Category
	MaxThrill         int // 0 = unrestricted
	MaxHeightMinCM    int // only attractions ridable at this height; 0 = unrestricted
	LightningLaneOnly bool
	HeadlinersOnly    bool
	Tags              []string // attraction must carry every listed tag
}

// FilterAttractions returns catalog attractions matching the filter.
// The catalog itself is never mutated.
func FilterAttractions(f AttractionFilter) []Attraction {
	var out []Attraction
	for _, a := range attractions {
		if f.ParkID != "" && a.ParkID != f.ParkID {
			continue
		}
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		if f.MaxThrill > 0 && a.ThrillLevel > f.MaxThrill {
			continue
		}
		if f.MaxHeightMinCM > 0 && a.HeightMinCM > f.MaxHeightMinCM {
			continue
		}
		if f.LightningLaneOnly && !a.LightningLane {
			continue
		}
		if f.HeadlinersOnly && !a.Headliner {
			continue
		}
		if !hasAllTags(a.Tags, f.Tags) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// RestaurantFilter selects restaurants by the criteria the dining browse
// exposes. Zero values mean "no restriction".
type RestaurantFilter struct {
	ParkID       string
	Cuisine      string
	Service      ServiceType
	MaxPriceTier int      // 0 = unrestricted
	DietaryTags  []string // restaurant must cover every listed need
	Tags         []string
}

// FilterRestaurants returns catalog restaurants matching the filter.
func FilterRestaurants(f RestaurantFilter) []Restaurant {
	var out []Restaurant
	for _, r := range restaurants {
		if f.ParkID != "" && r.ParkID != f.ParkID {
			continue
		}
		if f.Cuisine != "" && r.Cuisine != f.Cuisine {
			continue
		}
		if f.Service != "" && r.Service != f.Service {
			continue
		}
		if f.MaxPriceTier > 0 && r.PriceTier > f.MaxPriceTier {
			continue
		}
		if !hasAllTags(r.DietaryTags, f.DietaryTags) {
			continue
		}
		if !hasAllTags(r.Tags, f.Tags) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func hasAllTags(have, want []string) bool {
	for _, w := range want {
		if !containsString(have, w) {
			return false
		}
	}
	return true
}
