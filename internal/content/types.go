// Package content holds the static resort catalogs: parks, attractions,
// restaurants, resorts, and seasonal events, along with lookup and filter
// helpers. Catalog data is embedded in the binary; live state (waits,
// schedules) comes from the themeparks client.
package content

import "time"

// Coordinates is a WGS84 position inside the resort.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Park is one gated theme park.
type Park struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Timezone    string      `json:"timezone"`
	Coordinates Coordinates `json:"coordinates"`
}

// Category groups attractions by ride style.
type Category string

const (
	CategoryThrill Category = "thrill"
	CategoryFamily Category = "family"
	CategoryKids   Category = "kids"
	CategoryShow   Category = "show"
	CategoryDark   Category = "dark"
)

// Attraction is one ride, show, or experience.
type Attraction struct {
	ID            string      `json:"id"`
	ParkID        string      `json:"park_id"`
	Land          string      `json:"land"`
	Name          string      `json:"name"`
	Category      Category    `json:"category"`
	ThrillLevel   int         `json:"thrill_level"`   // 1 (gentle) .. 5 (intense)
	HeightMinCM   int         `json:"height_min_cm"`  // 0 means no height requirement
	LightningLane bool        `json:"lightning_lane"` // eligible for paid queue priority
	Headliner     bool        `json:"headliner"`
	DurationMin   int         `json:"duration_min"`
	Tags          []string    `json:"tags"`
	Coordinates   Coordinates `json:"coordinates"`
}

// ServiceType distinguishes restaurant service styles.
type ServiceType string

const (
	ServiceQuick     ServiceType = "quick"
	ServiceTable     ServiceType = "table"
	ServiceSignature ServiceType = "signature"
)

// Restaurant is one dining location. DiningPlanCredits is how many plan
// credits a meal costs; PriceTier runs 1 (cheapest) to 4.
type Restaurant struct {
	ID                string      `json:"id"`
	ParkID            string      `json:"park_id"` // park or resort ID
	Land              string      `json:"land"`
	Name              string      `json:"name"`
	Cuisine           string      `json:"cuisine"`
	Service           ServiceType `json:"service"`
	PriceTier         int         `json:"price_tier"`
	DiningPlanCredits int         `json:"dining_plan_credits"`
	DietaryTags       []string    `json:"dietary_tags"` // e.g. vegetarian, vegan, gluten-free
	Tags              []string    `json:"tags"`
	Coordinates       Coordinates `json:"coordinates"`
}

// Resort is an on-property hotel.
type Resort struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Tier      string   `json:"tier"` // value, moderate, deluxe
	Transport []string `json:"transport"`
}

// Event is a seasonal happening spanning one or more parks.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParkIDs   []string  `json:"park_ids"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}
