package content

import (
	"fmt"
	"time"
)

// Index maps built once at startup. Duplicate IDs are a programming error
// in the catalog data, so init panics rather than serving ambiguous lookups.
var (
	parkIndex       = map[string]Park{}
	attractionIndex = map[string]Attraction{}
	restaurantIndex = map[string]Restaurant{}
	resortIndex     = map[string]Resort{}
	eventIndex      = map[string]Event{}
)

func init() {
	for _, p := range parks {
		if _, dup := parkIndex[p.ID]; dup {
			// ALLOW-PANIC: catalog integrity checked at startup
			panic(fmt.Sprintf("duplicate park ID %q", p.ID))
		}
		parkIndex[p.ID] = p
	}
	for _, a := range attractions {
		if _, dup := attractionIndex[a.ID]; dup {
			// ALLOW-PANIC: catalog integrity checked at startup
			panic(fmt.Sprintf("duplicate attraction ID %q", a.ID))
		}
		attractionIndex[a.ID] = a
	}
	for _, r := range restaurants {
		if _, dup := restaurantIndex[r.ID]; dup {
			// ALLOW-PANIC: catalog integrity checked at startup
			panic(fmt.Sprintf("duplicate restaurant ID %q", r.ID))
		}
		restaurantIndex[r.ID] = r
	}
	for _, r := range resorts {
		if _, dup := resortIndex[r.ID]; dup {
			// ALLOW-PANIC: catalog integrity checked at startup
			panic(fmt.Sprintf("duplicate resort ID %q", r.ID))
		}
		resortIndex[r.ID] = r
	}
	for _, e := range events {
		if _, dup := eventIndex[e.ID]; dup {
			// ALLOW-PANIC: catalog integrity checked at startup
			panic(fmt.Sprintf("duplicate event ID %q", e.ID))
		}
		eventIndex[e.ID] = e
	}
}

// Parks returns a copy of the park catalog.
func Parks() []Park {
	out := make([]Park, len(parks))
	copy(out, parks)
	return out
}

// ParkByID looks up a park by its ID.
func ParkByID(id string) (Park, bool) {
	p, ok := parkIndex[id]
	return p, ok
}

// Attractions returns a copy of the full attraction catalog.
func Attractions() []Attraction {
	out := make([]Attraction, len(attractions))
	copy(out, attractions)
	return out
}

// AttractionByID looks up an attraction by its ID.
func AttractionByID(id string) (Attraction, bool) {
	a, ok := attractionIndex[id]
	return a, ok
}

// AttractionsByPark returns all attractions in the given park.
func AttractionsByPark(parkID string) []Attraction {
	var out []Attraction
	for _, a := range attractions {
		if a.ParkID == parkID {
			out = append(out, a)
		}
	}
	return out
}

// Restaurants returns a copy of the full dining catalog.
func Restaurants() []Restaurant {
	out := make([]Restaurant, len(restaurants))
	copy(out, restaurants)
	return out
}

// RestaurantByID looks up a restaurant by its ID.
func RestaurantByID(id string) (Restaurant, bool) {
	r, ok := restaurantIndex[id]
	return r, ok
}

// Resorts returns a copy of the resort catalog.
func Resorts() []Resort {
	out := make([]Resort, len(resorts))
	copy(out, resorts)
	return out
}

// ResortByID looks up a resort by its ID.
func ResortByID(id string) (Resort, bool) {
	r, ok := resortIndex[id]
	return r, ok
}

// Events returns a copy of the event catalog.
func Events() []Event {
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// EventByID looks up an event by its ID.
func EventByID(id string) (Event, bool) {
	e, ok := eventIndex[id]
	return e, ok
}

// EventsOn returns the events running on the given date, optionally
// restricted to a park (empty parkID matches all parks).
func EventsOn(date time.Time, parkID string) []Event {
	var out []Event
	for _, e := range events {
		if date.Before(e.StartDate) || date.After(e.EndDate) {
			continue
		}
		if parkID != "" && !containsString(e.ParkIDs, parkID) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
