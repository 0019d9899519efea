package themeparks

import "time"

// Queue statuses reported by the upstream live data feed.
const (
	StatusOperating = "OPERATING"
	StatusDown      = "DOWN"
	StatusClosed    = "CLOSED"
	StatusRefurb    = "REFURBISHMENT"
)

// LiveWaitTime is the flattened live state of one attraction.
type LiveWaitTime struct {
	EntityID    string    `json:"entityId"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	WaitMinutes int       `json:"waitMinutes"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// ScheduleEntry is one operating-hours window for a park.
type ScheduleEntry struct {
	Date        string    `json:"date"` // YYYY-MM-DD
	Type        string    `json:"type"` // OPERATING, EXTRA_HOURS, TICKETED_EVENT
	OpeningTime time.Time `json:"openingTime"`
	ClosingTime time.Time `json:"closingTime"`
}

// EntityDetails is the slow-changing metadata for a park or attraction.
type EntityDetails struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	EntityType string   `json:"entityType"` // DESTINATION, PARK, ATTRACTION, RESTAURANT
	ParentID   string   `json:"parentId,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Timezone   string   `json:"timezone,omitempty"`
}

// Wire-format types below mirror the upstream JSON shapes. They are decoded
// and immediately flattened into the exported types above.

type liveResponse struct {
	ID       string     `json:"id"`
	LiveData []liveData `json:"liveData"`
}

type liveData struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	EntityType  string    `json:"entityType"`
	Status      string    `json:"status"`
	Queue       *queue    `json:"queue,omitempty"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type queue struct {
	Standby *standbyQueue `json:"STANDBY,omitempty"`
}

type standbyQueue struct {
	WaitTime *int `json:"waitTime"`
}

type scheduleResponse struct {
	ID       string          `json:"id"`
	Schedule []scheduleEntry `json:"schedule"`
}

type scheduleEntry struct {
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	OpeningTime time.Time `json:"openingTime"`
	ClosingTime time.Time `json:"closingTime"`
}

type entityResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	EntityType string    `json:"entityType"`
	ParentID   string    `json:"parentId"`
	Location   *location `json:"location"`
	Timezone   string    `json:"timezone"`
}

type location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
