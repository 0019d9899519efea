package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Trip item validation errors
var (
	ErrTripItemIDEmpty     = errors.New("trip item ID cannot be empty")
	ErrTripItemTripEmpty   = errors.New("trip item trip ID cannot be empty")
	ErrTripItemEntityEmpty = errors.New("trip item entity ID cannot be empty")
	ErrTripItemKindInvalid = errors.New("trip item kind must be attraction, restaurant, or event")
	ErrTripItemDayInvalid  = errors.New("trip item day must be at least 1")
)

// EntityKind identifies which catalog a trip item references.
type EntityKind string

const (
	KindAttraction EntityKind = "attraction"
	KindRestaurant EntityKind = "restaurant"
	KindEvent      EntityKind = "event"
)

// TripItem is one entry on a trip's shared list: a catalog entity pinned to
// a day of the trip. SortOrder is the position within that day.
type TripItem struct {
	ID        uuid.UUID  `json:"id"`
	TripID    uuid.UUID  `json:"trip_id"`
	EntityID  string     `json:"entity_id"`
	Kind      EntityKind `json:"kind"`
	Day       int        `json:"day"`
	Note      string     `json:"note,omitempty"`
	SortOrder int        `json:"sort_order"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewTripItem creates a new TripItem for the given trip.
// Returns an error if validation fails.
func NewTripItem(tripID uuid.UUID, entityID string, kind EntityKind, day int) (*TripItem, error) {
	item := &TripItem{
		ID:        uuid.New(),
		TripID:    tripID,
		EntityID:  entityID,
		Kind:      kind,
		Day:       day,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the TripItem has valid data.
func (i *TripItem) Validate() error {
	if i.ID == uuid.Nil {
		return ErrTripItemIDEmpty
	}

	if i.TripID == uuid.Nil {
		return ErrTripItemTripEmpty
	}

	if i.EntityID == "" {
		return ErrTripItemEntityEmpty
	}

	switch i.Kind {
	case KindAttraction, KindRestaurant, KindEvent:
	default:
		return ErrTripItemKindInvalid
	}

	if i.Day < 1 {
		return ErrTripItemDayInvalid
	}

	return nil
}
