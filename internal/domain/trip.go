package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Trip-specific validation errors
var (
	ErrTripIDEmpty      = errors.New("trip ID cannot be empty")
	ErrTripOwnerEmpty   = errors.New("trip owner ID cannot be empty")
	ErrTripNameEmpty    = errors.New("trip name cannot be empty")
	ErrTripDatesInvalid = errors.New("trip end date cannot be before start date")
	ErrTripPartyInvalid = errors.New("trip party size must be at least 1")
)

// Trip represents a planned resort visit shared by a party. Trip items and
// chat messages hang off a trip; the trip ID doubles as the realtime room name.
type Trip struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	PartySize int       `json:"party_size"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTrip creates a new Trip owned by the given user.
// Returns an error if validation fails.
func NewTrip(ownerID uuid.UUID, name string, start, end time.Time, partySize int) (*Trip, error) {
	trip := &Trip{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		StartDate: start,
		EndDate:   end,
		PartySize: partySize,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := trip.Validate(); err != nil {
		return nil, err
	}

	return trip, nil
}

// Validate checks if the Trip has valid data.
func (t *Trip) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTripIDEmpty
	}

	if t.OwnerID == uuid.Nil {
		return ErrTripOwnerEmpty
	}

	if strings.TrimSpace(t.Name) == "" {
		return ErrTripNameEmpty
	}

	if t.EndDate.Before(t.StartDate) {
		return ErrTripDatesInvalid
	}

	if t.PartySize < 1 {
		return ErrTripPartyInvalid
	}

	return nil
}

// Days returns the number of calendar days the trip spans, inclusive.
func (t *Trip) Days() int {
	return int(t.EndDate.Sub(t.StartDate).Hours()/24) + 1
}
