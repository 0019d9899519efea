package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Trip member validation errors
var (
	ErrMemberTripEmpty = errors.New("member trip ID cannot be empty")
	ErrMemberUserEmpty = errors.New("member user ID cannot be empty")
)

// TripMember grants a user access to a trip they do not own: its items,
// its chat room, and its presence roster. The owner is implicit and never
// appears as a member row.
type TripMember struct {
	TripID  uuid.UUID `json:"trip_id"`
	UserID  uuid.UUID `json:"user_id"`
	AddedAt time.Time `json:"added_at"`
}

// NewTripMember creates a membership of the given user in the given trip.
// Returns an error if validation fails.
func NewTripMember(tripID, userID uuid.UUID) (*TripMember, error) {
	member := &TripMember{
		TripID:  tripID,
		UserID:  userID,
		AddedAt: time.Now().UTC(),
	}

	if err := member.Validate(); err != nil {
		return nil, err
	}

	return member, nil
}

// Validate checks if the TripMember has valid data.
func (m *TripMember) Validate() error {
	if m.TripID == uuid.Nil {
		return ErrMemberTripEmpty
	}

	if m.UserID == uuid.Nil {
		return ErrMemberUserEmpty
	}

	return nil
}
