package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
)

// TripMemberStore defines the interface for trip membership persistence.
// Membership grants non-owners access to a trip; the owner never has a row.
type TripMemberStore interface {
	// Add saves a new trip membership.
	// Returns ErrMemberExists if the user is already a member of the trip.
	Add(ctx context.Context, member *domain.TripMember) error

	// Remove deletes a membership.
	// Returns ErrMemberNotFound if the user is not a member of the trip.
	Remove(ctx context.Context, tripID, userID uuid.UUID) error

	// IsMember reports whether the user is a member of the trip.
	IsMember(ctx context.Context, tripID, userID uuid.UUID) (bool, error)

	// ListByTrip retrieves a trip's members ordered by when they were added.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.TripMember, error)

	// ListTripIDsByUser retrieves the IDs of every trip the user is a
	// member of. Returns an empty slice when the user has none.
	ListTripIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// WithTx returns a new TripMemberStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TripMemberStore
}
