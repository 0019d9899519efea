package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
)

// TripStore defines the interface for trip data persistence.
type TripStore interface {
	// Create saves a new trip to the store.
	// It handles domain validation internally.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetByID retrieves a trip by its unique ID.
	// Returns ErrTripNotFound if the trip does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)

	// ListByOwner retrieves all trips belonging to the given user,
	// ordered by start date. Returns an empty slice when the user has none.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Trip, error)

	// Update saves changes to an existing trip.
	// Returns ErrTripNotFound if the trip does not exist.
	Update(ctx context.Context, trip *domain.Trip) error

	// Delete removes a trip and its items from the store.
	// Returns ErrTripNotFound if the trip does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TripStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TripStore
}

// TripItemStore defines the interface for trip item persistence.
// Items are the attractions, restaurants, and events pinned to a trip day.
type TripItemStore interface {
	// Create saves a new trip item.
	// The caller is responsible for verifying the trip exists and the
	// requester may modify it.
	Create(ctx context.Context, item *domain.TripItem) error

	// GetByID retrieves a trip item by its unique ID.
	// Returns ErrTripItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TripItem, error)

	// ListByTrip retrieves all items for a trip ordered by day then sort order.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]*domain.TripItem, error)

	// Update saves changes to an existing trip item.
	// Returns ErrTripItemNotFound if the item does not exist.
	Update(ctx context.Context, item *domain.TripItem) error

	// Delete removes a trip item from the store.
	// Returns ErrTripItemNotFound if the item does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TripItemStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TripItemStore
}
