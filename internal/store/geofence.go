package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
)

// GeofenceStore defines the interface for geofence data persistence.
type GeofenceStore interface {
	// Create saves a new geofence to the store.
	// It handles domain validation internally.
	Create(ctx context.Context, fence *domain.Geofence) error

	// GetByID retrieves a geofence by its unique ID.
	// Returns ErrGeofenceNotFound if the geofence does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Geofence, error)

	// ListByOwner retrieves all geofences belonging to the given user.
	// Returns an empty slice when the user has none.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Geofence, error)

	// Update saves changes to an existing geofence.
	// Returns ErrGeofenceNotFound if the geofence does not exist.
	Update(ctx context.Context, fence *domain.Geofence) error

	// Delete removes a geofence from the store.
	// Returns ErrGeofenceNotFound if the geofence does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new GeofenceStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) GeofenceStore
}
