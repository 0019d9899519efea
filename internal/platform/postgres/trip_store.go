package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/platform/logger"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// PostgresTripStore implements the store.TripStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTripStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTripStore creates a new PostgreSQL implementation of the TripStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTripStore(db store.DBTX, logger *slog.Logger) *PostgresTripStore {
	if db == nil {
		// ALLOW-PANIC: Constructor requires non-nil DB
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTripStore{
		db:     db,
		logger: logger.With(slog.String("component", "trip_store")),
	}
}

// Ensure PostgresTripStore implements store.TripStore interface
var _ store.TripStore = (*PostgresTripStore)(nil)

// WithTx implements store.TripStore.WithTx
func (s *PostgresTripStore) WithTx(tx *sql.Tx) store.TripStore {
	return &PostgresTripStore{db: tx, logger: s.logger}
}

// Create implements store.TripStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresTripStore) Create(ctx context.Context, trip *domain.Trip) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := trip.Validate(); err != nil {
		log.Warn("trip validation failed during create",
			slog.String("error", err.Error()),
			slog.String("trip_id", trip.ID.String()))
		return err
	}

	query := `
		INSERT INTO trips (id, owner_id, name, start_date, end_date, party_size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		trip.ID,
		trip.OwnerID,
		trip.Name,
		trip.StartDate,
		trip.EndDate,
		trip.PartySize,
		trip.CreatedAt,
		trip.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during trip creation",
				slog.String("trip_id", trip.ID.String()),
				slog.String("owner_id", trip.OwnerID.String()))
			return fmt.Errorf("%w: owner with ID %s not found",
				store.ErrInvalidEntity, trip.OwnerID)
		}

		log.Error("failed to create trip",
			slog.String("error", err.Error()),
			slog.String("trip_id", trip.ID.String()))
		return MapError(err)
	}

	log.Info("trip created successfully",
		slog.String("trip_id", trip.ID.String()),
		slog.String("owner_id", trip.OwnerID.String()))
	return nil
}

// GetByID implements store.TripStore.GetByID
// Returns store.ErrTripNotFound if the trip does not exist.
func (s *PostgresTripStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, name, start_date, end_date, party_size, created_at, updated_at
		FROM trips
		WHERE id = $1
	`

	var trip domain.Trip
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.OwnerID,
		&trip.Name,
		&trip.StartDate,
		&trip.EndDate,
		&trip.PartySize,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("trip not found", slog.String("trip_id", id.String()))
			return nil, store.ErrTripNotFound
		}
		log.Error("failed to get trip by ID",
			slog.String("error", err.Error()),
			slog.String("trip_id", id.String()))
		return nil, err
	}

	return &trip, nil
}

// ListByOwner implements store.TripStore.ListByOwner
func (s *PostgresTripStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Trip, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, owner_id, name, start_date, end_date, party_size, created_at, updated_at
		FROM trips
		WHERE owner_id = $1
		ORDER BY start_date ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to query trips by owner",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	trips := []*domain.Trip{}
	for rows.Next() {
		var trip domain.Trip
		err := rows.Scan(
			&trip.ID,
			&trip.OwnerID,
			&trip.Name,
			&trip.StartDate,
			&trip.EndDate,
			&trip.PartySize,
			&trip.CreatedAt,
			&trip.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan trip row",
				slog.String("error", err.Error()))
			return nil, err
		}
		trips = append(trips, &trip)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return trips, nil
}

// Update implements store.TripStore.Update
// Returns store.ErrTripNotFound if the trip does not exist.
func (s *PostgresTripStore) Update(ctx context.Context, trip *domain.Trip) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := trip.Validate(); err != nil {
		log.Warn("trip validation failed during update",
			slog.String("error", err.Error()),
			slog.String("trip_id", trip.ID.String()))
		return err
	}

	trip.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE trips
		SET name = $1, start_date = $2, end_date = $3, party_size = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		trip.Name,
		trip.StartDate,
		trip.EndDate,
		trip.PartySize,
		trip.UpdatedAt,
		trip.ID,
	)

	if err != nil {
		log.Error("failed to update trip",
			slog.String("error", err.Error()),
			slog.String("trip_id", trip.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "trip"); err != nil {
		log.Debug("trip not found for update",
			slog.String("trip_id", trip.ID.String()))
		return store.ErrTripNotFound
	}

	log.Info("trip updated successfully",
		slog.String("trip_id", trip.ID.String()))
	return nil
}

// Delete implements store.TripStore.Delete
// Trip items and messages are removed by ON DELETE CASCADE.
// Returns store.ErrTripNotFound if the trip does not exist.
func (s *PostgresTripStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete trip",
			slog.String("error", err.Error()),
			slog.String("trip_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "trip"); err != nil {
		log.Debug("trip not found for delete",
			slog.String("trip_id", id.String()))
		return store.ErrTripNotFound
	}

	log.Info("trip deleted successfully",
		slog.String("trip_id", id.String()))
	return nil
}
