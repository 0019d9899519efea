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

// PostgresGeofenceStore implements the store.GeofenceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGeofenceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGeofenceStore creates a new PostgreSQL implementation of the GeofenceStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresGeofenceStore(db store.DBTX, logger *slog.Logger) *PostgresGeofenceStore {
	if db == nil {
		// ALLOW-PANIC: Constructor requires non-nil DB
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresGeofenceStore{
		db:     db,
		logger: logger.With(slog.String("component", "geofence_store")),
	}
}

// Ensure PostgresGeofenceStore implements store.GeofenceStore interface
var _ store.GeofenceStore = (*PostgresGeofenceStore)(nil)

// WithTx implements store.GeofenceStore.WithTx
func (s *PostgresGeofenceStore) WithTx(tx *sql.Tx) store.GeofenceStore {
	return &PostgresGeofenceStore{db: tx, logger: s.logger}
}

const geofenceColumns = `id, owner_id, name, latitude, longitude, radius_meters,
	min_altitude_m, max_altitude_m, heading_start_deg, heading_end_deg,
	active_start_min, active_end_min, cooldown_sec, dwell_min_sec,
	created_at, updated_at`

// Create implements store.GeofenceStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresGeofenceStore) Create(ctx context.Context, fence *domain.Geofence) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := fence.Validate(); err != nil {
		log.Warn("geofence validation failed during create",
			slog.String("error", err.Error()),
			slog.String("geofence_id", fence.ID.String()))
		return err
	}

	query := `
		INSERT INTO geofences (` + geofenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		fence.ID,
		fence.OwnerID,
		fence.Name,
		fence.Latitude,
		fence.Longitude,
		fence.RadiusMeters,
		fence.MinAltitudeM,
		fence.MaxAltitudeM,
		fence.HeadingStartDeg,
		fence.HeadingEndDeg,
		fence.ActiveStartMin,
		fence.ActiveEndMin,
		fence.CooldownSec,
		fence.DwellMinSec,
		fence.CreatedAt,
		fence.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during geofence creation",
				slog.String("geofence_id", fence.ID.String()),
				slog.String("owner_id", fence.OwnerID.String()))
			return fmt.Errorf("%w: owner with ID %s not found",
				store.ErrInvalidEntity, fence.OwnerID)
		}

		log.Error("failed to create geofence",
			slog.String("error", err.Error()),
			slog.String("geofence_id", fence.ID.String()))
		return MapError(err)
	}

	log.Info("geofence created successfully",
		slog.String("geofence_id", fence.ID.String()),
		slog.String("owner_id", fence.OwnerID.String()))
	return nil
}

// GetByID implements store.GeofenceStore.GetByID
// Returns store.ErrGeofenceNotFound if the geofence does not exist.
func (s *PostgresGeofenceStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Geofence, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + geofenceColumns + ` FROM geofences WHERE id = $1`

	fence, err := scanGeofence(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("geofence not found", slog.String("geofence_id", id.String()))
			return nil, store.ErrGeofenceNotFound
		}
		log.Error("failed to get geofence by ID",
			slog.String("error", err.Error()),
			slog.String("geofence_id", id.String()))
		return nil, err
	}

	return fence, nil
}

// ListByOwner implements store.GeofenceStore.ListByOwner
func (s *PostgresGeofenceStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Geofence, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + geofenceColumns + `
		FROM geofences
		WHERE owner_id = $1
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to query geofences by owner",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	fences := []*domain.Geofence{}
	for rows.Next() {
		fence, err := scanGeofence(rows)
		if err != nil {
			log.Error("failed to scan geofence row",
				slog.String("error", err.Error()))
			return nil, err
		}
		fences = append(fences, fence)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return fences, nil
}

// Update implements store.GeofenceStore.Update
// Returns store.ErrGeofenceNotFound if the geofence does not exist.
func (s *PostgresGeofenceStore) Update(ctx context.Context, fence *domain.Geofence) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := fence.Validate(); err != nil {
		log.Warn("geofence validation failed during update",
			slog.String("error", err.Error()),
			slog.String("geofence_id", fence.ID.String()))
		return err
	}

	fence.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE geofences
		SET name = $1, latitude = $2, longitude = $3, radius_meters = $4,
			min_altitude_m = $5, max_altitude_m = $6,
			heading_start_deg = $7, heading_end_deg = $8,
			active_start_min = $9, active_end_min = $10,
			cooldown_sec = $11, dwell_min_sec = $12, updated_at = $13
		WHERE id = $14
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		fence.Name,
		fence.Latitude,
		fence.Longitude,
		fence.RadiusMeters,
		fence.MinAltitudeM,
		fence.MaxAltitudeM,
		fence.HeadingStartDeg,
		fence.HeadingEndDeg,
		fence.ActiveStartMin,
		fence.ActiveEndMin,
		fence.CooldownSec,
		fence.DwellMinSec,
		fence.UpdatedAt,
		fence.ID,
	)

	if err != nil {
		log.Error("failed to update geofence",
			slog.String("error", err.Error()),
			slog.String("geofence_id", fence.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "geofence"); err != nil {
		log.Debug("geofence not found for update",
			slog.String("geofence_id", fence.ID.String()))
		return store.ErrGeofenceNotFound
	}

	log.Info("geofence updated successfully",
		slog.String("geofence_id", fence.ID.String()))
	return nil
}

// Delete implements store.GeofenceStore.Delete
// Returns store.ErrGeofenceNotFound if the geofence does not exist.
func (s *PostgresGeofenceStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM geofences WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete geofence",
			slog.String("error", err.Error()),
			slog.String("geofence_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "geofence"); err != nil {
		log.Debug("geofence not found for delete",
			slog.String("geofence_id", id.String()))
		return store.ErrGeofenceNotFound
	}

	log.Info("geofence deleted successfully",
		slog.String("geofence_id", id.String()))
	return nil
}

func scanGeofence(row rowScanner) (*domain.Geofence, error) {
	var fence domain.Geofence
	err := row.Scan(
		&fence.ID,
		&fence.OwnerID,
		&fence.Name,
		&fence.Latitude,
		&fence.Longitude,
		&fence.RadiusMeters,
		&fence.MinAltitudeM,
		&fence.MaxAltitudeM,
		&fence.HeadingStartDeg,
		&fence.HeadingEndDeg,
		&fence.ActiveStartMin,
		&fence.ActiveEndMin,
		&fence.CooldownSec,
		&fence.DwellMinSec,
		&fence.CreatedAt,
		&fence.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &fence, nil
}
