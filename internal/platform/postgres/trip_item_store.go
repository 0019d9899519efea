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

// PostgresTripItemStore implements the store.TripItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTripItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTripItemStore creates a new PostgreSQL implementation of the TripItemStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTripItemStore(db store.DBTX, logger *slog.Logger) *PostgresTripItemStore {
	if db == nil {
		// ALLOW-PANIC: Constructor requires non-nil DB
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTripItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "trip_item_store")),
	}
}

// Ensure PostgresTripItemStore implements store.TripItemStore interface
var _ store.TripItemStore = (*PostgresTripItemStore)(nil)

// WithTx implements store.TripItemStore.WithTx
func (s *PostgresTripItemStore) WithTx(tx *sql.Tx) store.TripItemStore {
	return &PostgresTripItemStore{db: tx, logger: s.logger}
}

// Create implements store.TripItemStore.Create
// Returns store.ErrInvalidEntity if the trip does not exist.
func (s *PostgresTripItemStore) Create(ctx context.Context, item *domain.TripItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("trip item validation failed during create",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	query := `
		INSERT INTO trip_items (id, trip_id, entity_id, kind, day, note, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.TripID,
		item.EntityID,
		item.Kind,
		item.Day,
		item.Note,
		item.SortOrder,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during trip item creation",
				slog.String("item_id", item.ID.String()),
				slog.String("trip_id", item.TripID.String()))
			return fmt.Errorf("%w: trip with ID %s not found",
				store.ErrInvalidEntity, item.TripID)
		}

		log.Error("failed to create trip item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return MapError(err)
	}

	log.Info("trip item created successfully",
		slog.String("item_id", item.ID.String()),
		slog.String("trip_id", item.TripID.String()),
		slog.String("entity_id", item.EntityID))
	return nil
}

// GetByID implements store.TripItemStore.GetByID
// Returns store.ErrTripItemNotFound if the item does not exist.
func (s *PostgresTripItemStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.TripItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, trip_id, entity_id, kind, day, note, sort_order, created_at, updated_at
		FROM trip_items
		WHERE id = $1
	`

	item, err := scanTripItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("trip item not found", slog.String("item_id", id.String()))
			return nil, store.ErrTripItemNotFound
		}
		log.Error("failed to get trip item by ID",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return nil, err
	}

	return item, nil
}

// ListByTrip implements store.TripItemStore.ListByTrip
func (s *PostgresTripItemStore) ListByTrip(
	ctx context.Context,
	tripID uuid.UUID,
) ([]*domain.TripItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, trip_id, entity_id, kind, day, note, sort_order, created_at, updated_at
		FROM trip_items
		WHERE trip_id = $1
		ORDER BY day ASC, sort_order ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, tripID)
	if err != nil {
		log.Error("failed to query trip items",
			slog.String("error", err.Error()),
			slog.String("trip_id", tripID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	items := []*domain.TripItem{}
	for rows.Next() {
		item, err := scanTripItem(rows)
		if err != nil {
			log.Error("failed to scan trip item row",
				slog.String("error", err.Error()))
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return items, nil
}

// Update implements store.TripItemStore.Update
// Returns store.ErrTripItemNotFound if the item does not exist.
func (s *PostgresTripItemStore) Update(ctx context.Context, item *domain.TripItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("trip item validation failed during update",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	item.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE trip_items
		SET entity_id = $1, kind = $2, day = $3, note = $4, sort_order = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		item.EntityID,
		item.Kind,
		item.Day,
		item.Note,
		item.SortOrder,
		item.UpdatedAt,
		item.ID,
	)

	if err != nil {
		log.Error("failed to update trip item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "trip item"); err != nil {
		log.Debug("trip item not found for update",
			slog.String("item_id", item.ID.String()))
		return store.ErrTripItemNotFound
	}

	log.Info("trip item updated successfully",
		slog.String("item_id", item.ID.String()))
	return nil
}

// Delete implements store.TripItemStore.Delete
// Returns store.ErrTripItemNotFound if the item does not exist.
func (s *PostgresTripItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM trip_items WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete trip item",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "trip item"); err != nil {
		log.Debug("trip item not found for delete",
			slog.String("item_id", id.String()))
		return store.ErrTripItemNotFound
	}

	log.Info("trip item deleted successfully",
		slog.String("item_id", id.String()))
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTripItem(row rowScanner) (*domain.TripItem, error) {
	var item domain.TripItem
	var kind string

	err := row.Scan(
		&item.ID,
		&item.TripID,
		&item.EntityID,
		&kind,
		&item.Day,
		&item.Note,
		&item.SortOrder,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Kind = domain.EntityKind(kind)
	return &item, nil
}
