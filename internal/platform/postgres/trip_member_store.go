package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/platform/logger"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// PostgresTripMemberStore implements the store.TripMemberStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTripMemberStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTripMemberStore creates a new PostgreSQL implementation of the TripMemberStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTripMemberStore(db store.DBTX, logger *slog.Logger) *PostgresTripMemberStore {
	if db == nil {
		// ALLOW-PANIC: Constructor requires non-nil DB
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTripMemberStore{
		db:     db,
		logger: logger.With(slog.String("component", "trip_member_store")),
	}
}

// Ensure PostgresTripMemberStore implements store.TripMemberStore interface
var _ store.TripMemberStore = (*PostgresTripMemberStore)(nil)

// WithTx implements store.TripMemberStore.WithTx
func (s *PostgresTripMemberStore) WithTx(tx *sql.Tx) store.TripMemberStore {
	return &PostgresTripMemberStore{db: tx, logger: s.logger}
}

// Add implements store.TripMemberStore.Add
// Returns store.ErrMemberExists if the user is already a member, or
// store.ErrInvalidEntity if the trip or user does not exist.
func (s *PostgresTripMemberStore) Add(ctx context.Context, member *domain.TripMember) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := member.Validate(); err != nil {
		log.Warn("trip member validation failed during add",
			slog.String("error", err.Error()),
			slog.String("trip_id", member.TripID.String()))
		return err
	}

	query := `
		INSERT INTO trip_members (trip_id, user_id, added_at)
		VALUES ($1, $2, $3)
	`
	_, err := s.db.ExecContext(ctx, query, member.TripID, member.UserID, member.AddedAt)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("user already a member of trip",
				slog.String("trip_id", member.TripID.String()),
				slog.String("user_id", member.UserID.String()))
			return store.ErrMemberExists
		}
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during trip member add",
				slog.String("trip_id", member.TripID.String()),
				slog.String("user_id", member.UserID.String()))
			return fmt.Errorf("%w: trip or user does not exist", store.ErrInvalidEntity)
		}

		log.Error("failed to add trip member",
			slog.String("error", err.Error()),
			slog.String("trip_id", member.TripID.String()))
		return MapError(err)
	}

	log.Info("trip member added successfully",
		slog.String("trip_id", member.TripID.String()),
		slog.String("user_id", member.UserID.String()))
	return nil
}

// Remove implements store.TripMemberStore.Remove
// Returns store.ErrMemberNotFound if the user is not a member of the trip.
func (s *PostgresTripMemberStore) Remove(ctx context.Context, tripID, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM trip_members WHERE trip_id = $1 AND user_id = $2`,
		tripID, userID,
	)
	if err != nil {
		log.Error("failed to remove trip member",
			slog.String("error", err.Error()),
			slog.String("trip_id", tripID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "trip member"); err != nil {
		log.Debug("trip member not found for remove",
			slog.String("trip_id", tripID.String()),
			slog.String("user_id", userID.String()))
		return store.ErrMemberNotFound
	}

	log.Info("trip member removed successfully",
		slog.String("trip_id", tripID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// IsMember implements store.TripMemberStore.IsMember
func (s *PostgresTripMemberStore) IsMember(
	ctx context.Context,
	tripID, userID uuid.UUID,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM trip_members WHERE trip_id = $1 AND user_id = $2
		)
	`

	var isMember bool
	if err := s.db.QueryRowContext(ctx, query, tripID, userID).Scan(&isMember); err != nil {
		log.Error("failed to check trip membership",
			slog.String("error", err.Error()),
			slog.String("trip_id", tripID.String()))
		return false, err
	}

	return isMember, nil
}

// ListByTrip implements store.TripMemberStore.ListByTrip
func (s *PostgresTripMemberStore) ListByTrip(
	ctx context.Context,
	tripID uuid.UUID,
) ([]*domain.TripMember, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT trip_id, user_id, added_at
		FROM trip_members
		WHERE trip_id = $1
		ORDER BY added_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, tripID)
	if err != nil {
		log.Error("failed to query trip members",
			slog.String("error", err.Error()),
			slog.String("trip_id", tripID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	members := []*domain.TripMember{}
	for rows.Next() {
		var member domain.TripMember
		if err := rows.Scan(&member.TripID, &member.UserID, &member.AddedAt); err != nil {
			log.Error("failed to scan trip member row",
				slog.String("error", err.Error()))
			return nil, err
		}
		members = append(members, &member)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return members, nil
}

// ListTripIDsByUser implements store.TripMemberStore.ListTripIDsByUser
func (s *PostgresTripMemberStore) ListTripIDsByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT trip_id
		FROM trip_members
		WHERE user_id = $1
		ORDER BY added_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query memberships",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tripIDs := []uuid.UUID{}
	for rows.Next() {
		var tripID uuid.UUID
		if err := rows.Scan(&tripID); err != nil {
			log.Error("failed to scan membership row",
				slog.String("error", err.Error()))
			return nil, err
		}
		tripIDs = append(tripIDs, tripID)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return tripIDs, nil
}
