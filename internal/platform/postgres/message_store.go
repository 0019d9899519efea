package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/platform/logger"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// PostgresMessageStore implements the store.MessageStore interface
// using a PostgreSQL database as the storage backend.
//
// Sequence numbers come from an atomic counter on the trips row
// (UPDATE ... RETURNING), so the row lock serializes concurrent senders
// and every message in a trip gets a unique, gapless, monotonic seq.
type PostgresMessageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMessageStore creates a new PostgreSQL implementation of the MessageStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresMessageStore(db store.DBTX, logger *slog.Logger) *PostgresMessageStore {
	if db == nil {
		// ALLOW-PANIC: Constructor requires non-nil DB
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresMessageStore{
		db:     db,
		logger: logger.With(slog.String("component", "message_store")),
	}
}

// Ensure PostgresMessageStore implements store.MessageStore interface
var _ store.MessageStore = (*PostgresMessageStore)(nil)

// WithTx implements store.MessageStore.WithTx
func (s *PostgresMessageStore) WithTx(tx *sql.Tx) store.MessageStore {
	return &PostgresMessageStore{db: tx, logger: s.logger}
}

// Create implements store.MessageStore.Create
// It claims the next sequence number for the trip and inserts the message
// with it, writing the assigned seq back to msg. Returns
// store.ErrTripNotFound when the trip does not exist.
func (s *PostgresMessageStore) Create(ctx context.Context, msg *domain.ChatMessage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := msg.Validate(); err != nil {
		log.Warn("message validation failed during create",
			slog.String("error", err.Error()),
			slog.String("message_id", msg.ID.String()))
		return err
	}

	// Claim the next seq. The UPDATE takes a row lock on the trip, which
	// serializes concurrent sends within the same trip.
	var seq int64
	err := s.db.QueryRowContext(
		ctx,
		`UPDATE trips SET last_message_seq = last_message_seq + 1 WHERE id = $1 RETURNING last_message_seq`,
		msg.TripID,
	).Scan(&seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("trip not found for message create",
				slog.String("trip_id", msg.TripID.String()))
			return store.ErrTripNotFound
		}
		log.Error("failed to claim message sequence",
			slog.String("error", err.Error()),
			slog.String("trip_id", msg.TripID.String()))
		return MapError(err)
	}

	query := `
		INSERT INTO trip_messages (id, trip_id, user_id, seq, body, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		msg.ID,
		msg.TripID,
		msg.UserID,
		seq,
		msg.Body,
		msg.SentAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during message creation",
				slog.String("message_id", msg.ID.String()),
				slog.String("trip_id", msg.TripID.String()))
			return fmt.Errorf("%w: trip or user for message not found",
				store.ErrInvalidEntity)
		}
		log.Error("failed to create message",
			slog.String("error", err.Error()),
			slog.String("message_id", msg.ID.String()))
		return MapError(err)
	}

	msg.Seq = seq

	log.Debug("message created",
		slog.String("message_id", msg.ID.String()),
		slog.String("trip_id", msg.TripID.String()),
		slog.Int64("seq", seq))
	return nil
}

// GetByID implements store.MessageStore.GetByID
// Returns store.ErrMessageNotFound if the message does not exist.
func (s *PostgresMessageStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ChatMessage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, trip_id, user_id, seq, body, sent_at
		FROM trip_messages
		WHERE id = $1
	`

	var msg domain.ChatMessage
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&msg.ID,
		&msg.TripID,
		&msg.UserID,
		&msg.Seq,
		&msg.Body,
		&msg.SentAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("message not found", slog.String("message_id", id.String()))
			return nil, store.ErrMessageNotFound
		}
		log.Error("failed to get message by ID",
			slog.String("error", err.Error()),
			slog.String("message_id", id.String()))
		return nil, err
	}

	return &msg, nil
}

// ListSince implements store.MessageStore.ListSince
func (s *PostgresMessageStore) ListSince(
	ctx context.Context,
	tripID uuid.UUID,
	afterSeq int64,
) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id, trip_id, user_id, seq, body, sent_at
		FROM trip_messages
		WHERE trip_id = $1 AND seq > $2
		ORDER BY seq ASC
	`
	return s.list(ctx, query, tripID, afterSeq)
}

// ListRecent implements store.MessageStore.ListRecent
// The newest limit messages are returned in ascending seq order.
func (s *PostgresMessageStore) ListRecent(
	ctx context.Context,
	tripID uuid.UUID,
	limit int,
) ([]*domain.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, trip_id, user_id, seq, body, sent_at
		FROM (
			SELECT id, trip_id, user_id, seq, body, sent_at
			FROM trip_messages
			WHERE trip_id = $1
			ORDER BY seq DESC
			LIMIT $2
		) recent
		ORDER BY seq ASC
	`
	return s.list(ctx, query, tripID, limit)
}

func (s *PostgresMessageStore) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.ChatMessage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query messages",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	msgs := []*domain.ChatMessage{}
	for rows.Next() {
		var msg domain.ChatMessage
		err := rows.Scan(
			&msg.ID,
			&msg.TripID,
			&msg.UserID,
			&msg.Seq,
			&msg.Body,
			&msg.SentAt,
		)
		if err != nil {
			log.Error("failed to scan message row",
				slog.String("error", err.Error()))
			return nil, err
		}
		msgs = append(msgs, &msg)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return msgs, nil
}
