package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
)

// MessageStore defines the interface for trip chat message persistence.
//
// The store is the single authority for message ordering: Create assigns
// the next sequence number within the message's trip and writes it back to
// the passed message. Broadcasting happens only after Create returns, so
// every client observes the same order.
type MessageStore interface {
	// Create saves a new chat message and assigns its per-trip sequence
	// number. The Seq field on the passed message is populated on success.
	Create(ctx context.Context, msg *domain.ChatMessage) error

	// GetByID retrieves a message by its unique ID.
	// Returns ErrMessageNotFound if the message does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ChatMessage, error)

	// ListSince retrieves all messages for a trip with a sequence number
	// strictly greater than afterSeq, ordered by sequence ascending.
	// Reconnecting clients use this to backfill what they missed.
	ListSince(ctx context.Context, tripID uuid.UUID, afterSeq int64) ([]*domain.ChatMessage, error)

	// ListRecent retrieves the most recent limit messages for a trip,
	// ordered by sequence ascending.
	ListRecent(ctx context.Context, tripID uuid.UUID, limit int) ([]*domain.ChatMessage, error)

	// WithTx returns a new MessageStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) MessageStore
}
