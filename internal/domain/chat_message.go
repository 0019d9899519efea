package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Chat message validation errors
var (
	ErrChatMessageIDEmpty   = errors.New("chat message ID cannot be empty")
	ErrChatMessageTripEmpty = errors.New("chat message trip ID cannot be empty")
	ErrChatMessageUserEmpty = errors.New("chat message user ID cannot be empty")
	ErrChatMessageBodyEmpty = errors.New("chat message body cannot be empty")
	ErrChatMessageTooLong   = errors.New("chat message body cannot exceed 2000 characters")
)

// MaxChatMessageLen is the maximum accepted chat message body length in runes.
const MaxChatMessageLen = 2000

// ChatMessage is one persisted message in a trip's group chat. Seq is the
// server-assigned, per-trip monotonically increasing sequence number used
// for ordering and reconnection backfill; it is zero until the store
// assigns it.
type ChatMessage struct {
	ID     uuid.UUID `json:"id"`
	TripID uuid.UUID `json:"trip_id"`
	UserID uuid.UUID `json:"user_id"`
	Seq    int64     `json:"seq"`
	Body   string    `json:"body"`
	SentAt time.Time `json:"sent_at"`
}

// NewChatMessage creates a new ChatMessage for the given trip and sender.
// Returns an error if validation fails.
func NewChatMessage(tripID, userID uuid.UUID, body string) (*ChatMessage, error) {
	msg := &ChatMessage{
		ID:     uuid.New(),
		TripID: tripID,
		UserID: userID,
		Body:   body,
		SentAt: time.Now().UTC(),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

// Validate checks if the ChatMessage has valid data.
func (m *ChatMessage) Validate() error {
	if m.ID == uuid.Nil {
		return ErrChatMessageIDEmpty
	}

	if m.TripID == uuid.Nil {
		return ErrChatMessageTripEmpty
	}

	if m.UserID == uuid.Nil {
		return ErrChatMessageUserEmpty
	}

	if strings.TrimSpace(m.Body) == "" {
		return ErrChatMessageBodyEmpty
	}

	if len([]rune(m.Body)) > MaxChatMessageLen {
		return ErrChatMessageTooLong
	}

	return nil
}
