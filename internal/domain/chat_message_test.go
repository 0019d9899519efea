package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewChatMessage(t *testing.T) {
	t.Parallel() // Enable parallel execution
	tripID := uuid.New()
	userID := uuid.New()

	msg, err := NewChatMessage(tripID, userID, "Meet at the castle at noon?")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if msg.Seq != 0 {
		t.Errorf("Expected unassigned sequence to be 0, got %d", msg.Seq)
	}

	if msg.SentAt.IsZero() {
		t.Error("Expected non-zero SentAt")
	}

	// Trip required
	if _, err := NewChatMessage(uuid.Nil, userID, "hi"); err != ErrChatMessageTripEmpty {
		t.Errorf("Expected error %v, got %v", ErrChatMessageTripEmpty, err)
	}

	// Sender required
	if _, err := NewChatMessage(tripID, uuid.Nil, "hi"); err != ErrChatMessageUserEmpty {
		t.Errorf("Expected error %v, got %v", ErrChatMessageUserEmpty, err)
	}

	// Body required
	if _, err := NewChatMessage(tripID, userID, "   "); err != ErrChatMessageBodyEmpty {
		t.Errorf("Expected error %v, got %v", ErrChatMessageBodyEmpty, err)
	}

	// Body length capped
	long := strings.Repeat("a", MaxChatMessageLen+1)
	if _, err := NewChatMessage(tripID, userID, long); err != ErrChatMessageTooLong {
		t.Errorf("Expected error %v, got %v", ErrChatMessageTooLong, err)
	}
}

func TestNewWaitSample(t *testing.T) {
	t.Parallel() // Enable parallel execution
	sampledAt := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)

	sample, err := NewWaitSample("magic-kingdom", "mk-space-mountain", 45, StatusOperating, sampledAt)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if sample.WaitMinutes != 45 {
		t.Errorf("Expected 45 minutes, got %d", sample.WaitMinutes)
	}

	// Negative wait rejected
	if _, err := NewWaitSample("magic-kingdom", "mk-space-mountain", -1, StatusOperating, sampledAt); err != ErrWaitSampleNegative {
		t.Errorf("Expected error %v, got %v", ErrWaitSampleNegative, err)
	}

	// Unknown status rejected
	if _, err := NewWaitSample("magic-kingdom", "mk-space-mountain", 45, RideStatus("paused"), sampledAt); err != ErrWaitSampleStatusBad {
		t.Errorf("Expected error %v, got %v", ErrWaitSampleStatusBad, err)
	}

	// Park and attraction required
	if _, err := NewWaitSample("", "mk-space-mountain", 45, StatusOperating, sampledAt); err != ErrWaitSampleParkEmpty {
		t.Errorf("Expected error %v, got %v", ErrWaitSampleParkEmpty, err)
	}
	if _, err := NewWaitSample("magic-kingdom", "", 45, StatusOperating, sampledAt); err != ErrWaitSampleEntityEmpty {
		t.Errorf("Expected error %v, got %v", ErrWaitSampleEntityEmpty, err)
	}
}
