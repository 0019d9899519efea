package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrNotFound",
			err:      fmt.Errorf("lookup failed: %w", ErrNotFound),
			expected: true,
		},
		{
			name:     "ErrUserNotFound",
			err:      ErrUserNotFound,
			expected: true,
		},
		{
			name:     "ErrTripNotFound",
			err:      ErrTripNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrGeofenceNotFound",
			err:      fmt.Errorf("failed to find geofence: %w", ErrGeofenceNotFound),
			expected: true,
		},
		{
			name:     "ErrMessageNotFound",
			err:      ErrMessageNotFound,
			expected: true,
		},
		{
			name:     "duplicate error is not a not-found error",
			err:      ErrEmailExists,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "ErrDuplicate",
			err:      ErrDuplicate,
			expected: true,
		},
		{
			name:     "ErrEmailExists",
			err:      ErrEmailExists,
			expected: true,
		},
		{
			name:     "wrapped ErrEmailExists",
			err:      fmt.Errorf("create failed: %w", ErrEmailExists),
			expected: true,
		},
		{
			name:     "not-found error is not a duplicate error",
			err:      ErrTripNotFound,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicateError(tt.err); got != tt.expected {
				t.Errorf("IsDuplicateError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	inner := ErrTripNotFound
	err := NewStoreError("trip", "update", "row missing", inner)

	if !errors.Is(err, ErrTripNotFound) {
		t.Error("Expected StoreError to unwrap to the inner error")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("Expected StoreError to unwrap through to ErrNotFound")
	}

	want := "update operation on trip failed: row missing: entity not found: trip"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	bare := NewStoreError("user", "delete", "constraint violation", nil)
	if bare.Error() != "delete operation on user failed: constraint violation" {
		t.Errorf("Error() without inner error = %q", bare.Error())
	}
}
