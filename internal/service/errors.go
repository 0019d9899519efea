// Package service provides application-level services for managing users,
// trips, and geofences.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for
// with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrDayOutOfRange indicates a trip item's day falls outside the trip's
	// date range. API layer should map this to HTTP 422.
	ErrDayOutOfRange = errors.New("item day is outside the trip's date range")

	// ErrOwnerAsMember indicates an attempt to add a trip's owner to its own
	// member list. The owner already has full access; API layer should map
	// this to HTTP 422.
	ErrOwnerAsMember = errors.New("trip owner cannot be added as a member")
)
