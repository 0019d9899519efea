package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/parkhopper/parkhopper-api/internal/analytics"
	"github.com/parkhopper/parkhopper-api/internal/api/shared"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/platform/themeparks"
	"github.com/parkhopper/parkhopper-api/internal/service"
	"github.com/parkhopper/parkhopper-api/internal/service/auth"
	"github.com/parkhopper/parkhopper-api/internal/service/itinerary"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, themeparks.ErrEntityNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, store.ErrMemberExists):
		return http.StatusConflict

	// Unprocessable input
	case errors.Is(err, service.ErrDayOutOfRange),
		errors.Is(err, service.ErrOwnerAsMember):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, analytics.ErrInvalidAlpha),
		errors.Is(err, itinerary.ErrInvalidWindow):
		return http.StatusBadRequest

	// Empty-result cases
	case errors.Is(err, analytics.ErrNoSamples),
		errors.Is(err, itinerary.ErrNoCandidates):
		return http.StatusNoContent

	// Upstream failures surface as bad gateway rather than our fault
	case themeparks.IsUpstreamStatusError(err):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this resource"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrTripNotFound):
		return "Trip not found"

	case errors.Is(err, store.ErrTripItemNotFound):
		return "Trip item not found"

	case errors.Is(err, store.ErrGeofenceNotFound):
		return "Geofence not found"

	case errors.Is(err, store.ErrMemberNotFound):
		return "Trip member not found"

	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, themeparks.ErrEntityNotFound):
		return "Not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrMemberExists):
		return "User is already a member of this trip"

	// Unprocessable input
	case errors.Is(err, service.ErrDayOutOfRange):
		return "Item day is outside the trip's dates"

	case errors.Is(err, service.ErrOwnerAsMember):
		return "The trip owner is already part of the trip"

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, analytics.ErrInvalidAlpha):
		return "Smoothing factor must be between 0 and 1"

	case errors.Is(err, itinerary.ErrInvalidWindow):
		return "Park close must be after park open"

	case themeparks.IsUpstreamStatusError(err):
		return "Live park data is temporarily unavailable"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps an error to a status code and safe message, logs the
// redacted detail, and writes the response. An empty overrideMessage keeps
// the mapped safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, overrideMessage string) {
	status := MapErrorToStatusCode(err)

	if status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	message := overrideMessage
	if message == "" {
		message = GetSafeErrorMessage(err)
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation for
	// 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
