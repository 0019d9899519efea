package api

import (
	"github.com/google/uuid"

	"github.com/parkhopper/parkhopper-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=60"`
	Password    string `json:"password"     validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateTripRequest defines the payload for creating a trip.
type CreateTripRequest struct {
	Name      string `json:"name"       validate:"required,min=1,max=120"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
	PartySize int    `json:"party_size" validate:"required,min=1,max=30"`
}

// UpdateTripRequest defines the payload for updating a trip.
type UpdateTripRequest struct {
	Name      string `json:"name"       validate:"required,min=1,max=120"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
	PartySize int    `json:"party_size" validate:"required,min=1,max=30"`
}

// TripItemRequest defines the payload for adding or updating a trip item.
type TripItemRequest struct {
	EntityID  string `json:"entity_id"  validate:"required"`
	Kind      string `json:"kind"       validate:"required,oneof=attraction restaurant event"`
	Day       int    `json:"day"        validate:"required,min=1"`
	Note      string `json:"note"       validate:"max=500"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
}

// TripMemberRequest defines the payload for inviting a user to a trip.
type TripMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// GeofenceRequest defines the payload for creating or updating a geofence.
type GeofenceRequest struct {
	Name            string   `json:"name"              validate:"required,min=1,max=120"`
	Latitude        float64  `json:"latitude"          validate:"min=-90,max=90"`
	Longitude       float64  `json:"longitude"         validate:"min=-180,max=180"`
	RadiusMeters    float64  `json:"radius_meters"     validate:"required,gt=0"`
	MinAltitudeM    *float64 `json:"min_altitude_m,omitempty"`
	MaxAltitudeM    *float64 `json:"max_altitude_m,omitempty"`
	HeadingStartDeg *float64 `json:"heading_start_deg,omitempty"`
	HeadingEndDeg   *float64 `json:"heading_end_deg,omitempty"`
	ActiveStartMin  int      `json:"active_start_min"  validate:"min=0,max=1439"`
	ActiveEndMin    int      `json:"active_end_min"    validate:"min=0,max=1439"`
	CooldownSec     int      `json:"cooldown_sec"      validate:"min=0"`
	DwellMinSec     int      `json:"dwell_min_sec"     validate:"min=0"`
}

// GeofenceCheckRequest defines the payload for a position check.
type GeofenceCheckRequest struct {
	Latitude   float64  `json:"latitude"            validate:"min=-90,max=90"`
	Longitude  float64  `json:"longitude"           validate:"min=-180,max=180"`
	AltitudeM  *float64 `json:"altitude_m,omitempty"`
	HeadingDeg *float64 `json:"heading_deg,omitempty"`
	// Timestamp is RFC 3339; empty means "now".
	Timestamp string `json:"timestamp,omitempty"`
}

// RecommendationRequest defines the payload for a recommendation run.
type RecommendationRequest struct {
	ParkID           string   `json:"park_id"           validate:"required"`
	Ages             []int    `json:"ages"`
	HeightsCM        []int    `json:"heights_cm"`
	ThrillPreference int      `json:"thrill_preference" validate:"min=0,max=5"`
	MaxWaitMinutes   int      `json:"max_wait_minutes"  validate:"min=0"`
	HasLightningLane bool     `json:"has_lightning_lane"`
	RideSwap         bool     `json:"ride_swap"`
	Interests        []string `json:"interests"`
	DietaryNeeds     []string `json:"dietary_needs"`
	CuisinePrefs     []string `json:"cuisine_prefs"`
	MaxPriceTier     int      `json:"max_price_tier"    validate:"min=0,max=4"`
	Latitude         *float64 `json:"latitude,omitempty"`
	Longitude        *float64 `json:"longitude,omitempty"`
}

// ItineraryRequest defines the payload for building a day plan.
type ItineraryRequest struct {
	RecommendationRequest
	ParkOpen         string `json:"park_open"          validate:"required,datetime=15:04"`
	ParkClose        string `json:"park_close"         validate:"required,datetime=15:04"`
	Date             string `json:"date"               validate:"required,datetime=2006-01-02"`
	LightningLaneCap int    `json:"lightning_lane_cap" validate:"min=0,max=10"`
}

// ChatBackfillResponse wraps replayed chat history for REST access.
type ChatBackfillResponse struct {
	TripID   uuid.UUID             `json:"trip_id"`
	Messages []*domain.ChatMessage `json:"messages"`
}
