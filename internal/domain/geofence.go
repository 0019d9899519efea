package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Geofence validation errors
var (
	ErrGeofenceIDEmpty        = errors.New("geofence ID cannot be empty")
	ErrGeofenceOwnerEmpty     = errors.New("geofence owner ID cannot be empty")
	ErrGeofenceNameEmpty      = errors.New("geofence name cannot be empty")
	ErrGeofenceLatitude       = errors.New("geofence latitude must be between -90 and 90")
	ErrGeofenceLongitude      = errors.New("geofence longitude must be between -180 and 180")
	ErrGeofenceRadiusInvalid  = errors.New("geofence radius must be greater than zero")
	ErrGeofenceAltitudeRange  = errors.New("geofence max altitude cannot be below min altitude")
	ErrGeofenceWindowInvalid  = errors.New("geofence active window minutes must be within 0..1440")
	ErrGeofenceCooldownNeg    = errors.New("geofence cooldown cannot be negative")
	ErrGeofenceDwellNegative  = errors.New("geofence dwell minimum cannot be negative")
	ErrGeofenceHeadingInvalid = errors.New("geofence heading sector degrees must be within 0..360")
	ErrGeofenceHeadingPartial = errors.New("geofence heading sector requires both start and end")
)

// Geofence is a named circular region used to trigger location-based alerts.
// The active window is expressed in minutes since local midnight; a window
// with ActiveStartMin == ActiveEndMin is treated as always active. Optional
// altitude bounds are in meters above sea level. The optional heading sector
// restricts matches to positions moving within [HeadingStartDeg,
// HeadingEndDeg] clockwise; a sector crossing north (e.g. 350..10) is valid.
type Geofence struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	Name            string    `json:"name"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	RadiusMeters    float64   `json:"radius_meters"`
	MinAltitudeM    *float64  `json:"min_altitude_m,omitempty"`
	MaxAltitudeM    *float64  `json:"max_altitude_m,omitempty"`
	HeadingStartDeg *float64  `json:"heading_start_deg,omitempty"`
	HeadingEndDeg   *float64  `json:"heading_end_deg,omitempty"`
	ActiveStartMin  int       `json:"active_start_min"`
	ActiveEndMin    int       `json:"active_end_min"`
	CooldownSec     int       `json:"cooldown_sec"`
	DwellMinSec     int       `json:"dwell_min_sec"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewGeofence creates a new Geofence owned by the given user.
// Returns an error if validation fails.
func NewGeofence(ownerID uuid.UUID, name string, lat, lng, radiusMeters float64) (*Geofence, error) {
	fence := &Geofence{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Name:         name,
		Latitude:     lat,
		Longitude:    lng,
		RadiusMeters: radiusMeters,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := fence.Validate(); err != nil {
		return nil, err
	}

	return fence, nil
}

// Validate checks if the Geofence has valid data.
func (g *Geofence) Validate() error {
	if g.ID == uuid.Nil {
		return ErrGeofenceIDEmpty
	}

	if g.OwnerID == uuid.Nil {
		return ErrGeofenceOwnerEmpty
	}

	if g.Name == "" {
		return ErrGeofenceNameEmpty
	}

	if g.Latitude < -90 || g.Latitude > 90 {
		return ErrGeofenceLatitude
	}

	if g.Longitude < -180 || g.Longitude > 180 {
		return ErrGeofenceLongitude
	}

	if g.RadiusMeters <= 0 {
		return ErrGeofenceRadiusInvalid
	}

	if g.MinAltitudeM != nil && g.MaxAltitudeM != nil && *g.MaxAltitudeM < *g.MinAltitudeM {
		return ErrGeofenceAltitudeRange
	}

	if (g.HeadingStartDeg == nil) != (g.HeadingEndDeg == nil) {
		return ErrGeofenceHeadingPartial
	}
	if g.HeadingStartDeg != nil {
		if *g.HeadingStartDeg < 0 || *g.HeadingStartDeg > 360 ||
			*g.HeadingEndDeg < 0 || *g.HeadingEndDeg > 360 {
			return ErrGeofenceHeadingInvalid
		}
	}

	if g.ActiveStartMin < 0 || g.ActiveStartMin > 1440 ||
		g.ActiveEndMin < 0 || g.ActiveEndMin > 1440 {
		return ErrGeofenceWindowInvalid
	}

	if g.CooldownSec < 0 {
		return ErrGeofenceCooldownNeg
	}

	if g.DwellMinSec < 0 {
		return ErrGeofenceDwellNegative
	}

	return nil
}

// AlwaysActive reports whether the fence has no time-of-day restriction.
func (g *Geofence) AlwaysActive() bool {
	return g.ActiveStartMin == g.ActiveEndMin
}
