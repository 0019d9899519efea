// Package geo implements great-circle distance and geofence evaluation:
// region membership with time windows, altitude bounds, heading sectors,
// plus entered/exited/dwell event streams with cooldown suppression.
package geo

import (
	"math"
	"time"
)

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

// Position is a single location fix. Altitude and heading are optional;
// Timestamp drives time-window checks and dwell timers.
type Position struct {
	Latitude   float64
	Longitude  float64
	AltitudeM  *float64
	HeadingDeg *float64
	Timestamp  time.Time
}

// Distance returns the great-circle distance in meters between two points
// using the haversine formula. The half-angle sine terms make it safe
// across the antimeridian: a longitude delta of 359.9 degrees measures the
// same as 0.1 degrees.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180

	phi1 := lat1 * degToRad
	phi2 := lat2 * degToRad
	dPhi := (lat2 - lat1) * degToRad
	dLambda := (lng2 - lng1) * degToRad

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)

	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
