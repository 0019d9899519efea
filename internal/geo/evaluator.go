package geo

import (
	"time"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
)

// EventType identifies a geofence transition.
type EventType string

// Geofence event types.
const (
	EventEntered EventType = "entered"
	EventExited  EventType = "exited"
	EventDwell   EventType = "dwell"
)

// Event is a geofence transition produced by an Evaluator.
type Event struct {
	FenceID  uuid.UUID `json:"fence_id"`
	Type     EventType `json:"type"`
	At       time.Time `json:"at"`
	DwellSec int       `json:"dwell_sec,omitempty"`
}

// Contains reports whether the position falls inside the fence at the
// position's timestamp. A fence with zero or negative radius never
// contains anything. A fence outside its active time window matches
// nothing. Altitude and heading checks apply only when the fence
// constrains them; a fence with a heading sector rejects positions that
// carry no heading.
func Contains(fence *domain.Geofence, pos Position) bool {
	if fence.RadiusMeters <= 0 {
		return false
	}

	if !activeAt(fence, pos.Timestamp) {
		return false
	}

	if Distance(fence.Latitude, fence.Longitude, pos.Latitude, pos.Longitude) > fence.RadiusMeters {
		return false
	}

	if fence.MinAltitudeM != nil {
		if pos.AltitudeM == nil || *pos.AltitudeM < *fence.MinAltitudeM {
			return false
		}
	}
	if fence.MaxAltitudeM != nil {
		if pos.AltitudeM == nil || *pos.AltitudeM > *fence.MaxAltitudeM {
			return false
		}
	}

	if fence.HeadingStartDeg != nil && fence.HeadingEndDeg != nil {
		if pos.HeadingDeg == nil {
			return false
		}
		if !headingInSector(*pos.HeadingDeg, *fence.HeadingStartDeg, *fence.HeadingEndDeg) {
			return false
		}
	}

	return true
}

// activeAt checks the fence's time-of-day window. Equal start and end means
// always active. A window with start > end wraps midnight.
func activeAt(fence *domain.Geofence, t time.Time) bool {
	if fence.AlwaysActive() {
		return true
	}

	minutes := t.Hour()*60 + t.Minute()
	if fence.ActiveStartMin < fence.ActiveEndMin {
		return minutes >= fence.ActiveStartMin && minutes < fence.ActiveEndMin
	}
	return minutes >= fence.ActiveStartMin || minutes < fence.ActiveEndMin
}

// headingInSector checks a compass heading against the clockwise sector
// [start, end]. A sector crossing north (start > end) wraps around 360.
func headingInSector(heading, start, end float64) bool {
	h := normalizeDeg(heading)
	s := normalizeDeg(start)
	e := normalizeDeg(end)

	if s <= e {
		return h >= s && h <= e
	}
	return h >= s || h <= e
}

func normalizeDeg(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}

// Evaluator tracks one geofence against a stream of positions and emits
// transition events. It is not safe for concurrent use; callers hold one
// evaluator per fence per device.
type Evaluator struct {
	fence *domain.Geofence

	inside      bool
	enteredAt   time.Time
	dwellFired  bool
	lastEntered time.Time
}

// NewEvaluator creates an evaluator for the given fence.
func NewEvaluator(fence *domain.Geofence) *Evaluator {
	if fence == nil {
		// ALLOW-PANIC: Constructor requires non-nil fence
		panic("fence cannot be nil")
	}
	return &Evaluator{fence: fence}
}

// Update feeds the next position fix and returns any events it triggers.
//
// An entered event fires on an outside-to-inside transition, unless the
// fence's cooldown since the previous entered event has not elapsed; the
// evaluator still tracks the visit (so dwell and exited work), it just
// suppresses the notification. A dwell event fires once per visit after
// continuous containment of at least DwellMinSec. An exited event always
// fires on an inside-to-outside transition.
func (e *Evaluator) Update(pos Position) []Event {
	contains := Contains(e.fence, pos)

	var events []Event

	switch {
	case contains && !e.inside:
		e.inside = true
		e.enteredAt = pos.Timestamp
		e.dwellFired = false

		cooldown := time.Duration(e.fence.CooldownSec) * time.Second
		if e.lastEntered.IsZero() || pos.Timestamp.Sub(e.lastEntered) >= cooldown {
			e.lastEntered = pos.Timestamp
			events = append(events, Event{
				FenceID: e.fence.ID,
				Type:    EventEntered,
				At:      pos.Timestamp,
			})
		}

	case contains && e.inside:
		if !e.dwellFired && e.fence.DwellMinSec > 0 {
			dwelled := pos.Timestamp.Sub(e.enteredAt)
			if dwelled >= time.Duration(e.fence.DwellMinSec)*time.Second {
				e.dwellFired = true
				events = append(events, Event{
					FenceID:  e.fence.ID,
					Type:     EventDwell,
					At:       pos.Timestamp,
					DwellSec: int(dwelled / time.Second),
				})
			}
		}

	case !contains && e.inside:
		e.inside = false
		events = append(events, Event{
			FenceID: e.fence.ID,
			Type:    EventExited,
			At:      pos.Timestamp,
		})
	}

	return events
}

// Inside reports whether the last processed position was inside the fence.
func (e *Evaluator) Inside() bool {
	return e.inside
}

// Evaluate runs a full position stream through a fresh evaluator and
// returns every event in order.
func Evaluate(fence *domain.Geofence, positions []Position) []Event {
	ev := NewEvaluator(fence)
	var events []Event
	for _, pos := range positions {
		events = append(events, ev.Update(pos)...)
	}
	return events
}
