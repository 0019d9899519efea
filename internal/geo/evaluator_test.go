package geo

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/parkhopper/parkhopper-api/internal/domain"
)

const (
	castleLat = 28.4177
	castleLng = -81.5812
)

func testFence(t *testing.T) *domain.Geofence {
	t.Helper()
	fence, err := domain.NewGeofence(uuid.New(), "castle", castleLat, castleLng, 100)
	if err != nil {
		t.Fatalf("Expected no error creating fence, got %v", err)
	}
	return fence
}

func at(t *testing.T, clock string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-08-20T"+clock+":00Z")
	if err != nil {
		t.Fatalf("Expected valid time, got error %v", err)
	}
	return ts
}

func floatPtr(f float64) *float64 { return &f }

func TestContains(t *testing.T) {
	t.Parallel() // Enable parallel execution

	noon := at(t, "12:00")

	t.Run("inside radius", func(t *testing.T) {
		fence := testFence(t)
		pos := Position{Latitude: castleLat + 0.0004, Longitude: castleLng, Timestamp: noon}
		if !Contains(fence, pos) {
			t.Error("Expected position ~45m away to be inside a 100m fence")
		}
	})

	t.Run("outside radius", func(t *testing.T) {
		fence := testFence(t)
		pos := Position{Latitude: castleLat + 0.01, Longitude: castleLng, Timestamp: noon}
		if Contains(fence, pos) {
			t.Error("Expected position ~1.1km away to be outside a 100m fence")
		}
	})

	t.Run("zero radius never contains", func(t *testing.T) {
		fence := testFence(t)
		fence.RadiusMeters = 0
		pos := Position{Latitude: castleLat, Longitude: castleLng, Timestamp: noon}
		if Contains(fence, pos) {
			t.Error("Expected zero-radius fence to contain nothing, even its own center")
		}
	})

	t.Run("inactive outside time window", func(t *testing.T) {
		fence := testFence(t)
		fence.ActiveStartMin = 9 * 60  // 09:00
		fence.ActiveEndMin = 17 * 60   // 17:00
		center := Position{Latitude: castleLat, Longitude: castleLng, Timestamp: at(t, "20:00")}
		if Contains(fence, center) {
			t.Error("Expected fence to be inactive at 20:00 with a 09:00-17:00 window")
		}
		center.Timestamp = noon
		if !Contains(fence, center) {
			t.Error("Expected fence to be active at noon")
		}
	})

	t.Run("window wrapping midnight", func(t *testing.T) {
		fence := testFence(t)
		fence.ActiveStartMin = 22 * 60 // 22:00
		fence.ActiveEndMin = 2 * 60    // 02:00
		center := Position{Latitude: castleLat, Longitude: castleLng}

		center.Timestamp = at(t, "23:30")
		if !Contains(fence, center) {
			t.Error("Expected 23:30 to be inside a 22:00-02:00 window")
		}
		center.Timestamp = at(t, "01:00")
		if !Contains(fence, center) {
			t.Error("Expected 01:00 to be inside a 22:00-02:00 window")
		}
		center.Timestamp = at(t, "12:00")
		if Contains(fence, center) {
			t.Error("Expected noon to be outside a 22:00-02:00 window")
		}
	})

	t.Run("altitude bounds", func(t *testing.T) {
		fence := testFence(t)
		fence.MinAltitudeM = floatPtr(10)
		fence.MaxAltitudeM = floatPtr(50)
		pos := Position{Latitude: castleLat, Longitude: castleLng, Timestamp: noon}

		if Contains(fence, pos) {
			t.Error("Expected position without altitude to fail altitude-bounded fence")
		}
		pos.AltitudeM = floatPtr(30)
		if !Contains(fence, pos) {
			t.Error("Expected altitude 30m to be inside 10-50m bounds")
		}
		pos.AltitudeM = floatPtr(80)
		if Contains(fence, pos) {
			t.Error("Expected altitude 80m to be outside 10-50m bounds")
		}
	})

	t.Run("heading sector", func(t *testing.T) {
		fence := testFence(t)
		fence.HeadingStartDeg = floatPtr(350)
		fence.HeadingEndDeg = floatPtr(10)
		pos := Position{Latitude: castleLat, Longitude: castleLng, Timestamp: noon}

		if Contains(fence, pos) {
			t.Error("Expected position without heading to fail heading-bounded fence")
		}
		pos.HeadingDeg = floatPtr(5) // northbound, inside the wrapped sector
		if !Contains(fence, pos) {
			t.Error("Expected heading 5 deg to be inside sector 350-10")
		}
		pos.HeadingDeg = floatPtr(355)
		if !Contains(fence, pos) {
			t.Error("Expected heading 355 deg to be inside sector 350-10")
		}
		pos.HeadingDeg = floatPtr(180)
		if Contains(fence, pos) {
			t.Error("Expected heading 180 deg to be outside sector 350-10")
		}
	})
}

func TestEvaluatorEnterDwellExit(t *testing.T) {
	t.Parallel() // Enable parallel execution

	fence := testFence(t)
	fence.DwellMinSec = 120

	inside := func(clock string) Position {
		return Position{Latitude: castleLat, Longitude: castleLng, Timestamp: at(t, clock)}
	}
	outside := func(clock string) Position {
		return Position{Latitude: castleLat + 0.01, Longitude: castleLng, Timestamp: at(t, clock)}
	}

	ev := NewEvaluator(fence)

	events := ev.Update(inside("12:00"))
	if len(events) != 1 || events[0].Type != EventEntered {
		t.Fatalf("Expected single entered event, got %v", events)
	}

	// Still inside but dwell minimum not yet reached.
	if events := ev.Update(inside("12:01")); len(events) != 0 {
		t.Fatalf("Expected no events before dwell minimum, got %v", events)
	}

	events = ev.Update(inside("12:03"))
	if len(events) != 1 || events[0].Type != EventDwell {
		t.Fatalf("Expected single dwell event, got %v", events)
	}
	if events[0].DwellSec != 180 {
		t.Errorf("Expected dwell of 180s, got %d", events[0].DwellSec)
	}

	// Dwell fires once per visit.
	if events := ev.Update(inside("12:10")); len(events) != 0 {
		t.Fatalf("Expected no repeat dwell event, got %v", events)
	}

	events = ev.Update(outside("12:15"))
	if len(events) != 1 || events[0].Type != EventExited {
		t.Fatalf("Expected single exited event, got %v", events)
	}
	if ev.Inside() {
		t.Error("Expected evaluator to be outside after exit")
	}
}

func TestEvaluatorCooldownSuppressesReentry(t *testing.T) {
	t.Parallel() // Enable parallel execution

	fence := testFence(t)
	fence.CooldownSec = 600 // 10 minutes

	inside := func(clock string) Position {
		return Position{Latitude: castleLat, Longitude: castleLng, Timestamp: at(t, clock)}
	}
	outside := func(clock string) Position {
		return Position{Latitude: castleLat + 0.01, Longitude: castleLng, Timestamp: at(t, clock)}
	}

	ev := NewEvaluator(fence)

	if events := ev.Update(inside("12:00")); len(events) != 1 || events[0].Type != EventEntered {
		t.Fatalf("Expected entered event, got %v", events)
	}
	if events := ev.Update(outside("12:02")); len(events) != 1 || events[0].Type != EventExited {
		t.Fatalf("Expected exited event, got %v", events)
	}

	// Re-entry within the cooldown window: no entered event, but the
	// evaluator still tracks the visit.
	if events := ev.Update(inside("12:05")); len(events) != 0 {
		t.Fatalf("Expected cooldown to suppress re-entry event, got %v", events)
	}
	if !ev.Inside() {
		t.Error("Expected evaluator to track containment despite suppressed event")
	}
	if events := ev.Update(outside("12:06")); len(events) != 1 || events[0].Type != EventExited {
		t.Fatalf("Expected exit to still fire during cooldown, got %v", events)
	}

	// After the cooldown elapses, entry fires again.
	if events := ev.Update(inside("12:20")); len(events) != 1 || events[0].Type != EventEntered {
		t.Fatalf("Expected entered event after cooldown, got %v", events)
	}
}

func TestEvaluateStream(t *testing.T) {
	t.Parallel() // Enable parallel execution

	fence := testFence(t)

	positions := []Position{
		{Latitude: castleLat + 0.01, Longitude: castleLng, Timestamp: at(t, "11:58")},
		{Latitude: castleLat, Longitude: castleLng, Timestamp: at(t, "12:00")},
		{Latitude: castleLat, Longitude: castleLng, Timestamp: at(t, "12:05")},
		{Latitude: castleLat + 0.01, Longitude: castleLng, Timestamp: at(t, "12:10")},
	}

	events := Evaluate(fence, positions)
	if len(events) != 2 {
		t.Fatalf("Expected entered+exited, got %v", events)
	}
	if events[0].Type != EventEntered || events[1].Type != EventExited {
		t.Errorf("Expected [entered exited], got [%s %s]", events[0].Type, events[1].Type)
	}
}
