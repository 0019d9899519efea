package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/parkhopper/parkhopper-api/internal/domain"
)

func sampleAt(t *testing.T, clock string, wait int, status domain.RideStatus) *domain.WaitSample {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, "2026-08-20T"+clock+":00Z")
	if err != nil {
		t.Fatalf("Expected valid time, got error %v", err)
	}
	s, err := domain.NewWaitSample("magic-kingdom", "mk-space-mountain", wait, status, ts)
	if err != nil {
		t.Fatalf("Expected no error creating sample, got %v", err)
	}
	return s
}

func TestSmooth(t *testing.T) {
	t.Parallel() // Enable parallel execution

	t.Run("empty series", func(t *testing.T) {
		if _, err := Smooth(nil, 0.5); err != ErrNoSamples {
			t.Errorf("Expected ErrNoSamples, got %v", err)
		}
	})

	t.Run("invalid alpha", func(t *testing.T) {
		if _, err := Smooth([]float64{1}, 0); err != ErrInvalidAlpha {
			t.Errorf("Expected ErrInvalidAlpha for alpha=0, got %v", err)
		}
		if _, err := Smooth([]float64{1}, 1.5); err != ErrInvalidAlpha {
			t.Errorf("Expected ErrInvalidAlpha for alpha=1.5, got %v", err)
		}
	})

	t.Run("alpha one passes series through", func(t *testing.T) {
		got, err := Smooth([]float64{10, 20, 30}, 1)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		want := []float64{10, 20, 30}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Smooth()[%d] = %f, want %f", i, got[i], want[i])
			}
		}
	})

	t.Run("half alpha", func(t *testing.T) {
		got, err := Smooth([]float64{10, 20, 40}, 0.5)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		// 10, 0.5*20+0.5*10=15, 0.5*40+0.5*15=27.5
		want := []float64{10, 15, 27.5}
		for i := range want {
			if math.Abs(got[i]-want[i]) > 1e-9 {
				t.Errorf("Smooth()[%d] = %f, want %f", i, got[i], want[i])
			}
		}
	})
}

func TestSmoothedWait(t *testing.T) {
	t.Parallel() // Enable parallel execution

	samples := []*domain.WaitSample{
		sampleAt(t, "10:00", 10, domain.StatusOperating),
		sampleAt(t, "10:05", 20, domain.StatusOperating),
		sampleAt(t, "10:10", 40, domain.StatusOperating),
	}

	got, err := SmoothedWait(samples, 0.5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if math.Abs(got-27.5) > 1e-9 {
		t.Errorf("SmoothedWait() = %f, want 27.5", got)
	}
}

func TestTrend(t *testing.T) {
	t.Parallel() // Enable parallel execution

	t.Run("empty series", func(t *testing.T) {
		if _, err := Trend(nil); err != ErrNoSamples {
			t.Errorf("Expected ErrNoSamples, got %v", err)
		}
	})

	t.Run("single point has zero slope", func(t *testing.T) {
		got, err := Trend([]*domain.WaitSample{sampleAt(t, "10:00", 25, domain.StatusOperating)})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Slope != 0 {
			t.Errorf("Expected slope 0 for single point, got %f", got.Slope)
		}
		if got.Intercept != 25 {
			t.Errorf("Expected intercept 25, got %f", got.Intercept)
		}
	})

	t.Run("perfect linear rise", func(t *testing.T) {
		// +10 minutes of wait per 10 minutes of time: slope 1.0
		samples := []*domain.WaitSample{
			sampleAt(t, "10:00", 10, domain.StatusOperating),
			sampleAt(t, "10:10", 20, domain.StatusOperating),
			sampleAt(t, "10:20", 30, domain.StatusOperating),
			sampleAt(t, "10:30", 40, domain.StatusOperating),
		}

		got, err := Trend(samples)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if math.Abs(got.Slope-1.0) > 1e-9 {
			t.Errorf("Expected slope 1.0, got %f", got.Slope)
		}
		if math.Abs(got.Intercept-10) > 1e-9 {
			t.Errorf("Expected intercept 10, got %f", got.Intercept)
		}
		if math.Abs(got.R2-1.0) > 1e-9 {
			t.Errorf("Expected R2 1.0 for perfect fit, got %f", got.R2)
		}
	})

	t.Run("flat series", func(t *testing.T) {
		samples := []*domain.WaitSample{
			sampleAt(t, "10:00", 30, domain.StatusOperating),
			sampleAt(t, "10:10", 30, domain.StatusOperating),
			sampleAt(t, "10:20", 30, domain.StatusOperating),
		}

		got, err := Trend(samples)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got.Slope != 0 {
			t.Errorf("Expected slope 0 for flat series, got %f", got.Slope)
		}
	})
}

func TestHourlyAverages(t *testing.T) {
	t.Parallel() // Enable parallel execution

	t.Run("empty series", func(t *testing.T) {
		if _, err := HourlyAverages(nil); err != ErrNoSamples {
			t.Errorf("Expected ErrNoSamples, got %v", err)
		}
	})

	t.Run("groups by hour", func(t *testing.T) {
		samples := []*domain.WaitSample{
			sampleAt(t, "10:00", 20, domain.StatusOperating),
			sampleAt(t, "10:30", 40, domain.StatusOperating),
			sampleAt(t, "14:00", 60, domain.StatusOperating),
		}

		got, err := HourlyAverages(samples)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expected averages for 2 hours, got %d", len(got))
		}
		if got[10] != 30 {
			t.Errorf("Expected hour 10 average 30, got %f", got[10])
		}
		if got[14] != 60 {
			t.Errorf("Expected hour 14 average 60, got %f", got[14])
		}
	})
}

func TestCrowdLevelFor(t *testing.T) {
	t.Parallel() // Enable parallel execution

	t.Run("empty series", func(t *testing.T) {
		if _, err := CrowdLevelFor(nil); err != ErrNoSamples {
			t.Errorf("Expected ErrNoSamples, got %v", err)
		}
	})

	t.Run("bands", func(t *testing.T) {
		tests := []struct {
			mean int
			want CrowdLevel
		}{
			{5, 1},
			{12, 2},
			{22, 4},
			{38, 7},
			{55, 9},
			{90, 10},
		}

		for _, tt := range tests {
			samples := []*domain.WaitSample{
				sampleAt(t, "12:00", tt.mean, domain.StatusOperating),
				sampleAt(t, "12:05", tt.mean, domain.StatusOperating),
			}
			got, err := CrowdLevelFor(samples)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("CrowdLevelFor(mean=%d) = %d, want %d", tt.mean, got, tt.want)
			}
		}
	})

	t.Run("down rides are excluded", func(t *testing.T) {
		samples := []*domain.WaitSample{
			sampleAt(t, "12:00", 10, domain.StatusOperating),
			sampleAt(t, "12:00", 0, domain.StatusDown),
			sampleAt(t, "12:00", 0, domain.StatusClosed),
		}

		got, err := CrowdLevelFor(samples)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != 2 {
			t.Errorf("Expected level 2 from the single operating sample, got %d", got)
		}
	})

	t.Run("nothing operating rates level one", func(t *testing.T) {
		samples := []*domain.WaitSample{
			sampleAt(t, "02:00", 0, domain.StatusClosed),
		}

		got, err := CrowdLevelFor(samples)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if got != 1 {
			t.Errorf("Expected level 1 when nothing operates, got %d", got)
		}
	})
}
