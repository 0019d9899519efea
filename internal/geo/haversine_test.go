package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	t.Parallel() // Enable parallel execution

	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantMeters             float64
		tolerance              float64
	}{
		{
			name: "identical points",
			lat1: 28.4177, lng1: -81.5812,
			lat2: 28.4177, lng2: -81.5812,
			wantMeters: 0,
			tolerance:  0.001,
		},
		{
			name: "one degree of latitude",
			lat1: 0, lng1: 0,
			lat2: 1, lng2: 0,
			wantMeters: 111195,
			tolerance:  100,
		},
		{
			name: "across the antimeridian",
			lat1: 0, lng1: 179.9,
			lat2: 0, lng2: -179.9,
			wantMeters: 22239, // 0.2 degrees at the equator, not ~360
			tolerance:  50,
		},
		{
			name: "orlando to anaheim",
			lat1: 28.4177, lng1: -81.5812,
			lat2: 33.8121, lng2: -117.9190,
			wantMeters: 3575000,
			tolerance:  25000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantMeters) > tt.tolerance {
				t.Errorf("Distance() = %.1f m, want %.1f m (±%.1f)",
					got, tt.wantMeters, tt.tolerance)
			}
		})
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	t.Parallel() // Enable parallel execution

	a := Distance(28.4177, -81.5812, 28.3747, -81.5494)
	b := Distance(28.3747, -81.5494, 28.4177, -81.5812)
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("Expected symmetric distance, got %f and %f", a, b)
	}
}
