// Package analytics turns raw wait-time samples into usable signals:
// smoothed current waits, linear trends, hourly averages, and a 1-10
// crowd level for a park. All functions are pure; callers fetch sample
// series from the store and pass them in.
package analytics

import (
	"errors"

	"github.com/parkhopper/parkhopper-api/internal/domain"
)

// ErrNoSamples is returned when an operation receives an empty series.
var ErrNoSamples = errors.New("no samples in series")

// ErrInvalidAlpha is returned when a smoothing factor is outside (0, 1].
var ErrInvalidAlpha = errors.New("smoothing factor must be in (0, 1]")

// Smooth applies exponential smoothing with factor alpha to the series.
// The result has the same length as the input; result[0] equals values[0]
// and each later point is alpha*value + (1-alpha)*previous.
func Smooth(values []float64, alpha float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrNoSamples
	}
	if alpha <= 0 || alpha > 1 {
		return nil, ErrInvalidAlpha
	}

	smoothed := make([]float64, len(values))
	smoothed[0] = values[0]
	for i := 1; i < len(values); i++ {
		smoothed[i] = alpha*values[i] + (1-alpha)*smoothed[i-1]
	}
	return smoothed, nil
}

// SmoothedWait returns the exponentially smoothed current wait for a
// sample series, in minutes. Samples must be ordered by time ascending,
// as the stores return them.
func SmoothedWait(samples []*domain.WaitSample, alpha float64) (float64, error) {
	values := waitValues(samples)
	smoothed, err := Smooth(values, alpha)
	if err != nil {
		return 0, err
	}
	return smoothed[len(smoothed)-1], nil
}

// TrendResult is a fitted linear trend over a time-indexed wait series.
// Slope is in minutes of wait per minute of elapsed time.
type TrendResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	R2        float64 `json:"r2"`
}

// Trend fits a least-squares line to the series, with x measured in
// minutes since the first sample. A single sample yields a flat trend
// (slope 0, intercept at the sample's value).
func Trend(samples []*domain.WaitSample) (TrendResult, error) {
	if len(samples) == 0 {
		return TrendResult{}, ErrNoSamples
	}

	if len(samples) == 1 {
		return TrendResult{
			Slope:     0,
			Intercept: float64(samples[0].WaitMinutes),
			R2:        1,
		}, nil
	}

	start := samples[0].SampledAt
	n := float64(len(samples))

	var sumX, sumY, sumXY, sumXX float64
	for _, s := range samples {
		x := s.SampledAt.Sub(start).Minutes()
		y := float64(s.WaitMinutes)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		// All samples share a timestamp; no trend to extract.
		return TrendResult{Slope: 0, Intercept: sumY / n, R2: 1}, nil
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	// Coefficient of determination.
	meanY := sumY / n
	var ssTot, ssRes float64
	for _, s := range samples {
		x := s.SampledAt.Sub(start).Minutes()
		y := float64(s.WaitMinutes)
		fit := slope*x + intercept
		ssTot += (y - meanY) * (y - meanY)
		ssRes += (y - fit) * (y - fit)
	}

	r2 := 1.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}

	return TrendResult{Slope: slope, Intercept: intercept, R2: r2}, nil
}

// HourlyAverages returns the mean wait per hour of day (0-23) across the
// series. Hours with no samples are absent from the map.
func HourlyAverages(samples []*domain.WaitSample) (map[int]float64, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, s := range samples {
		hour := s.SampledAt.Hour()
		sums[hour] += float64(s.WaitMinutes)
		counts[hour]++
	}

	averages := make(map[int]float64, len(sums))
	for hour, sum := range sums {
		averages[hour] = sum / float64(counts[hour])
	}
	return averages, nil
}

// CrowdLevel is a 1 (empty) to 10 (packed) heuristic rating for a park.
type CrowdLevel int

// crowdBands maps mean park-wide wait minutes to crowd levels. The entry
// at index i is the exclusive upper bound for level i+1; means at or above
// the last bound rate level 10.
var crowdBands = [9]float64{10, 15, 20, 25, 30, 35, 40, 50, 60}

// CrowdLevelFor rates a park's crowds from the mean wait across all
// operating samples in the series. Samples for rides that are down or
// closed are excluded; if nothing was operating, the park rates level 1.
func CrowdLevelFor(samples []*domain.WaitSample) (CrowdLevel, error) {
	if len(samples) == 0 {
		return 0, ErrNoSamples
	}

	var sum float64
	var count int
	for _, s := range samples {
		if s.Status != domain.StatusOperating {
			continue
		}
		sum += float64(s.WaitMinutes)
		count++
	}

	if count == 0 {
		return 1, nil
	}

	mean := sum / float64(count)
	for i, bound := range crowdBands {
		if mean < bound {
			return CrowdLevel(i + 1), nil
		}
	}
	return 10, nil
}

func waitValues(samples []*domain.WaitSample) []float64 {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = float64(s.WaitMinutes)
	}
	return values
}
