package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Wait sample validation errors
var (
	ErrWaitSampleIDEmpty      = errors.New("wait sample ID cannot be empty")
	ErrWaitSampleParkEmpty    = errors.New("wait sample park ID cannot be empty")
	ErrWaitSampleEntityEmpty  = errors.New("wait sample attraction ID cannot be empty")
	ErrWaitSampleNegative     = errors.New("wait sample minutes cannot be negative")
	ErrWaitSampleStatusBad    = errors.New("wait sample status must be operating, down, or closed")
	ErrWaitSampleTimeMissing  = errors.New("wait sample timestamp cannot be zero")
)

// RideStatus is the operating state an attraction reported alongside a wait.
type RideStatus string

const (
	StatusOperating RideStatus = "operating"
	StatusDown      RideStatus = "down"
	StatusClosed    RideStatus = "closed"
)

// WaitSample is one historical posted-wait observation for an attraction.
// Samples are the raw input of the wait-time analytics module.
type WaitSample struct {
	ID           uuid.UUID  `json:"id"`
	ParkID       string     `json:"park_id"`
	AttractionID string     `json:"attraction_id"`
	WaitMinutes  int        `json:"wait_minutes"`
	Status       RideStatus `json:"status"`
	SampledAt    time.Time  `json:"sampled_at"`
}

// NewWaitSample creates a new WaitSample observed at the given time.
// Returns an error if validation fails.
func NewWaitSample(parkID, attractionID string, waitMinutes int, status RideStatus, sampledAt time.Time) (*WaitSample, error) {
	sample := &WaitSample{
		ID:           uuid.New(),
		ParkID:       parkID,
		AttractionID: attractionID,
		WaitMinutes:  waitMinutes,
		Status:       status,
		SampledAt:    sampledAt,
	}

	if err := sample.Validate(); err != nil {
		return nil, err
	}

	return sample, nil
}

// Validate checks if the WaitSample has valid data.
func (s *WaitSample) Validate() error {
	if s.ID == uuid.Nil {
		return ErrWaitSampleIDEmpty
	}

	if s.ParkID == "" {
		return ErrWaitSampleParkEmpty
	}

	if s.AttractionID == "" {
		return ErrWaitSampleEntityEmpty
	}

	if s.WaitMinutes < 0 {
		return ErrWaitSampleNegative
	}

	switch s.Status {
	case StatusOperating, StatusDown, StatusClosed:
	default:
		return ErrWaitSampleStatusBad
	}

	if s.SampledAt.IsZero() {
		return ErrWaitSampleTimeMissing
	}

	return nil
}
