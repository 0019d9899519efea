package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/parkhopper/parkhopper-api/internal/domain"
)

// WaitSampleStore defines the interface for wait time sample persistence.
// Samples are append-only observations of posted wait times, keyed by
// attraction and timestamp; the analytics layer reads them back in bulk.
type WaitSampleStore interface {
	// Create saves a single wait sample.
	Create(ctx context.Context, sample *domain.WaitSample) error

	// CreateBatch saves a set of samples in one round trip.
	// Used by the poller after each upstream fetch.
	CreateBatch(ctx context.Context, samples []*domain.WaitSample) error

	// ListByAttraction retrieves samples for one attraction within
	// [from, to), ordered by sample time ascending.
	ListByAttraction(
		ctx context.Context,
		attractionID string,
		from, to time.Time,
	) ([]*domain.WaitSample, error)

	// ListByPark retrieves samples for every attraction in a park within
	// [from, to), ordered by sample time ascending.
	ListByPark(ctx context.Context, parkID string, from, to time.Time) ([]*domain.WaitSample, error)

	// WithTx returns a new WaitSampleStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) WaitSampleStore
}
