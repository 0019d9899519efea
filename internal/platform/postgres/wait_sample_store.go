package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/platform/logger"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// PostgresWaitSampleStore implements the store.WaitSampleStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWaitSampleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWaitSampleStore creates a new PostgreSQL implementation of the WaitSampleStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresWaitSampleStore(db store.DBTX, logger *slog.Logger) *PostgresWaitSampleStore {
	if db == nil {
		// ALLOW-PANIC: Constructor requires non-nil DB
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresWaitSampleStore{
		db:     db,
		logger: logger.With(slog.String("component", "wait_sample_store")),
	}
}

// Ensure PostgresWaitSampleStore implements store.WaitSampleStore interface
var _ store.WaitSampleStore = (*PostgresWaitSampleStore)(nil)

// WithTx implements store.WaitSampleStore.WithTx
func (s *PostgresWaitSampleStore) WithTx(tx *sql.Tx) store.WaitSampleStore {
	return &PostgresWaitSampleStore{db: tx, logger: s.logger}
}

// Create implements store.WaitSampleStore.Create
func (s *PostgresWaitSampleStore) Create(ctx context.Context, sample *domain.WaitSample) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := sample.Validate(); err != nil {
		log.Warn("wait sample validation failed during create",
			slog.String("error", err.Error()),
			slog.String("attraction_id", sample.AttractionID))
		return err
	}

	query := `
		INSERT INTO wait_samples (id, park_id, attraction_id, wait_minutes, status, sampled_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		sample.ID,
		sample.ParkID,
		sample.AttractionID,
		sample.WaitMinutes,
		sample.Status,
		sample.SampledAt,
	)

	if err != nil {
		log.Error("failed to create wait sample",
			slog.String("error", err.Error()),
			slog.String("attraction_id", sample.AttractionID))
		return MapError(err)
	}

	return nil
}

// CreateBatch implements store.WaitSampleStore.CreateBatch
// Samples are written with a single multi-row INSERT. An empty batch is a no-op.
func (s *PostgresWaitSampleStore) CreateBatch(
	ctx context.Context,
	samples []*domain.WaitSample,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(samples) == 0 {
		return nil
	}

	for _, sample := range samples {
		if err := sample.Validate(); err != nil {
			log.Warn("wait sample validation failed during batch create",
				slog.String("error", err.Error()),
				slog.String("attraction_id", sample.AttractionID))
			return err
		}
	}

	var sb strings.Builder
	sb.WriteString(
		`INSERT INTO wait_samples (id, park_id, attraction_id, wait_minutes, status, sampled_at) VALUES `,
	)

	args := make([]any, 0, len(samples)*6)
	for i, sample := range samples {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(
			args,
			sample.ID,
			sample.ParkID,
			sample.AttractionID,
			sample.WaitMinutes,
			sample.Status,
			sample.SampledAt,
		)
	}

	_, err := s.db.ExecContext(ctx, sb.String(), args...)
	if err != nil {
		log.Error("failed to create wait sample batch",
			slog.String("error", err.Error()),
			slog.Int("count", len(samples)))
		return MapError(err)
	}

	log.Debug("wait sample batch created",
		slog.Int("count", len(samples)))
	return nil
}

// ListByAttraction implements store.WaitSampleStore.ListByAttraction
func (s *PostgresWaitSampleStore) ListByAttraction(
	ctx context.Context,
	attractionID string,
	from, to time.Time,
) ([]*domain.WaitSample, error) {
	query := `
		SELECT id, park_id, attraction_id, wait_minutes, status, sampled_at
		FROM wait_samples
		WHERE attraction_id = $1 AND sampled_at >= $2 AND sampled_at < $3
		ORDER BY sampled_at ASC
	`
	return s.list(ctx, query, attractionID, from, to)
}

// ListByPark implements store.WaitSampleStore.ListByPark
func (s *PostgresWaitSampleStore) ListByPark(
	ctx context.Context,
	parkID string,
	from, to time.Time,
) ([]*domain.WaitSample, error) {
	query := `
		SELECT id, park_id, attraction_id, wait_minutes, status, sampled_at
		FROM wait_samples
		WHERE park_id = $1 AND sampled_at >= $2 AND sampled_at < $3
		ORDER BY sampled_at ASC
	`
	return s.list(ctx, query, parkID, from, to)
}

func (s *PostgresWaitSampleStore) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.WaitSample, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query wait samples",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	samples := []*domain.WaitSample{}
	for rows.Next() {
		var sample domain.WaitSample
		var status string

		err := rows.Scan(
			&sample.ID,
			&sample.ParkID,
			&sample.AttractionID,
			&sample.WaitMinutes,
			&status,
			&sample.SampledAt,
		)
		if err != nil {
			log.Error("failed to scan wait sample row",
				slog.String("error", err.Error()))
			return nil, err
		}

		sample.Status = domain.RideStatus(status)
		samples = append(samples, &sample)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return samples, nil
}
