// Package poller runs the background wait-time sampler. It periodically
// fetches live waits for every catalog park and persists them, giving the
// analytics endpoints history even when no one is hitting the live API.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/parkhopper/parkhopper-api/internal/content"
	"github.com/parkhopper/parkhopper-api/internal/domain"
	"github.com/parkhopper/parkhopper-api/internal/platform/themeparks"
	"github.com/parkhopper/parkhopper-api/internal/store"
)

// LiveWaitSource fetches the current posted waits for a park. The themeparks
// client implements this.
type LiveWaitSource interface {
	LiveWaitTimes(ctx context.Context, parkID string) ([]themeparks.LiveWaitTime, error)
}

// Poller samples live waits for all catalog parks on a fixed interval.
type Poller struct {
	source    LiveWaitSource
	waitStore store.WaitSampleStore
	interval  time.Duration
	logger    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPoller creates a new Poller. Start must be called to begin sampling.
func NewPoller(
	source LiveWaitSource,
	waitStore store.WaitSampleStore,
	interval time.Duration,
	logger *slog.Logger,
) *Poller {
	if source == nil {
		// ALLOW-PANIC: Constructor requires non-nil source
		panic("source cannot be nil")
	}
	if waitStore == nil {
		// ALLOW-PANIC: Constructor requires non-nil wait store
		panic("waitStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Poller{
		source:    source,
		waitStore: waitStore,
		interval:  interval,
		logger:    logger.With(slog.String("component", "wait_poller")),
	}
}

// Start begins the sampling loop. A poll runs immediately, then on every
// interval tick until Stop is called.
func (p *Poller) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		p.logger.Info("wait-time poller started",
			slog.Duration("interval", p.interval))

		p.pollOnce(runCtx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				p.pollOnce(runCtx)
			}
		}
	}()
}

// Stop halts the sampling loop and waits for an in-flight poll to finish.
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.logger.Info("wait-time poller stopped")
}

// pollOnce samples every catalog park. A park that fails is logged and
// skipped; one flaky upstream fetch must not starve the others.
func (p *Poller) pollOnce(ctx context.Context) {
	now := time.Now().UTC()

	for _, park := range content.Parks() {
		waits, err := p.source.LiveWaitTimes(ctx, park.ID)
		if err != nil {
			p.logger.Warn("failed to fetch live waits",
				slog.String("error", err.Error()),
				slog.String("park_id", park.ID))
			continue
		}

		samples := samplesFromLive(park.ID, waits, now)
		if len(samples) == 0 {
			continue
		}

		if err := p.waitStore.CreateBatch(ctx, samples); err != nil {
			p.logger.Warn("failed to persist wait samples",
				slog.String("error", err.Error()),
				slog.String("park_id", park.ID),
				slog.Int("sample_count", len(samples)))
			continue
		}

		p.logger.Debug("wait samples recorded",
			slog.String("park_id", park.ID),
			slog.Int("sample_count", len(samples)))
	}
}

// samplesFromLive converts upstream live waits into domain samples, mapping
// upstream statuses onto ours. Refurbishment counts as closed.
func samplesFromLive(parkID string, waits []themeparks.LiveWaitTime, at time.Time) []*domain.WaitSample {
	samples := make([]*domain.WaitSample, 0, len(waits))
	for _, wt := range waits {
		var status domain.RideStatus
		switch wt.Status {
		case themeparks.StatusOperating:
			status = domain.StatusOperating
		case themeparks.StatusDown:
			status = domain.StatusDown
		default:
			status = domain.StatusClosed
		}

		sample, err := domain.NewWaitSample(parkID, wt.EntityID, wt.WaitMinutes, status, at)
		if err != nil {
			continue
		}
		samples = append(samples, sample)
	}
	return samples
}
