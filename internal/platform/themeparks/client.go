package themeparks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/parkhopper/parkhopper-api/internal/cache"
	"github.com/parkhopper/parkhopper-api/internal/config"
	"github.com/parkhopper/parkhopper-api/internal/platform/logger"
)

const maxRetries = 3

// Client talks to the ThemeParks.wiki API with per-endpoint response caching.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      cache.Cache
	logger     *slog.Logger

	liveTTL     time.Duration
	scheduleTTL time.Duration
	entityTTL   time.Duration
}

// NewClient creates a themeparks API client.
// The cache is required: every read goes through it. If logger is nil,
// a default logger will be used.
func NewClient(cfg config.ThemeparksConfig, c cache.Cache, log *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL cannot be empty", ErrInvalidConfig)
	}
	if c == nil {
		return nil, fmt.Errorf("%w: cache cannot be nil", ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}

	timeout := time.Duration(cfg.RequestTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		cache:       c,
		logger:      log.With(slog.String("component", "themeparks_client")),
		liveTTL:     time.Duration(cfg.LiveTTLSeconds) * time.Second,
		scheduleTTL: time.Duration(cfg.ScheduleTTLSeconds) * time.Second,
		entityTTL:   time.Duration(cfg.EntityTTLSeconds) * time.Second,
	}, nil
}

// LiveWaitTimes returns the current wait times for every attraction in a park.
// Responses are cached for the configured live TTL (default one minute).
func (c *Client) LiveWaitTimes(ctx context.Context, parkID string) ([]LiveWaitTime, error) {
	cacheKey := "themeparks:live:" + parkID

	var cached []LiveWaitTime
	if ok := c.fromCache(ctx, cacheKey, &cached); ok {
		return cached, nil
	}

	var resp liveResponse
	if err := c.getJSON(ctx, "/entity/"+parkID+"/live", &resp); err != nil {
		return nil, err
	}

	waits := make([]LiveWaitTime, 0, len(resp.LiveData))
	for _, ld := range resp.LiveData {
		if ld.EntityType != "ATTRACTION" {
			continue
		}
		w := LiveWaitTime{
			EntityID:    ld.ID,
			Name:        ld.Name,
			Status:      ld.Status,
			LastUpdated: ld.LastUpdated,
		}
		if ld.Queue != nil && ld.Queue.Standby != nil && ld.Queue.Standby.WaitTime != nil {
			w.WaitMinutes = *ld.Queue.Standby.WaitTime
		}
		waits = append(waits, w)
	}

	c.toCache(ctx, cacheKey, waits, c.liveTTL)
	return waits, nil
}

// ParkSchedule returns the operating-hours calendar for a park.
// Responses are cached for the configured schedule TTL (default 30 minutes).
func (c *Client) ParkSchedule(ctx context.Context, parkID string) ([]ScheduleEntry, error) {
	cacheKey := "themeparks:schedule:" + parkID

	var cached []ScheduleEntry
	if ok := c.fromCache(ctx, cacheKey, &cached); ok {
		return cached, nil
	}

	var resp scheduleResponse
	if err := c.getJSON(ctx, "/entity/"+parkID+"/schedule", &resp); err != nil {
		return nil, err
	}

	entries := make([]ScheduleEntry, 0, len(resp.Schedule))
	for _, se := range resp.Schedule {
		entries = append(entries, ScheduleEntry{
			Date:        se.Date,
			Type:        se.Type,
			OpeningTime: se.OpeningTime,
			ClosingTime: se.ClosingTime,
		})
	}

	c.toCache(ctx, cacheKey, entries, c.scheduleTTL)
	return entries, nil
}

// EntityDetails returns the metadata for a single park or attraction.
// Responses are cached for the configured entity TTL (default 12 hours).
func (c *Client) EntityDetails(ctx context.Context, entityID string) (*EntityDetails, error) {
	cacheKey := "themeparks:entity:" + entityID

	var cached EntityDetails
	if ok := c.fromCache(ctx, cacheKey, &cached); ok {
		return &cached, nil
	}

	var resp entityResponse
	if err := c.getJSON(ctx, "/entity/"+entityID, &resp); err != nil {
		return nil, err
	}

	details := &EntityDetails{
		ID:         resp.ID,
		Name:       resp.Name,
		EntityType: resp.EntityType,
		ParentID:   resp.ParentID,
		Timezone:   resp.Timezone,
	}
	if resp.Location != nil {
		lat, lng := resp.Location.Latitude, resp.Location.Longitude
		details.Latitude = &lat
		details.Longitude = &lng
	}

	c.toCache(ctx, cacheKey, *details, c.entityTTL)
	return details, nil
}

// getJSON performs a GET with retry for transient failures and decodes the body.
// 5xx responses and transport errors are retried with exponential backoff and
// jitter; 4xx responses are permanent and returned immediately.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	log := logger.FromContextOrDefault(ctx, c.logger)
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 500 * time.Millisecond
			jitter := time.Duration(rand.Int63n(int64(backoff) / 2))
			select {
			case <-time.After(backoff + jitter):
			case <-ctx.Done():
				return ctx.Err()
			}
			log.Debug("retrying upstream request",
				slog.String("url", url),
				slog.Int("attempt", attempt+1))
		}

		err := c.doOnce(ctx, url, out)
		if err == nil {
			return nil
		}

		var statusErr *UpstreamStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode < 500 {
			// Client errors won't improve with retries.
			if statusErr.StatusCode == http.StatusNotFound {
				return fmt.Errorf("%w: %s", ErrEntityNotFound, path)
			}
			return err
		}
		lastErr = err
	}

	log.Warn("upstream request exhausted retries",
		slog.String("url", url),
		slog.String("error", lastErr.Error()))
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamStatusError{StatusCode: resp.StatusCode, URL: url}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return nil
}

// fromCache loads a cached value into out, returning true on a hit.
// Cache failures degrade to a miss; the upstream fetch still works.
func (c *Client) fromCache(ctx context.Context, key string, out any) bool {
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		if !cache.IsCacheMiss(err) {
			c.logger.Warn("cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()))
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("cache entry corrupt, ignoring",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return false
	}
	return true
}

func (c *Client) toCache(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("failed to marshal value for cache",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return
	}
	if err := c.cache.Set(ctx, key, data, ttl); err != nil {
		c.logger.Warn("cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}
