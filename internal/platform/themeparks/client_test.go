package themeparks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/parkhopper/parkhopper-api/internal/cache"
	"github.com/parkhopper/parkhopper-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.ThemeparksConfig{
		BaseURL:            srv.URL,
		RequestTimeoutSec:  5,
		LiveTTLSeconds:     60,
		ScheduleTTLSeconds: 1800,
		EntityTTLSeconds:   43200,
	}

	client, err := NewClient(cfg, cache.NewMemory(), nil)
	require.NoError(t, err)
	return client, srv
}

func TestNewClientValidation(t *testing.T) {
	t.Parallel()

	_, err := NewClient(config.ThemeparksConfig{}, cache.NewMemory(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewClient(config.ThemeparksConfig{BaseURL: "https://example.com"}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLiveWaitTimes(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/entity/magic-kingdom/live", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "magic-kingdom",
			"liveData": [
				{
					"id": "space-mountain",
					"name": "Space Mountain",
					"entityType": "ATTRACTION",
					"status": "OPERATING",
					"queue": {"STANDBY": {"waitTime": 45}},
					"lastUpdated": "2026-08-20T14:30:00Z"
				},
				{
					"id": "casey-jr",
					"name": "Casey Jr.",
					"entityType": "ATTRACTION",
					"status": "CLOSED",
					"queue": {"STANDBY": {"waitTime": null}},
					"lastUpdated": "2026-08-20T14:30:00Z"
				},
				{
					"id": "some-show",
					"name": "Parade",
					"entityType": "SHOW",
					"status": "OPERATING",
					"lastUpdated": "2026-08-20T14:30:00Z"
				}
			]
		}`))
	})

	client, _ := newTestClient(t, handler)
	ctx := context.Background()

	waits, err := client.LiveWaitTimes(ctx, "magic-kingdom")
	require.NoError(t, err)

	// Shows are filtered out; only attractions remain.
	require.Len(t, waits, 2)
	assert.Equal(t, "space-mountain", waits[0].EntityID)
	assert.Equal(t, 45, waits[0].WaitMinutes)
	assert.Equal(t, StatusOperating, waits[0].Status)
	assert.Equal(t, 0, waits[1].WaitMinutes) // null waitTime flattens to zero

	// Second call within the TTL is served from cache.
	again, err := client.LiveWaitTimes(ctx, "magic-kingdom")
	require.NoError(t, err)
	assert.Equal(t, waits, again)
	assert.Equal(t, int64(1), calls.Load(), "expected cached response to skip the network")
}

func TestParkSchedule(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/entity/epcot/schedule", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "epcot",
			"schedule": [
				{
					"date": "2026-08-20",
					"type": "OPERATING",
					"openingTime": "2026-08-20T09:00:00-04:00",
					"closingTime": "2026-08-20T21:00:00-04:00"
				}
			]
		}`))
	})

	client, _ := newTestClient(t, handler)
	ctx := context.Background()

	entries, err := client.ParkSchedule(ctx, "epcot")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2026-08-20", entries[0].Date)
	assert.Equal(t, "OPERATING", entries[0].Type)

	_, err = client.ParkSchedule(ctx, "epcot")
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestEntityDetails(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "space-mountain",
			"name": "Space Mountain",
			"entityType": "ATTRACTION",
			"parentId": "magic-kingdom",
			"location": {"latitude": 28.4189, "longitude": -81.5780},
			"timezone": "America/New_York"
		}`))
	})

	client, _ := newTestClient(t, handler)

	details, err := client.EntityDetails(context.Background(), "space-mountain")
	require.NoError(t, err)
	assert.Equal(t, "Space Mountain", details.Name)
	assert.Equal(t, "magic-kingdom", details.ParentID)
	require.NotNil(t, details.Latitude)
	assert.InDelta(t, 28.4189, *details.Latitude, 0.0001)
}

func TestNotFoundIsPermanent(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	})

	client, _ := newTestClient(t, handler)

	_, err := client.EntityDetails(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrEntityNotFound)
	assert.Equal(t, int64(1), calls.Load(), "404 should not be retried")
}

func TestServerErrorsAreRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "epcot", "schedule": []}`))
	})

	client, _ := newTestClient(t, handler)

	entries, err := client.ParkSchedule(context.Background(), "epcot")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, int64(2), calls.Load())
}
