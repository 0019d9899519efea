package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "live:magic-kingdom", []byte(`{"waits":[]}`), time.Minute))

	got, err := m.Get(ctx, "live:magic-kingdom")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"waits":[]}`), got)

	_, err = m.Get(ctx, "live:epcot")
	assert.True(t, IsCacheMiss(err), "expected cache miss, got %v", err)
}

func TestMemoryExpiration(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "short", []byte("v"), 10*time.Millisecond))

	time.Sleep(30 * time.Millisecond)

	_, err := m.Get(ctx, "short")
	assert.True(t, IsCacheMiss(err), "expected expired key to miss, got %v", err)
}

func TestMemoryNoExpiration(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	// Negative TTL stores without expiration.
	require.NoError(t, m.Set(ctx, "forever", []byte("v"), -1))

	got, err := m.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryDeleteAndClear(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, m.Delete(ctx, "a"))
	_, err := m.Get(ctx, "a")
	assert.True(t, IsCacheMiss(err))

	require.NoError(t, m.Clear(ctx))
	_, err = m.Get(ctx, "b")
	assert.True(t, IsCacheMiss(err))
}

func TestMemoryContextCanceled(t *testing.T) {
	t.Parallel()
	m := NewMemory()
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, m.Set(ctx, "a", []byte("1"), time.Minute))
	_, err := m.Get(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}
