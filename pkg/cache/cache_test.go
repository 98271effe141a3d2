package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrLoadCachesValue(t *testing.T) {
	c := New[[]string](8, time.Minute)
	var loads atomic.Int32
	load := func(ctx context.Context) ([]string, error) {
		loads.Add(1)
		return []string{"/Game/A"}, nil
	}

	v, hit, err := c.GetOrLoad(context.Background(), "list:/Game", load)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []string{"/Game/A"}, v)

	v, hit, err = c.GetOrLoad(context.Background(), "list:/Game", load)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"/Game/A"}, v)
	assert.Equal(t, int32(1), loads.Load())
}

func TestEntriesExpire(t *testing.T) {
	c := New[int](8, 20*time.Millisecond)
	c.Set("k", 1)
	_, ok := c.Get("k")
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestZeroTTLDisablesCaching(t *testing.T) {
	c := New[int](8, 0)
	c.Set("k", 1)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestFailedLoadsAreNotCached(t *testing.T) {
	c := New[int](8, time.Minute)
	boom := errors.New("editor unavailable")

	_, _, err := c.GetOrLoad(context.Background(), "k", func(ctx context.Context) (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)

	v, hit, err := c.GetOrLoad(context.Background(), "k", func(ctx context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 7, v)
}

func TestConcurrentLoadsCollapse(t *testing.T) {
	c := New[int](8, time.Minute)
	var loads atomic.Int32
	release := make(chan struct{})
	load := func(ctx context.Context) (int, error) {
		loads.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := c.GetOrLoad(context.Background(), "k", load)
			if err == nil {
				results[i] = v
			}
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestInvalidatePrefix(t *testing.T) {
	c := New[int](8, time.Minute)
	c.Set("list:/Game/Maps|r=true", 1)
	c.Set("list:/Game/Maps/Sub|r=false", 2)
	c.Set("list:/Game/Props|r=true", 3)

	assert.Equal(t, 2, c.InvalidatePrefix("list:/Game/Maps"))
	assert.Equal(t, 1, c.Len())

	c.Invalidate("list:/Game/Props|r=true")
	assert.Equal(t, 0, c.Len())

	c.Set("a", 1)
	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestGetOrLoadRespectsContext(t *testing.T) {
	c := New[int](8, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := c.GetOrLoad(ctx, "slow", func(ctx context.Context) (int, error) {
		time.Sleep(50 * time.Millisecond)
		return 1, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	c := New[int](8, time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (int, error) {
		close(started)
		select {
		case <-release:
			return 7, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := c.GetOrLoad(first, "shared", load)
		firstErr <- err
	}()
	<-started

	type outcome struct {
		value int
		err   error
	}
	second := make(chan outcome, 1)
	go func() {
		v, _, err := c.GetOrLoad(context.Background(), "shared", load)
		second <- outcome{v, err}
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, 7, got.value)

	v, hit, err := c.GetOrLoad(context.Background(), "shared", load)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, v)
}
