package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errTransient = errors.New("transient")

func testConfig() Config {
	return Config{
		MaxRetries:   3,
		RetryInitial: time.Millisecond,
		RetryMax:     2 * time.Millisecond,
		Capacity:     16,
		Retryable:    func(err error) bool { return errors.Is(err, errTransient) },
	}
}

func startQueue(t *testing.T, q *Queue) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		q.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func recorder(order *[]string, mu *sync.Mutex, name string) Func {
	return func(ctx context.Context) (any, error) {
		mu.Lock()
		*order = append(*order, name)
		mu.Unlock()
		return name, nil
	}
}

func TestPriorityOrder(t *testing.T) {
	q := New(testConfig(), zap.NewNop())
	ctx := context.Background()

	var (
		mu    sync.Mutex
		order []string
	)
	var chans []<-chan Result
	for _, c := range []Command{
		{Name: "low", Priority: PriorityLow, Fn: recorder(&order, &mu, "low")},
		{Name: "normal-1", Fn: recorder(&order, &mu, "normal-1")},
		{Name: "high", Priority: PriorityHigh, Fn: recorder(&order, &mu, "high")},
		{Name: "normal-2", Priority: PriorityNormal, Fn: recorder(&order, &mu, "normal-2")},
	} {
		ch, err := q.Submit(ctx, c)
		require.NoError(t, err)
		chans = append(chans, ch)
	}
	assert.Equal(t, 4, q.Len())

	startQueue(t, q)
	for _, ch := range chans {
		res := <-ch
		require.NoError(t, res.Err)
	}

	assert.Equal(t, []string{"high", "normal-1", "normal-2", "low"}, order)
	assert.Equal(t, uint64(4), q.Stats().Executed)
}

func TestMinDelayPacesCommands(t *testing.T) {
	cfg := testConfig()
	cfg.MinDelay = 40 * time.Millisecond
	q := New(cfg, zap.NewNop())
	startQueue(t, q)

	var starts []time.Time
	for i := 0; i < 3; i++ {
		_, err := q.Do(context.Background(), Command{Name: "tick", Fn: func(ctx context.Context) (any, error) {
			starts = append(starts, time.Now())
			return nil, nil
		}})
		require.NoError(t, err)
	}

	require.Len(t, starts, 3)
	for i := 1; i < len(starts); i++ {
		assert.GreaterOrEqual(t, starts[i].Sub(starts[i-1]), 35*time.Millisecond)
	}
}

func TestStatCommandsHoldWorker(t *testing.T) {
	cfg := testConfig()
	cfg.StatDelay = 60 * time.Millisecond
	q := New(cfg, zap.NewNop())
	startQueue(t, q)

	var statDone time.Time
	_, err := q.Do(context.Background(), Command{Name: "stat fps", Kind: KindStat, Fn: func(ctx context.Context) (any, error) {
		statDone = time.Now()
		return nil, nil
	}})
	require.NoError(t, err)

	var nextStart time.Time
	_, err = q.Do(context.Background(), Command{Name: "next", Fn: func(ctx context.Context) (any, error) {
		nextStart = time.Now()
		return nil, nil
	}})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, nextStart.Sub(statDone), 55*time.Millisecond)
}

func TestRetriesTransientFailures(t *testing.T) {
	q := New(testConfig(), zap.NewNop())
	startQueue(t, q)

	calls := 0
	ch, err := q.Submit(context.Background(), Command{Name: "flaky", Fn: func(ctx context.Context) (any, error) {
		calls++
		if calls < 3 {
			return nil, errTransient
		}
		return "ok", nil
	}})
	require.NoError(t, err)

	res := <-ch
	require.NoError(t, res.Err)
	assert.Equal(t, "ok", res.Value)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, uint64(2), q.Stats().Retried)
}

func TestRetryGivesUpAfterMaxRetries(t *testing.T) {
	q := New(testConfig(), zap.NewNop())
	startQueue(t, q)

	calls := 0
	_, err := q.Do(context.Background(), Command{Name: "down", Fn: func(ctx context.Context) (any, error) {
		calls++
		return nil, errTransient
	}})
	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 3, calls)
	assert.Equal(t, uint64(1), q.Stats().Failed)
}

func TestPermanentErrorsAreNotRetried(t *testing.T) {
	q := New(testConfig(), zap.NewNop())
	startQueue(t, q)

	boom := errors.New("boom")
	calls := 0
	_, err := q.Do(context.Background(), Command{Name: "bad", Fn: func(ctx context.Context) (any, error) {
		calls++
		return nil, boom
	}})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestCancelledCommandIsSkipped(t *testing.T) {
	q := New(testConfig(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	called := false
	ch, err := q.Submit(ctx, Command{Name: "late", Fn: func(ctx context.Context) (any, error) {
		called = true
		return nil, nil
	}})
	require.NoError(t, err)
	cancel()

	startQueue(t, q)
	res := <-ch
	assert.ErrorIs(t, res.Err, context.Canceled)
	assert.False(t, called)
	assert.Equal(t, uint64(1), q.Stats().Dropped)
}

func TestCapacity(t *testing.T) {
	cfg := testConfig()
	cfg.Capacity = 1
	q := New(cfg, zap.NewNop())

	noop := func(ctx context.Context) (any, error) { return nil, nil }
	_, err := q.Submit(context.Background(), Command{Name: "a", Fn: noop})
	require.NoError(t, err)
	_, err = q.Submit(context.Background(), Command{Name: "b", Fn: noop})
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestCloseFailsPendingAndRejectsNew(t *testing.T) {
	q := New(testConfig(), zap.NewNop())
	noop := func(ctx context.Context) (any, error) { return nil, nil }

	ch, err := q.Submit(context.Background(), Command{Name: "pending", Fn: noop})
	require.NoError(t, err)

	q.Close()
	res := <-ch
	assert.ErrorIs(t, res.Err, ErrQueueClosed)

	_, err = q.Submit(context.Background(), Command{Name: "after", Fn: noop})
	assert.ErrorIs(t, err, ErrQueueClosed)

	q.Close()
}

func TestSubmitRequiresFunction(t *testing.T) {
	q := New(testConfig(), zap.NewNop())
	_, err := q.Submit(context.Background(), Command{Name: "empty"})
	assert.Error(t, err)
}

func TestCloseInterruptsPacedCommand(t *testing.T) {
	cfg := testConfig()
	cfg.MinDelay = time.Minute
	q := New(cfg, zap.NewNop())
	startQueue(t, q)

	_, err := q.Do(context.Background(), Command{Name: "first", Fn: func(ctx context.Context) (any, error) {
		return nil, nil
	}})
	require.NoError(t, err)

	var called atomic.Bool
	ch, err := q.Submit(context.Background(), Command{Name: "paced", Fn: func(ctx context.Context) (any, error) {
		called.Store(true)
		return nil, nil
	}})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
	q.Close()

	select {
	case res := <-ch:
		assert.ErrorIs(t, res.Err, ErrQueueClosed)
	case <-time.After(time.Second):
		t.Fatal("paced command still waiting after Close")
	}
	assert.False(t, called.Load())
}
