package queue

import (
	"container/heap"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/shaowenchen/unreal-mcp-server/pkg/metrics"
)

// Queue serializes commands to the editor through a single worker and paces
// them so the engine is never flooded
type Queue struct {
	cfg     Config
	logger  *zap.Logger
	limiter *rate.Limiter

	mu     sync.Mutex
	items  itemHeap
	seq    uint64
	closed bool

	wake      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	running  atomic.Bool
	last     atomic.Value
	executed atomic.Uint64
	failed   atomic.Uint64
	retried  atomic.Uint64
	dropped  atomic.Uint64
}

// New creates a queue. Call Run to start the worker.
func New(cfg Config, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 1
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = 256
	}
	if cfg.RetryInitial <= 0 {
		cfg.RetryInitial = 250 * time.Millisecond
	}
	if cfg.RetryMax < cfg.RetryInitial {
		cfg.RetryMax = cfg.RetryInitial
	}

	return &Queue{
		cfg:     cfg,
		logger:  logger.Named("queue"),
		limiter: rate.NewLimiter(rate.Every(cfg.MinDelay), cfg.Burst),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Submit enqueues a command and returns a channel that receives its result
func (q *Queue) Submit(ctx context.Context, cmd Command) (<-chan Result, error) {
	if cmd.Fn == nil {
		return nil, fmt.Errorf("command %q has no function", cmd.Name)
	}
	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}
	if cmd.Priority == 0 {
		cmd.Priority = PriorityNormal
	}
	if cmd.Kind == "" {
		cmd.Kind = KindDefault
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		metrics.RecordQueueDrop("closed")
		return nil, ErrQueueClosed
	}
	if len(q.items) >= q.cfg.Capacity {
		q.mu.Unlock()
		metrics.RecordQueueDrop("full")
		return nil, ErrQueueFull
	}
	q.seq++
	it := &item{
		cmd:      cmd,
		ctx:      ctx,
		seq:      q.seq,
		enqueued: time.Now(),
		done:     make(chan Result, 1),
	}
	heap.Push(&q.items, it)
	depth := len(q.items)
	q.mu.Unlock()

	metrics.SetQueueDepth(depth)
	q.logger.Debug("Command queued",
		zap.String("id", cmd.ID),
		zap.String("name", cmd.Name),
		zap.Int("priority", int(cmd.Priority)),
		zap.Int("depth", depth))

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return it.done, nil
}

// Do submits a command and waits for its result
func (q *Queue) Do(ctx context.Context, cmd Command) (any, error) {
	ch, err := q.Submit(ctx, cmd)
	if err != nil {
		return nil, err
	}
	select {
	case res := <-ch:
		return res.Value, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run executes queued commands one at a time until ctx is done or Close is called
func (q *Queue) Run(ctx context.Context) {
	q.logger.Info("Command queue started",
		zap.Duration("min_delay", q.cfg.MinDelay),
		zap.Duration("stat_delay", q.cfg.StatDelay),
		zap.Uint("max_retries", q.cfg.MaxRetries))
	defer q.drain()

	// Close must interrupt a command waiting on the limiter
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-q.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		it, ok := q.next(ctx)
		if !ok {
			return
		}
		q.execute(ctx, it)
	}
}

// Close stops accepting commands and fails everything still pending
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()
		close(q.done)
		q.drain()
	})
}

// Len returns the number of pending commands
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Stats returns a snapshot of queue activity
func (q *Queue) Stats() Stats {
	last, _ := q.last.Load().(string)
	return Stats{
		Pending:     q.Len(),
		Executed:    q.executed.Load(),
		Failed:      q.failed.Load(),
		Retried:     q.retried.Load(),
		Dropped:     q.dropped.Load(),
		Running:     q.running.Load(),
		LastCommand: last,
	}
}

// next blocks until a command is available or the queue stops
func (q *Queue) next(ctx context.Context) (*item, bool) {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return nil, false
		}
		if len(q.items) > 0 {
			it := heap.Pop(&q.items).(*item)
			depth := len(q.items)
			q.mu.Unlock()
			metrics.SetQueueDepth(depth)
			return it, true
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, false
		case <-q.done:
			return nil, false
		case <-q.wake:
		}
	}
}

func (q *Queue) execute(ctx context.Context, it *item) {
	if err := it.ctx.Err(); err != nil {
		q.skip(it, err, "cancelled")
		return
	}
	if err := q.limiter.Wait(ctx); err != nil || q.isClosed() {
		q.skip(it, ErrQueueClosed, "closed")
		return
	}
	if err := it.ctx.Err(); err != nil {
		q.skip(it, err, "cancelled")
		return
	}

	waited := time.Since(it.enqueued)
	metrics.RecordQueueWait(string(it.cmd.Kind), waited)

	q.running.Store(true)
	q.last.Store(it.cmd.Name)
	start := time.Now()

	attempts := 0
	operation := func() (any, error) {
		attempts++
		value, err := it.cmd.Fn(it.ctx)
		if err == nil {
			return value, nil
		}
		if it.ctx.Err() != nil || q.cfg.Retryable == nil || !q.cfg.Retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = q.cfg.RetryInitial
	policy.MaxInterval = q.cfg.RetryMax

	value, err := backoff.Retry(it.ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(q.cfg.MaxRetries),
		backoff.WithNotify(func(err error, next time.Duration) {
			q.retried.Add(1)
			metrics.RecordQueueRetry(it.cmd.Name)
			q.logger.Warn("Command failed, retrying",
				zap.String("id", it.cmd.ID),
				zap.String("name", it.cmd.Name),
				zap.Duration("next", next),
				zap.Error(err))
		}),
	)

	q.running.Store(false)
	q.executed.Add(1)
	if err != nil {
		q.failed.Add(1)
	}

	q.logger.Debug("Command finished",
		zap.String("id", it.cmd.ID),
		zap.String("name", it.cmd.Name),
		zap.Int("attempts", attempts),
		zap.Duration("waited", waited),
		zap.Duration("duration", time.Since(start)),
		zap.Error(err))

	it.done <- Result{Value: value, Err: err, Attempts: attempts, Waited: waited}

	if it.cmd.Kind == KindStat && q.cfg.StatDelay > 0 {
		timer := time.NewTimer(q.cfg.StatDelay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
		case <-q.done:
			timer.Stop()
		}
	}
}

func (q *Queue) skip(it *item, err error, reason string) {
	q.dropped.Add(1)
	metrics.RecordQueueDrop(reason)
	q.logger.Debug("Command skipped",
		zap.String("id", it.cmd.ID),
		zap.String("name", it.cmd.Name),
		zap.String("reason", reason))
	it.done <- Result{Err: err}
}

func (q *Queue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// drain fails every pending command with ErrQueueClosed
func (q *Queue) drain() {
	q.mu.Lock()
	q.closed = true
	pending := q.items
	q.items = nil
	q.mu.Unlock()

	for _, it := range pending {
		q.skip(it, ErrQueueClosed, "closed")
	}
	metrics.SetQueueDepth(0)
}
