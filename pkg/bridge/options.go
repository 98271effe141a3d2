package bridge

import (
	"time"

	"github.com/shaowenchen/unreal-mcp-server/pkg/queue"
)

type callOptions struct {
	name      string
	priority  queue.Priority
	kind      queue.Kind
	timeout   time.Duration
	generated bool
}

// Option adjusts how a single call is queued and sent
type Option func(*callOptions)

// WithPriority sets the queue priority. Lower values run first.
func WithPriority(p queue.Priority) Option {
	return func(o *callOptions) { o.priority = p }
}

// WithKind sets the pacing kind
func WithKind(k queue.Kind) Option {
	return func(o *callOptions) { o.kind = k }
}

// WithTimeout overrides unreal.requestTimeout for one call
func WithTimeout(d time.Duration) Option {
	return func(o *callOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithName labels the command in logs and queue stats
func WithName(name string) Option {
	return func(o *callOptions) { o.name = name }
}

// Generated marks a Python script as produced by a tool template rather
// than supplied verbatim by a client. Generated scripts run even when raw
// Python is disabled.
func Generated() Option {
	return func(o *callOptions) { o.generated = true }
}

func (b *Bridge) collect(name string, opts []Option) callOptions {
	o := callOptions{
		name:     name,
		priority: queue.PriorityNormal,
		kind:     queue.KindDefault,
		timeout:  b.cfg.RequestTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
