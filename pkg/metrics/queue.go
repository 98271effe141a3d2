package metrics

import (
	"time"
)

// SetQueueDepth records the number of waiting commands
func SetQueueDepth(depth int) {
	m := Get()
	if m != nil {
		m.QueueDepth.Set(float64(depth))
	}
}

// RecordQueueWait records how long a command waited before it started
func RecordQueueWait(kind string, wait time.Duration) {
	m := Get()
	if m != nil {
		m.QueueWaitDuration.WithLabelValues(kind).Observe(wait.Seconds())
	}
}

// RecordQueueRetry records a retried command
func RecordQueueRetry(command string) {
	m := Get()
	if m != nil {
		m.QueueRetriesTotal.WithLabelValues(command).Inc()
	}
}

// RecordQueueDrop records a command that never ran
func RecordQueueDrop(reason string) {
	m := Get()
	if m != nil {
		m.QueueDropsTotal.WithLabelValues(reason).Inc()
	}
}

// RecordCacheLookup records an asset cache hit or miss
func RecordCacheLookup(hit bool) {
	m := Get()
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookupsTotal.WithLabelValues(result).Inc()
}
