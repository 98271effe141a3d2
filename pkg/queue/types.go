package queue

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrQueueFull is returned when the queue is at capacity
	ErrQueueFull = errors.New("command queue is full")
	// ErrQueueClosed is returned for commands submitted to or pending in a closed queue
	ErrQueueClosed = errors.New("command queue is closed")
)

// Priority orders pending commands. Lower values run first.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityNormal Priority = 5
	PriorityLow    Priority = 9
)

// Kind selects the pacing applied after a command completes
type Kind string

const (
	KindDefault Kind = "default"
	// KindStat marks engine "stat" commands, which hold the worker for StatDelay
	KindStat Kind = "stat"
)

// Func is the unit of work executed by the queue worker
type Func func(ctx context.Context) (any, error)

// Command is a single request to the editor
type Command struct {
	ID       string
	Name     string
	Priority Priority
	Kind     Kind
	Fn       Func
}

// Result is delivered once per submitted command
type Result struct {
	Value    any
	Err      error
	Attempts int
	Waited   time.Duration
}

// Config contains pacing and retry settings
type Config struct {
	MinDelay     time.Duration
	StatDelay    time.Duration
	Burst        int
	MaxRetries   uint
	RetryInitial time.Duration
	RetryMax     time.Duration
	Capacity     int
	// Retryable reports whether a failed attempt may be repeated. Nil means never.
	Retryable func(error) bool
}

// Stats is a snapshot of queue activity
type Stats struct {
	Pending     int    `json:"pending"`
	Executed    uint64 `json:"executed"`
	Failed      uint64 `json:"failed"`
	Retried     uint64 `json:"retried"`
	Dropped     uint64 `json:"dropped"`
	Running     bool   `json:"running"`
	LastCommand string `json:"last_command,omitempty"`
}
