package bridge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotConnected is returned when no transport can reach the editor
	ErrNotConnected = errors.New("not connected to unreal editor")
	// ErrTimeout is returned when the editor does not answer within the request timeout
	ErrTimeout = errors.New("unreal editor request timed out")
	// ErrClosed is returned for calls made after Close
	ErrClosed = errors.New("bridge is closed")
	// ErrPythonDisabled is returned for raw Python when unreal.allowPython is false
	ErrPythonDisabled = errors.New("python execution is disabled")
	// ErrCommandBlocked is returned for console commands on the blocklist
	ErrCommandBlocked = errors.New("console command is blocked")
)

// RemoteError is a non-2xx answer from the Remote Control API
type RemoteError struct {
	StatusCode int
	Route      string
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote control %s returned %d", e.Route, e.StatusCode)
	}
	return fmt.Sprintf("remote control %s returned %d: %s", e.Route, e.StatusCode, e.Message)
}

// IsRetryable reports whether a failed request may succeed when repeated.
// Lost connections and gateway errors qualify; timeouts, cancellation and
// engine-side rejections do not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrTimeout) {
		return false
	}
	if errors.Is(err, ErrNotConnected) {
		return true
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		switch remote.StatusCode {
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
	}
	return false
}

// errorType maps an error onto a low-cardinality metrics label
func errorType(err error) string {
	var remote *RemoteError
	switch {
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrNotConnected):
		return "not_connected"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.As(err, &remote):
		return "remote"
	default:
		return "other"
	}
}
