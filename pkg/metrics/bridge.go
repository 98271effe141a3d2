package metrics

import (
	"time"
)

// RecordBridgeRequest records a Remote Control request
func RecordBridgeRequest(transport, route string, duration time.Duration, success bool) {
	m := Get()
	if m == nil {
		return
	}

	status := "failure"
	if success {
		status = "success"
	}

	m.BridgeRequestsTotal.WithLabelValues(transport, route, status).Inc()
	m.BridgeRequestDuration.WithLabelValues(transport, route).Observe(duration.Seconds())
}

// RecordBridgeError records a Remote Control request error
func RecordBridgeError(transport, errorType string) {
	m := Get()
	if m != nil {
		m.BridgeErrorsTotal.WithLabelValues(transport, errorType).Inc()
	}
}

// SetBridgeConnected records the connection state of a transport
func SetBridgeConnected(transport string, connected bool) {
	m := Get()
	if m == nil {
		return
	}
	value := 0.0
	if connected {
		value = 1.0
	}
	m.BridgeConnected.WithLabelValues(transport).Set(value)
}

// RecordBridgeReconnect records a reconnect attempt
func RecordBridgeReconnect() {
	m := Get()
	if m != nil {
		m.BridgeReconnectsTotal.Inc()
	}
}
