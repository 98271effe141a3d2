package metrics

// RecordSessionStart records a newly registered MCP session
func RecordSessionStart() {
	m := Get()
	if m != nil {
		m.SessionsTotal.Inc()
		m.ActiveSessions.Inc()
	}
}

// RecordSessionEnd records an unregistered MCP session
func RecordSessionEnd() {
	m := Get()
	if m != nil {
		m.ActiveSessions.Dec()
	}
}
