package bridge

import "context"

const (
	transportHTTP = "http"
	transportWS   = "ws"
	transportAuto = "auto"
)

type response struct {
	Status int
	Body   []byte
}

// transport sends one Remote Control request and returns the raw answer
type transport interface {
	Name() string
	Do(ctx context.Context, verb, route string, body []byte) (response, error)
}
