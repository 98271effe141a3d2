package bridge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

type httpTransport struct {
	baseURL string
	client  *http.Client
}

func newHTTPTransport(baseURL string, connectTimeout time.Duration) *httpTransport {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.MaxIdleConnsPerHost = 4
	if connectTimeout > 0 {
		tr.DialContext = (&net.Dialer{Timeout: connectTimeout, KeepAlive: 30 * time.Second}).DialContext
	}
	return &httpTransport{
		baseURL: baseURL,
		client:  &http.Client{Transport: tr},
	}
}

func (t *httpTransport) Name() string { return transportHTTP }

func (t *httpTransport) Do(ctx context.Context, verb, route string, body []byte) (response, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, verb, t.baseURL+route, reqBody)
	if err != nil {
		return response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return response{}, ctx.Err()
		}
		return response{}, fmt.Errorf("%w: %v", ErrNotConnected, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return response{}, ctx.Err()
		}
		return response{}, fmt.Errorf("%w: failed to read response: %v", ErrNotConnected, err)
	}
	return response{Status: resp.StatusCode, Body: data}, nil
}
