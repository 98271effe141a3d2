package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type wsRequest struct {
	MessageName string       `json:"MessageName"`
	Parameters  wsParameters `json:"Parameters"`
}

type wsParameters struct {
	RequestID int64           `json:"RequestId"`
	URL       string          `json:"Url"`
	Verb      string          `json:"Verb"`
	Body      json.RawMessage `json:"Body,omitempty"`
}

type wsReply struct {
	RequestID    *int64          `json:"RequestId"`
	ResponseCode int             `json:"ResponseCode"`
	ResponseBody json.RawMessage `json:"ResponseBody"`
}

// wsTransport multiplexes Remote Control requests over one WebSocket,
// correlating replies by RequestId
type wsTransport struct {
	conn   *websocket.Conn
	logger *zap.Logger

	writeMu sync.Mutex
	nextID  atomic.Int64

	mu      sync.Mutex
	pending map[int64]chan wsReply
	err     error
	done    chan struct{}
}

func dialWebSocket(ctx context.Context, url string, timeout time.Duration, logger *zap.Logger) (*wsTransport, error) {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", ErrNotConnected, url, err)
	}

	t := &wsTransport{
		conn:    conn,
		logger:  logger,
		pending: make(map[int64]chan wsReply),
		done:    make(chan struct{}),
	}
	go t.readLoop()
	return t, nil
}

func (t *wsTransport) Name() string { return transportWS }

// Done is closed once the connection is lost
func (t *wsTransport) Done() <-chan struct{} { return t.done }

func (t *wsTransport) Do(ctx context.Context, verb, route string, body []byte) (response, error) {
	id := t.nextID.Add(1)
	ch := make(chan wsReply, 1)

	t.mu.Lock()
	if t.err != nil {
		err := t.err
		t.mu.Unlock()
		return response{}, fmt.Errorf("%w: %v", ErrNotConnected, err)
	}
	t.pending[id] = ch
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		delete(t.pending, id)
		t.mu.Unlock()
	}()

	msg := wsRequest{
		MessageName: "http",
		Parameters: wsParameters{
			RequestID: id,
			URL:       route,
			Verb:      verb,
			Body:      body,
		},
	}

	t.writeMu.Lock()
	if deadline, ok := ctx.Deadline(); ok {
		_ = t.conn.SetWriteDeadline(deadline)
	}
	err := t.conn.WriteJSON(msg)
	_ = t.conn.SetWriteDeadline(time.Time{})
	t.writeMu.Unlock()
	if err != nil {
		return response{}, fmt.Errorf("%w: write: %v", ErrNotConnected, err)
	}

	select {
	case reply := <-ch:
		return response{Status: reply.ResponseCode, Body: reply.ResponseBody}, nil
	case <-t.done:
		return response{}, fmt.Errorf("%w: connection lost", ErrNotConnected)
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

func (t *wsTransport) readLoop() {
	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			t.fail(err)
			return
		}

		var reply wsReply
		if err := json.Unmarshal(data, &reply); err != nil || reply.RequestID == nil {
			// preset change notifications and other unsolicited events
			t.logger.Debug("Ignoring websocket message", zap.Int("bytes", len(data)))
			continue
		}

		t.mu.Lock()
		ch, ok := t.pending[*reply.RequestID]
		delete(t.pending, *reply.RequestID)
		t.mu.Unlock()
		if !ok {
			t.logger.Debug("Reply for unknown request", zap.Int64("request_id", *reply.RequestID))
			continue
		}
		ch <- reply
	}
}

func (t *wsTransport) fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	t.err = err
	close(t.done)
}

// Close sends a close frame and tears the connection down
func (t *wsTransport) Close() error {
	t.writeMu.Lock()
	_ = t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	t.writeMu.Unlock()
	err := t.conn.Close()
	t.fail(ErrClosed)
	return err
}
