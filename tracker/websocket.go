package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// ConnState is the state of a duplex connection.
type ConnState int32

const (
	StateConnecting ConnState = iota
	StateOpen
	StateClosing
	StateClosed
)

var connStateNames = [...]string{"connecting", "open", "closing", "closed"}

func (s ConnState) String() string {
	if int(s) < len(connStateNames) {
		return connStateNames[s]
	}
	return fmt.Sprintf("ConnState(%d)", int32(s))
}

const (
	wsWriteWait        = 5 * time.Second
	defaultSendQueue   = 64
	wsHandshakeTimeout = 10 * time.Second
	wsDrainWait        = time.Second
	wsDrainPoll        = 5 * time.Millisecond
)

type outbound struct {
	kind int
	data []byte
}

// WebSocket is the duplex transport. Writes go through a bounded queue
// drained by a writer goroutine; a full queue drops the message.
type WebSocket struct {
	url   string
	hello Command
	queue int

	dialer websocket.Dialer
	state  atomic.Int32

	// pending counts queued messages not yet written.
	pending atomic.Int64

	mu   sync.Mutex
	conn *websocket.Conn
	send chan outbound
	done chan struct{}
}

// NewWebSocket returns a transport that dials url. hello, when non-nil, is
// queued as the first message once the connection opens.
func NewWebSocket(url string, queueSize int, hello Command) *WebSocket {
	if queueSize <= 0 {
		queueSize = defaultSendQueue
	}
	w := &WebSocket{
		url:    url,
		hello:  hello,
		queue:  queueSize,
		dialer: websocket.Dialer{HandshakeTimeout: wsHandshakeTimeout},
	}
	w.state.Store(int32(StateClosed))
	return w
}

// State returns the connection state.
func (w *WebSocket) State() ConnState {
	return ConnState(w.state.Load())
}

// Open dials the peer and starts the read and write loops.
func (w *WebSocket) Open(ctx context.Context, ev Events) error {
	w.state.Store(int32(StateConnecting))
	conn, _, err := w.dialer.DialContext(ctx, w.url, nil)
	if err != nil {
		w.state.Store(int32(StateClosed))
		return fmt.Errorf("tracker: websocket dial %s: %w", w.url, err)
	}

	send := make(chan outbound, w.queue)
	done := make(chan struct{})
	w.mu.Lock()
	w.conn, w.send, w.done = conn, send, done
	w.mu.Unlock()
	w.pending.Store(0)
	w.state.Store(int32(StateOpen))

	if w.hello != nil {
		b, err := EncodeCommand(w.hello)
		if err != nil {
			logger.Warnf("websocket hello: %v", err)
		} else {
			w.pending.Add(1)
			send <- outbound{kind: websocket.TextMessage, data: b}
		}
	}

	logger.Infof("websocket transport connected to %s", w.url)
	ev.open()
	go w.writeLoop(conn, send, done, ev)
	go w.readLoop(conn, done, ev)
	return nil
}

func (w *WebSocket) readLoop(conn *websocket.Conn, done chan struct{}, ev Events) {
	code := CloseNormal
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			var ce *websocket.CloseError
			switch {
			case errors.As(err, &ce):
				code = ce.Code
			case w.State() == StateClosing:
				code = CloseNormal
			default:
				ev.error(err)
				code = CloseAbnormal
			}
			break
		}
		ev.message(data)
	}
	w.state.Store(int32(StateClosed))
	w.finish(done)
	conn.Close()
	ev.close(code)
}

func (w *WebSocket) writeLoop(conn *websocket.Conn, send <-chan outbound, done <-chan struct{}, ev Events) {
	for {
		select {
		case <-done:
			return
		case msg := <-send:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			err := conn.WriteMessage(msg.kind, msg.data)
			w.pending.Add(-1)
			if err != nil {
				ev.error(fmt.Errorf("tracker: websocket write: %w", err))
				conn.Close()
				return
			}
		}
	}
}

func (w *WebSocket) finish(done chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-done:
	default:
		close(done)
	}
}

// SendText queues a text message.
func (w *WebSocket) SendText(s string) error {
	return w.enqueue(websocket.TextMessage, []byte(s))
}

// SendBinary queues a binary message.
func (w *WebSocket) SendBinary(b []byte) error {
	return w.enqueue(websocket.BinaryMessage, b)
}

// Send queues b as a text message; command envelopes are JSON text.
func (w *WebSocket) Send(b []byte) error {
	return w.enqueue(websocket.TextMessage, b)
}

func (w *WebSocket) enqueue(kind int, b []byte) error {
	if w.State() != StateOpen {
		return ErrTransportClosed
	}
	w.mu.Lock()
	send, done := w.send, w.done
	w.mu.Unlock()
	select {
	case <-done:
		return ErrTransportClosed
	default:
	}
	w.pending.Add(1)
	select {
	case send <- outbound{kind: kind, data: b}:
		return nil
	default:
		w.pending.Add(-1)
		return ErrQueueFull
	}
}

// Close waits up to a second for queued messages to be written, then sends
// a close frame and closes the connection. Messages still queued after that
// are lost.
func (w *WebSocket) Close() error {
	w.mu.Lock()
	conn, done := w.conn, w.done
	w.mu.Unlock()
	if conn == nil || w.State() == StateClosed {
		return nil
	}
	w.state.Store(int32(StateClosing))
	w.drain(done, wsDrainWait)
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteWait))
	w.finish(done)
	return conn.Close()
}

func (w *WebSocket) drain(done <-chan struct{}, wait time.Duration) {
	deadline := time.Now().Add(wait)
	for w.pending.Load() > 0 && time.Now().Before(deadline) {
		select {
		case <-done:
			return
		case <-time.After(wsDrainPoll):
		}
	}
}
