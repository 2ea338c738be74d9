package tracker

import (
	"context"
	"errors"
)

var (
	// ErrTransportClosed is returned when sending on a closed transport.
	ErrTransportClosed = errors.New("tracker: transport closed")
	// ErrQueueFull is returned when the send queue has no room.
	ErrQueueFull = errors.New("tracker: send queue full")
	// ErrNoPeer is returned by a datagram transport that has not yet
	// received anything and so has nowhere to send.
	ErrNoPeer = errors.New("tracker: no peer address")
)

// Close codes passed to Events.OnClose.
const (
	CloseNormal   = 1000
	CloseAbnormal = 1006
)

// Events are the transport's delivery callbacks. They are called from the
// transport's own goroutines; nil callbacks are skipped.
type Events struct {
	OnOpen    func()
	OnMessage func(data []byte)
	OnError   func(err error)
	// OnClose is called exactly once when delivery stops, whether the
	// transport was closed locally or by the peer.
	OnClose func(code int)
}

func (e Events) open() {
	if e.OnOpen != nil {
		e.OnOpen()
	}
}

func (e Events) message(data []byte) {
	if e.OnMessage != nil {
		e.OnMessage(data)
	}
}

func (e Events) error(err error) {
	if e.OnError != nil {
		e.OnError(err)
	}
}

func (e Events) close(code int) {
	if e.OnClose != nil {
		e.OnClose(code)
	}
}

// Transport delivers raw frames from a tracking peripheral and carries
// commands back. Send never blocks on the network.
type Transport interface {
	Open(ctx context.Context, ev Events) error
	Send(b []byte) error
	Close() error
}
