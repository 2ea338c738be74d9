package tracker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
)

// DefaultPort is the local port the datagram transport binds.
const DefaultPort = 9898

const maxDatagram = 64 * 1024

// UDP is the datagram transport. It binds a local address with address
// reuse and replies to whichever peer sent the last datagram.
type UDP struct {
	addr string

	mu     sync.Mutex
	conn   net.PacketConn
	peer   net.Addr
	closed bool
}

// NewUDP returns a datagram transport that will bind addr.
func NewUDP(addr string) *UDP {
	return &UDP{addr: addr}
}

// Open binds the socket and starts the receive loop.
func (u *UDP) Open(ctx context.Context, ev Events) error {
	lc := net.ListenConfig{Control: reuseAddrControl}
	conn, err := lc.ListenPacket(ctx, "udp", u.addr)
	if err != nil {
		return fmt.Errorf("tracker: udp listen %s: %w", u.addr, err)
	}
	u.mu.Lock()
	u.conn = conn
	u.peer = nil
	u.closed = false
	u.mu.Unlock()

	logger.Infof("udp transport listening on %s", conn.LocalAddr())
	ev.open()
	go u.readLoop(conn, ev)
	return nil
}

func (u *UDP) readLoop(conn net.PacketConn, ev Events) {
	buf := make([]byte, maxDatagram)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			code := CloseNormal
			if !errors.Is(err, net.ErrClosed) {
				ev.error(err)
				code = CloseAbnormal
			}
			ev.close(code)
			return
		}
		u.mu.Lock()
		u.peer = addr
		u.mu.Unlock()

		frame := make([]byte, n)
		copy(frame, buf[:n])
		ev.message(frame)
	}
}

// Send writes b to the last peer. Nothing is sent before a peer is known.
func (u *UDP) Send(b []byte) error {
	u.mu.Lock()
	conn, peer, closed := u.conn, u.peer, u.closed
	u.mu.Unlock()
	if conn == nil || closed {
		return ErrTransportClosed
	}
	if peer == nil {
		return ErrNoPeer
	}
	if _, err := conn.WriteTo(b, peer); err != nil {
		return fmt.Errorf("tracker: udp send to %s: %w", peer, err)
	}
	return nil
}

// Close closes the socket, which ends the receive loop.
func (u *UDP) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.conn == nil || u.closed {
		return nil
	}
	u.closed = true
	return u.conn.Close()
}

// LocalAddr returns the bound address, or nil before Open.
func (u *UDP) LocalAddr() net.Addr {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.conn == nil {
		return nil
	}
	return u.conn.LocalAddr()
}
