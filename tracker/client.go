package tracker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"github.com/kataras/golog"
)

var logger = golog.Child("[tracker]")

// ErrNotStarted is returned when sending before Start or after Stop.
var ErrNotStarted = errors.New("tracker: client not started")

// ClientState is the client's lifecycle state.
type ClientState int32

const (
	Idle ClientState = iota
	Active
)

func (s ClientState) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Holder receives in-process notifications that bypass the network.
type Holder interface {
	// Resume is called when Start finds the client already active.
	Resume()
	// PenShake receives a copy of every PenShakeCommand sent.
	PenShake(cmd PenShakeCommand)
}

// Handler receives a normalized sample and the current data factor, the last
// scale derived from a versioned sample.
type Handler func(sample PoseSample, factor float64)

type subscriber struct {
	id uint64
	fn Handler
}

// Subscription is returned by Subscribe.
type Subscription struct {
	c  *Client
	id uint64
}

// Unsubscribe stops delivery. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.c == nil {
		return
	}
	s.c.unsubscribe(s.id)
	s.c = nil
}

// snapshot pairs a sample with the factor it was scaled by so readers never
// see one without the other.
type snapshot struct {
	sample PoseSample
	factor float64
	seq    uint64
}

// Option configures a Client.
type Option func(*Client)

// WithHolder sets the in-process notification target.
func WithHolder(h Holder) Option {
	return func(c *Client) { c.holder = h }
}

// WithMetrics records client activity in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTransport replaces the transport built from Config.Mode.
func WithTransport(fn func(Config) Transport) Option {
	return func(c *Client) { c.newTransport = fn }
}

// WithCommandHandler receives commands the peer sends back.
func WithCommandHandler(fn func(Command)) Option {
	return func(c *Client) { c.onCommand = fn }
}

// Client owns one transport, decodes and normalizes pose reports, fans them
// out to subscribers and sends commands back to the device.
type Client struct {
	cfg          Config
	localWidth   float64
	holder       Holder
	metrics      *Metrics
	newTransport func(Config) Transport
	onCommand    func(Command)

	mu        sync.Mutex
	transport Transport
	gen       uint64
	done      chan struct{}
	state     atomic.Int32

	storeMu sync.Mutex
	latest  atomic.Pointer[snapshot]
	seq     atomic.Uint64
	wake    chan struct{}

	subMu   sync.Mutex
	subs    atomic.Pointer[[]subscriber]
	nextSub uint64
}

// NewClient returns an idle client. Call Start to open the transport.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg:          cfg,
		localWidth:   cfg.LocalScreenWidth(),
		newTransport: defaultTransport,
		wake:         make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func defaultTransport(cfg Config) Transport {
	if cfg.Mode == ModeWebSocket {
		hello := ConnectionCommand{
			SDKMajor: SDKMajor,
			SDKMinor: SDKMinor,
			Platform: platformID(),
			AppID:    os.Getpid() & 0xFFFF,
			AppName:  cfg.AppName,
		}
		return NewWebSocket(cfg.URL(), cfg.SendQueue, hello)
	}
	return NewUDP(cfg.Addr())
}

// Config returns the client's configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// State returns Idle or Active.
func (c *Client) State() ClientState {
	return ClientState(c.state.Load())
}

// Start opens a transport. If one is already open it notifies the holder
// instead.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.transport != nil {
		if c.holder != nil {
			c.holder.Resume()
		}
		return nil
	}

	t := c.newTransport(c.cfg)
	c.gen++
	gen := c.gen
	ev := Events{
		OnOpen:    func() { logger.Debugf("transport open (%s)", c.cfg.Mode) },
		OnMessage: c.onFrame,
		OnError:   func(err error) { logger.Warnf("transport error: %v", err) },
		OnClose:   func(code int) { c.transportClosed(gen, code) },
	}
	if err := t.Open(ctx, ev); err != nil {
		return fmt.Errorf("tracker: start: %w", err)
	}

	c.transport = t
	c.done = make(chan struct{})
	c.state.Store(int32(Active))
	c.metrics.setActive(true)
	go c.dispatch(c.done)
	return nil
}

// Stop closes the transport. Stopping an idle client is a no-op. The client
// is idle as soon as Stop is called; the transport is closed after the lock
// is released so senders never wait on it.
func (c *Client) Stop() error {
	c.mu.Lock()
	t := c.transport
	if t == nil {
		c.mu.Unlock()
		return nil
	}
	c.release()
	c.mu.Unlock()
	return t.Close()
}

func (c *Client) release() {
	close(c.done)
	c.done = nil
	c.transport = nil
	c.state.Store(int32(Idle))
	c.metrics.setActive(false)
}

func (c *Client) transportClosed(gen uint64, code int) {
	c.mu.Lock()
	t := c.transport
	if t == nil || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.release()
	c.mu.Unlock()
	logger.Warnf("transport closed with code %d, client idle", code)
	_ = t.Close()
}

// LocalAddr returns the datagram transport's bound address, or nil.
func (c *Client) LocalAddr() net.Addr {
	c.mu.Lock()
	t := c.transport
	c.mu.Unlock()
	if u, ok := t.(*UDP); ok {
		return u.LocalAddr()
	}
	return nil
}

func (c *Client) onFrame(b []byte) {
	if len(b) > 0 && b[0] == '{' {
		c.handleCommand(b)
		return
	}
	s, err := DecodeFrame(b)
	if err != nil {
		c.metrics.dropped(dropSize)
		logger.Debugf("dropped frame: %v", err)
		return
	}
	c.metrics.received()
	c.store(s)
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Client) handleCommand(b []byte) {
	cmd, err := DecodeCommand(b)
	if err != nil {
		c.metrics.dropped(dropCommand)
		logger.Debugf("dropped command: %v", err)
		return
	}
	if c.onCommand != nil {
		c.onCommand(cmd)
	}
}

// normalize rescales positions when the sender reports its screen width.
// Otherwise the previous factor stays in effect.
func (c *Client) normalize(s PoseSample, factor float64) (PoseSample, float64) {
	if s.DataVersion > 0 && s.ScreenWidth > 0 {
		factor = c.localWidth / float64(s.ScreenWidth)
		s.Eye.Position = s.Eye.Position.Scale(factor)
		s.Pen.Position = s.Pen.Position.Scale(factor)
	}
	return s, factor
}

func (c *Client) store(s PoseSample) *snapshot {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()
	factor := 1.0
	if prev := c.latest.Load(); prev != nil {
		factor = prev.factor
	}
	s, factor = c.normalize(s, factor)
	snap := &snapshot{sample: s, factor: factor, seq: c.seq.Add(1)}
	c.latest.Store(snap)
	c.metrics.setFactor(factor)
	return snap
}

func (c *Client) dispatch(done <-chan struct{}) {
	var last uint64
	for {
		select {
		case <-done:
			return
		case <-c.wake:
			snap := c.latest.Load()
			if snap == nil || snap.seq == last {
				continue
			}
			last = snap.seq
			c.publish(snap)
		}
	}
}

// Trigger publishes a sample produced outside the transport, such as a
// native bridge, through the same normalization. Subscribers run on the
// caller's goroutine.
func (c *Client) Trigger(s PoseSample) {
	c.publish(c.store(s))
}

func (c *Client) publish(snap *snapshot) {
	subs := c.subs.Load()
	if subs == nil {
		return
	}
	for _, sub := range *subs {
		c.deliver(sub, snap)
	}
}

func (c *Client) deliver(sub subscriber, snap *snapshot) {
	defer func() {
		if r := recover(); r != nil {
			c.metrics.subscriberPanic()
			logger.Errorf("subscriber %d panicked on frame %d: %v", sub.id, snap.sample.FrameID, r)
		}
	}()
	sub.fn(snap.sample, snap.factor)
}

// Latest returns the most recent normalized sample.
func (c *Client) Latest() (PoseSample, bool) {
	snap := c.latest.Load()
	if snap == nil {
		return PoseSample{}, false
	}
	return snap.sample, true
}

// DataFactor returns the current data factor, the last scale derived from a
// versioned sample. It is 1 before any versioned sample arrives.
func (c *Client) DataFactor() float64 {
	snap := c.latest.Load()
	if snap == nil {
		return 1
	}
	return snap.factor
}

// Subscribe registers fn. Handlers run in registration order; a panic in
// one is recovered and logged and does not stop the others.
func (c *Client) Subscribe(fn Handler) *Subscription {
	if fn == nil {
		panic("tracker: Subscribe with nil handler")
	}
	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.nextSub++
	var next []subscriber
	if cur := c.subs.Load(); cur != nil {
		next = append(next, *cur...)
	}
	next = append(next, subscriber{id: c.nextSub, fn: fn})
	c.subs.Store(&next)
	return &Subscription{c: c, id: c.nextSub}
}

func (c *Client) unsubscribe(id uint64) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	cur := c.subs.Load()
	if cur == nil {
		return
	}
	next := make([]subscriber, 0, len(*cur))
	for _, s := range *cur {
		if s.id != id {
			next = append(next, s)
		}
	}
	c.subs.Store(&next)
}

// SendCommand encodes cmd and hands it to the transport without waiting for
// delivery. A PenShakeCommand is also given to the holder.
func (c *Client) SendCommand(cmd Command) error {
	b, err := EncodeCommand(cmd)
	if err != nil {
		return err
	}
	if ps, ok := cmd.(PenShakeCommand); ok && c.holder != nil {
		c.holder.PenShake(ps)
	}

	c.mu.Lock()
	t := c.transport
	c.mu.Unlock()
	if t == nil {
		return ErrNotStarted
	}
	if err := t.Send(b); err != nil {
		c.metrics.sendFailed(cmd.TypeName())
		return fmt.Errorf("tracker: send %s: %w", cmd.TypeName(), err)
	}
	c.metrics.sent(cmd.TypeName())
	return nil
}
