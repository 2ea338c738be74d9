package tracker

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/phanxgames/xrinput"
)

// TrackingStatus reports whether a tracked device is currently seen.
type TrackingStatus int

const (
	Missing TrackingStatus = iota
	Detected
)

func (s TrackingStatus) String() string {
	if s == Detected {
		return "detected"
	}
	return "missing"
}

type penState struct {
	visible bool
	pose    xrinput.Pose
	buttons uint8
}

var _ xrinput.StylusSource = (*PenTracker)(nil)

// PenTracker follows the pen in published samples. It is a stylus source
// for xrinput.NewStylus.
type PenTracker struct {
	client *Client
	sub    *Subscription
	state  atomic.Pointer[penState]

	status TrackingStatus
	// OnStatusChanged is called from Update when the pen appears or is lost.
	OnStatusChanged func(TrackingStatus)
}

// NewPenTracker subscribes a pen tracker to c.
func NewPenTracker(c *Client) *PenTracker {
	p := &PenTracker{client: c}
	p.state.Store(&penState{pose: xrinput.PoseIdentity})
	p.sub = c.Subscribe(p.handle)
	return p
}

func (p *PenTracker) handle(s PoseSample, _ float64) {
	p.state.Store(&penState{
		visible: s.PenVisible,
		pose:    s.Pen,
		buttons: s.PenButtons,
	})
}

// Close stops following the client.
func (p *PenTracker) Close() {
	p.sub.Unsubscribe()
}

// Visible reports whether the pen is in the tracked volume.
func (p *PenTracker) Visible() bool {
	return p.state.Load().visible
}

// Pose returns the last tracking-space pen pose.
func (p *PenTracker) Pose() xrinput.Pose {
	return p.state.Load().pose
}

// Buttons returns the raw button bitmask.
func (p *PenTracker) Buttons() uint8 {
	return p.state.Load().buttons
}

// Button reports whether button b is held.
func (p *PenTracker) Button(b int) bool {
	return p.state.Load().buttons&(1<<uint(b)) != 0
}

// Vibrate sends a PenShakeCommand. ms < 0 runs until stopped and strength 0
// stops.
func (p *PenTracker) Vibrate(ms, strength int) error {
	return p.client.SendCommand(PenShakeCommand{Time: ms, Strength: strength})
}

// Status returns the status as of the last Update.
func (p *PenTracker) Status() TrackingStatus {
	return p.status
}

// Update refreshes the tracking status. Call once per frame.
func (p *PenTracker) Update() {
	s := Missing
	if p.Visible() {
		s = Detected
	}
	if s != p.status {
		p.status = s
		if p.OnStatusChanged != nil {
			p.OnStatusChanged(s)
		}
	}
}

// String returns a multi-line report of buttons and pose.
func (p *PenTracker) String() string {
	st := p.state.Load()
	var sb strings.Builder
	sb.WriteString("PenTracker\n")
	sb.WriteString("[buttons]\n")
	for i, name := range [...]string{"left", "right", "middle"} {
		fmt.Fprintf(&sb, "  %s: %v\n", name, st.buttons&(1<<uint(i)) != 0)
	}
	sb.WriteString("[pen]\n")
	pos := st.pose.Position
	fmt.Fprintf(&sb, "  position: (%.3f, %.3f, %.3f)\n", pos.X, pos.Y, pos.Z)
	r := st.pose.Rotation
	fmt.Fprintf(&sb, "  rotation: (%.3f, %.3f, %.3f, %.3f)\n", r.X, r.Y, r.Z, r.W)
	fmt.Fprintf(&sb, "  visible: %v\n", st.visible)
	return sb.String()
}
