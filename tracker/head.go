package tracker

import (
	"sync/atomic"
	"time"

	"github.com/phanxgames/xrinput"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// DefaultWaitForEye is how long a lost head keeps its last pose.
	DefaultWaitForEye = 3 * time.Second
	// DefaultTransitionDuration is how long the return to the rest pose takes.
	DefaultTransitionDuration = time.Second
	// DefaultViewDistance is the rest distance of the head from the screen.
	DefaultViewDistance = 0.5

	eyeOffset = 0.03
)

// EyePose is the tracked head with per-eye positions.
type EyePose struct {
	Visible bool
	Head    xrinput.Vec3
	Look    xrinput.Quat
	Left    xrinput.Vec3
	Right   xrinput.Vec3
}

// EyeRig is what a stereo camera rig should place its eyes at. Left and
// Right are relative to Head.
type EyeRig struct {
	Head, Left, Right xrinput.Vec3
}

// HeadTracker follows the eye tracker in published samples. When the head
// is lost it holds the last pose for WaitForEye, then eases back to the rest
// pose over TransitionDuration.
type HeadTracker struct {
	client *Client
	sub    *Subscription
	eye    atomic.Pointer[EyePose]

	WaitForEye time.Duration
	// TransitionDuration < 0 leaves the rig where it was when the head was
	// lost.
	TransitionDuration time.Duration
	// Mono collapses both eyes onto the head.
	Mono bool
	// OnStatusChanged is called from Update when the head appears or is lost.
	OnStatusChanged func(TrackingStatus)

	rest   xrinput.Vec3
	rig    EyeRig
	status TrackingStatus
	timer  float64
	tween  *gween.Tween
}

// NewHeadTracker subscribes a head tracker to c.
func NewHeadTracker(c *Client) *HeadTracker {
	rest := xrinput.Forward.Scale(-DefaultViewDistance)
	h := &HeadTracker{
		client:             c,
		WaitForEye:         DefaultWaitForEye,
		TransitionDuration: DefaultTransitionDuration,
		rest:               rest,
		rig:                EyeRig{Head: rest},
	}
	h.eye.Store(&EyePose{Head: rest, Look: xrinput.QuatIdentity})
	h.sub = c.Subscribe(h.handle)
	return h
}

func (h *HeadTracker) handle(s PoseSample, factor float64) {
	if !s.EyeVisible {
		lost := *h.eye.Load()
		lost.Visible = false
		h.eye.Store(&lost)
		return
	}
	look := s.Eye.Rotation.Normalize()
	h.eye.Store(&EyePose{
		Visible: true,
		Head:    s.Eye.Position,
		Look:    look,
		Left:    look.Rotate(xrinput.Vec3{X: -eyeOffset * factor}),
		Right:   look.Rotate(xrinput.Vec3{X: eyeOffset * factor}),
	})
}

// Close stops following the client.
func (h *HeadTracker) Close() {
	h.sub.Unsubscribe()
}

// Eye returns the last tracked eye pose.
func (h *HeadTracker) Eye() EyePose {
	return *h.eye.Load()
}

// Rig returns the eye rig as of the last Update.
func (h *HeadTracker) Rig() EyeRig {
	return h.rig
}

// Status returns the status as of the last Update.
func (h *HeadTracker) Status() TrackingStatus {
	return h.status
}

// Update advances the lost-head timer by dt seconds and refreshes the rig.
// Call once per frame.
func (h *HeadTracker) Update(dt float64) {
	e := h.Eye()
	if e.Visible {
		h.rig = EyeRig{Head: e.Head, Left: e.Left, Right: e.Right}
		if h.Mono {
			h.rig.Left, h.rig.Right = xrinput.Vec3{}, xrinput.Vec3{}
		}
		h.timer = h.WaitForEye.Seconds()
		h.tween = nil
		h.setStatus(Detected)
		return
	}

	h.timer -= dt
	if h.timer > 0 {
		return
	}
	if h.TransitionDuration >= 0 {
		f := h.transition(dt)
		h.rig = EyeRig{
			Head:  lerpVec(e.Head, h.rest, f),
			Left:  lerpVec(e.Left, xrinput.Vec3{}, f),
			Right: lerpVec(e.Right, xrinput.Vec3{}, f),
		}
	}
	h.setStatus(Missing)
}

// transition returns the eased return progress in [0, 1].
func (h *HeadTracker) transition(dt float64) float64 {
	if h.TransitionDuration == 0 {
		return 1
	}
	if h.tween == nil {
		h.tween = gween.New(0, 1, float32(h.TransitionDuration.Seconds()), ease.InOutSine)
		// Start from however far the timer overshot the wait.
		dt = -h.timer
	}
	v, _ := h.tween.Update(float32(dt))
	return float64(v)
}

func (h *HeadTracker) setStatus(s TrackingStatus) {
	if s == h.status {
		return
	}
	h.status = s
	if h.OnStatusChanged != nil {
		h.OnStatusChanged(s)
	}
}

// StartTracking asks the device to track and display in stereo.
func (h *HeadTracker) StartTracking() error {
	return h.client.SendCommand(XRModeCommand{Tracking: TriOn, DisplayMode: DisplayStereo})
}

// StopTracking asks the device to stop tracking and display in mono.
func (h *HeadTracker) StopTracking() error {
	return h.client.SendCommand(XRModeCommand{Tracking: TriOff, DisplayMode: DisplayMono})
}

func lerpVec(a, b xrinput.Vec3, t float64) xrinput.Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}
