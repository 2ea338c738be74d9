package xrinput

import (
	"errors"
	"math"
	"time"
)

// StylusID is the default pointer ID of the tracked stylus. Its buttons use
// StylusID, StylusID+1 and StylusID+2.
const StylusID = 1000

// ErrNilSource is returned when a pointer is constructed without an input source.
var ErrNilSource = errors.New("xrinput: nil pointer source")

// StylusSource supplies pose and buttons for a Stylus. Poses are in tracking
// space.
type StylusSource interface {
	Visible() bool
	Pose() Pose
	Button(b int) bool
	// Vibrate drives the haptic motor. ms < 0 vibrates until stopped and
	// ms == 0 stops; strength is 0-100.
	Vibrate(ms, strength int) error
}

// Vibrator is implemented by pointers with a haptic motor.
type Vibrator interface {
	VibrationOnce(seconds float64, strength int) error
	StartVibration(strength int) error
	StopVibration() error
}

// Stylus is a tracked 6-DoF pen casting a ray from its tip.
type Stylus struct {
	pointerCore
	source StylusSource

	// TrackingSpace places tracking-space poses in the world.
	TrackingSpace Pose
	// ViewScale scales tracking-space positions before placement.
	ViewScale float64
	// PrimaryKey is the physical button that drives the primary event stream.
	PrimaryKey Button
	// RayLength is the ray length when nothing is hit.
	RayLength float64
	// LayerMask selects the layers the ray can hit.
	LayerMask LayerMask
	// SmoothEndpoint low-pass filters the ray tip.
	SmoothEndpoint     bool
	EndpointSmoothTime float64

	tip, lastTip Vec3
}

// NewStylus creates a stylus pointer with ID StylusID reading from source.
// cam may be nil and set later with SetCamera.
func NewStylus(source StylusSource, cam EventCamera) (*Stylus, error) {
	return NewStylusWithID(StylusID, source, cam)
}

// NewStylusWithID is NewStylus with an explicit pointer ID.
func NewStylusWithID(id int, source StylusSource, cam EventCamera) (*Stylus, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	return &Stylus{
		pointerCore:        newPointerCore(id, KindStylus, cam),
		source:             source,
		TrackingSpace:      PoseIdentity,
		ViewScale:          1,
		PrimaryKey:         ButtonMiddle,
		RayLength:          defaultRayLength,
		LayerMask:          AllLayers,
		EndpointSmoothTime: defaultEndpointSmoothTime,
	}, nil
}

// SetCamera sets the event camera. A nil camera suspends the pointer.
func (s *Stylus) SetCamera(cam EventCamera) {
	s.camera = cam
}

// Source returns the stylus input source.
func (s *Stylus) Source() StylusSource {
	return s.source
}

// AnyButtonPressed reports whether any stylus button is held.
func (s *Stylus) AnyButtonPressed() bool {
	return s.cur[0] || s.cur[1] || s.cur[2]
}

func (s *Stylus) sample(time.Time) pointerSample {
	checkButton(s.PrimaryKey)
	s.primaryKey = s.PrimaryKey
	s.rayLength = s.RayLength
	s.layerMask = s.LayerMask
	s.smoothEndpoint = s.SmoothEndpoint
	s.endpointSmoothTime = s.EndpointSmoothTime

	var out pointerSample
	out.visible = s.source.Visible()
	for i := range out.buttons {
		out.buttons[i] = s.source.Button(i)
	}
	if !out.visible {
		return out
	}

	p := s.source.Pose()
	local := p.Position.Scale(s.ViewScale)
	out.pose = Pose{
		Position: s.TrackingSpace.TransformPoint(local),
		Rotation: s.TrackingSpace.Rotation.Mul(p.Rotation),
	}

	if s.AnyButtonPressed() {
		s.lastTip = s.tip
	}
	s.tip = local
	return out
}

// Axis returns the tip movement since the last frame a button was held,
// clamped and scaled to [-10, 10] on each axis.
func (s *Stylus) Axis() Vec2 {
	maxValue := s.RayLength / 10
	if maxValue <= 0 {
		return Vec2{}
	}
	delta := s.tip.Sub(s.lastTip)
	if l := delta.Len(); l > maxValue {
		delta = delta.Scale(maxValue / l)
	}
	delta = delta.Scale(10 / maxValue)
	return Vec2{delta.X, delta.Y}
}

// VibrationOnce vibrates for the given number of seconds.
func (s *Stylus) VibrationOnce(seconds float64, strength int) error {
	return s.source.Vibrate(int(math.Floor(seconds*1000)), strength)
}

// StartVibration vibrates until StopVibration is called.
func (s *Stylus) StartVibration(strength int) error {
	return s.source.Vibrate(-1, strength)
}

// StopVibration stops any vibration.
func (s *Stylus) StopVibration() error {
	return s.source.Vibrate(0, 0)
}
