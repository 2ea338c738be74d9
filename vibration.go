package xrinput

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// VibrationMode selects when a VibrationEffect fires.
type VibrationMode uint8

const (
	VibrateOnHover VibrationMode = iota // while the ray is over the object
	VibrateOnPress                      // while a button is held on the object
)

// VibrationEffect vibrates the pointer interacting with an object. Pointers
// without a haptic motor are ignored.
type VibrationEffect struct {
	Mode VibrationMode
	// Strength is 0-100.
	Strength int

	active Vibrator
}

func (v *VibrationEffect) onEnter(p Pointer) {
	if v != nil && v.Mode == VibrateOnHover {
		v.start(p)
	}
}

func (v *VibrationEffect) onExit(Pointer) {
	if v != nil && v.Mode == VibrateOnHover {
		v.stop()
	}
}

func (v *VibrationEffect) onPress(p Pointer) {
	if v != nil && v.Mode == VibrateOnPress {
		v.start(p)
	}
}

func (v *VibrationEffect) onRelease(Pointer) {
	if v != nil && v.Mode == VibrateOnPress {
		v.stop()
	}
}

func (v *VibrationEffect) start(p Pointer) {
	vib, ok := p.(Vibrator)
	if !ok {
		return
	}
	if err := vib.StartVibration(v.Strength); err != nil {
		logger.Warnf("start vibration pointer=%d: %v", p.ID(), err)
		return
	}
	v.active = vib
}

func (v *VibrationEffect) stop() {
	if v.active == nil {
		return
	}
	if err := v.active.StopVibration(); err != nil {
		logger.Warnf("stop vibration: %v", err)
	}
	v.active = nil
}

// VibrationPulse ramps vibration strength over time. Call Update(dt) each
// frame; a new strength is sent only when its integer value changes, and the
// motor is stopped when the ramp finishes.
type VibrationPulse struct {
	target Vibrator
	tween  *gween.Tween
	last   int
	Done   bool
}

// NewVibrationPulse ramps from one strength to another over duration seconds.
// A nil fn uses ease.InOutSine.
func NewVibrationPulse(target Vibrator, from, to int, duration float32, fn ease.TweenFunc) *VibrationPulse {
	if fn == nil {
		fn = ease.InOutSine
	}
	return &VibrationPulse{
		target: target,
		tween:  gween.New(float32(from), float32(to), duration, fn),
		last:   -1,
	}
}

// Update advances the ramp by dt seconds.
func (p *VibrationPulse) Update(dt float32) {
	if p.Done {
		return
	}
	val, finished := p.tween.Update(dt)
	s := int(math.Round(float64(val)))
	if s != p.last {
		p.last = s
		if err := p.target.StartVibration(s); err != nil {
			logger.Warnf("vibration pulse: %v", err)
		}
	}
	if finished {
		p.Done = true
		if err := p.target.StopVibration(); err != nil {
			logger.Warnf("vibration pulse stop: %v", err)
		}
	}
}
