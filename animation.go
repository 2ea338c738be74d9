package xrinput

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates the position of an Object. Create one with
// TweenPosition and call Update(dt) each frame. If the target object is
// disposed, the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [3]*gween.Tween
	target *Object
	Done   bool
}

// Update advances the tweens by dt seconds and writes the position to the
// target. If the target has been disposed, Done is set and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target.IsDisposed() {
		g.Done = true
		return
	}

	var v [3]float64
	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		v[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.target.Pose.Position = Vec3{v[0], v[1], v[2]}
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that moves obj to the given world
// position over duration seconds.
func TweenPosition(obj *Object, to Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := obj.Pose.Position
	g := &TweenGroup{target: obj}
	g.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(from.Z), float32(to.Z), duration, fn)
	return g
}
