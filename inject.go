package xrinput

import "time"

// ScriptedID is the default pointer ID of a ScriptedPointer.
const ScriptedID = 2000

// scriptedEvent is one queued frame of synthetic input. Screen events are
// cast through the event camera, identical to mouse input; pose events feed
// a 6-DoF ray directly.
type scriptedEvent struct {
	screen  Vec2
	pose    Pose
	usePose bool
	buttons [buttonCount]bool
}

// ScriptedPointer replays queued synthetic input, one event per frame. When
// the queue is empty it holds its last state.
type ScriptedPointer struct {
	pointerCore
	queue []scriptedEvent
	held  scriptedEvent
	// RayLength is the ray length when nothing is hit.
	RayLength float64
}

// NewScriptedPointer creates a scripted pointer with the given ID.
func NewScriptedPointer(id int, cam EventCamera) *ScriptedPointer {
	return &ScriptedPointer{
		pointerCore: newPointerCore(id, KindScripted, cam),
		RayLength:   defaultRayLength,
	}
}

// SetCamera sets the event camera. A nil camera suspends the pointer.
func (p *ScriptedPointer) SetCamera(cam EventCamera) {
	p.camera = cam
}

// Pending returns the number of queued events.
func (p *ScriptedPointer) Pending() int {
	return len(p.queue)
}

func (p *ScriptedPointer) push(screen Vec2, b Button, pressed bool) {
	checkButton(b)
	var evt scriptedEvent
	evt.screen = screen
	evt.buttons[b] = pressed
	p.queue = append(p.queue, evt)
}

// InjectPress queues a left button press at the given screen coordinates.
func (p *ScriptedPointer) InjectPress(x, y float64) {
	p.push(Vec2{x, y}, ButtonLeft, true)
}

// InjectMove queues a move with the left button held. Use it between
// InjectPress and InjectRelease to drag.
func (p *ScriptedPointer) InjectMove(x, y float64) {
	p.push(Vec2{x, y}, ButtonLeft, true)
}

// InjectHover queues a move with no button held.
func (p *ScriptedPointer) InjectHover(x, y float64) {
	p.push(Vec2{x, y}, ButtonLeft, false)
}

// InjectRelease queues a left button release at the given screen coordinates.
func (p *ScriptedPointer) InjectRelease(x, y float64) {
	p.push(Vec2{x, y}, ButtonLeft, false)
}

// InjectButton queues a frame with button b pressed or released.
func (p *ScriptedPointer) InjectButton(b Button, x, y float64, pressed bool) {
	p.push(Vec2{x, y}, b, pressed)
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (p *ScriptedPointer) InjectClick(x, y float64) {
	p.InjectPress(x, y)
	p.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (p *ScriptedPointer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	p.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		p.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	p.InjectRelease(toX, toY)
}

// InjectPose queues a frame that casts from a world pose with the left
// button in the given state.
func (p *ScriptedPointer) InjectPose(pose Pose, pressed bool) {
	var evt scriptedEvent
	evt.pose = pose
	evt.usePose = true
	evt.buttons[ButtonLeft] = pressed
	p.queue = append(p.queue, evt)
}

func (p *ScriptedPointer) sample(time.Time) pointerSample {
	p.rayLength = p.RayLength
	if len(p.queue) > 0 {
		p.held = p.queue[0]
		copy(p.queue, p.queue[1:])
		p.queue = p.queue[:len(p.queue)-1]
	}
	evt := p.held
	if evt.usePose {
		return pointerSample{visible: true, pose: evt.pose, buttons: evt.buttons}
	}
	return screenSample(p.camera, evt.screen, evt.buttons)
}
