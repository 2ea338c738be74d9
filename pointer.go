package xrinput

import (
	"fmt"
	"time"
)

const (
	defaultRayLength          = 0.5  // world units
	defaultEndpointSmoothTime = 0.02 // seconds
)

// Pointer is a ray-casting input source. The set of implementations is
// closed: Stylus, MousePointer and ScriptedPointer.
type Pointer interface {
	// ID is the first of the three consecutive IDs reserved for the
	// pointer's buttons.
	ID() int
	Kind() PointerKind
	// Visible reports whether the pointer has a pose this frame.
	Visible() bool

	Button(b Button) bool
	ButtonDown(b Button) bool
	ButtonUp(b Button) bool
	// StateOf returns the edge state of a logical event stream. Stream
	// ButtonLeft is the pointer's primary key.
	StateOf(b Button) FramePressState

	ScreenPosition() Vec2
	StartpointPose() Pose
	EndpointPose() Pose
	// Result is the hit resolved this frame.
	Result() RaycastHit

	GrabObject() *Object
	SetGrabObject(obj *Object)

	core() *pointerCore
	sample(now time.Time) pointerSample
}

// pointerSample is one frame of raw input from a pointer variant.
type pointerSample struct {
	visible bool
	pose    Pose
	buttons [buttonCount]bool
}

// pointerCore is the state shared by every pointer variant: button edges,
// the two-slot raycast window, the endpoint filter and the drag session.
type pointerCore struct {
	id         int
	kind       PointerKind
	camera     EventCamera
	primaryKey Button

	rayLength          float64
	layerMask          LayerMask
	smoothEndpoint     bool
	endpointSmoothTime float64

	visible     bool
	cur, last   [buttonCount]bool
	pressed     int // physical button pressed this frame, -1 if none
	released    int // physical button released this frame, -1 if none
	startpoint  Pose
	endpoint    Vec3
	velocity    Vec3
	primed      bool // endpoint holds a previous frame's value
	screen      Vec2
	result      RaycastHit
	resultCache RaycastHit
	candidates  []RaycastHit

	// Drag pre-resolution. holding turns true on the frames after the
	// primary key goes down, before the event stream decides about dragging.
	pressing bool
	holding  bool
	drag3D   bool

	entered, exited *Object

	grab    *Object
	session *DragSession

	data [buttonCount]buttonEventData
}

func newPointerCore(id int, kind PointerKind, cam EventCamera) pointerCore {
	c := pointerCore{
		id:                 id,
		kind:               kind,
		camera:             cam,
		rayLength:          defaultRayLength,
		layerMask:          AllLayers,
		endpointSmoothTime: defaultEndpointSmoothTime,
		pressed:            -1,
		released:           -1,
	}
	for i := range c.data {
		c.data[i].button = Button(i)
	}
	return c
}

func checkButton(b Button) {
	if b >= buttonCount {
		panic(fmt.Sprintf("xrinput: button index %d out of range [0,%d)", b, buttonCount))
	}
}

func (c *pointerCore) ID() int {
	return c.id
}

func (c *pointerCore) Kind() PointerKind {
	return c.kind
}

func (c *pointerCore) Visible() bool {
	return c.visible
}

func (c *pointerCore) ScreenPosition() Vec2 {
	return c.screen
}

func (c *pointerCore) Result() RaycastHit {
	return c.result
}

func (c *pointerCore) GrabObject() *Object {
	return c.grab
}

func (c *pointerCore) core() *pointerCore {
	return c
}

// Button reports whether physical button b is held. It panics if b is not
// one of the three pointer buttons.
func (c *pointerCore) Button(b Button) bool {
	checkButton(b)
	return c.cur[b]
}

// ButtonDown reports whether physical button b went down this frame.
func (c *pointerCore) ButtonDown(b Button) bool {
	checkButton(b)
	return c.cur[b] && !c.last[b]
}

// ButtonUp reports whether physical button b went up this frame.
func (c *pointerCore) ButtonUp(b Button) bool {
	checkButton(b)
	return !c.cur[b] && c.last[b]
}

// physical maps a logical stream to the physical button feeding it: the
// primary key and ButtonLeft trade places.
func (c *pointerCore) physical(b Button) Button {
	if c.primaryKey == ButtonLeft {
		return b
	}
	switch b {
	case ButtonLeft:
		return c.primaryKey
	case c.primaryKey:
		return ButtonLeft
	}
	return b
}

// StateOf returns the edge state of logical stream b.
func (c *pointerCore) StateOf(b Button) FramePressState {
	checkButton(b)
	p := c.physical(b)
	if c.last[p] == c.cur[p] {
		return NotChanged
	}
	if c.cur[p] {
		return Pressed
	}
	return Released
}

// StartpointPose is the ray origin pose.
func (c *pointerCore) StartpointPose() Pose {
	return c.startpoint
}

// EndpointPose is the ray tip: the endpoint position with the origin's rotation.
func (c *pointerCore) EndpointPose() Pose {
	return Pose{Position: c.endpoint, Rotation: c.startpoint.Rotation}
}

// SetGrabObject sets the object carried by the pointer. Passing nil releases
// it and ends any drag session.
func (c *pointerCore) SetGrabObject(obj *Object) {
	c.grab = obj
	if obj == nil || (c.session != nil && c.session.Object != obj) {
		c.session = nil
	}
}

// updateState rolls the button arrays and computes this frame's edges. When
// several buttons change in one frame the highest index wins.
func (c *pointerCore) updateState(s pointerSample) {
	c.visible = s.visible
	if s.visible {
		c.startpoint = s.pose
	}
	c.pressed, c.released = -1, -1
	for i := range c.cur {
		c.last[i] = c.cur[i]
		c.cur[i] = s.buttons[i]
		if c.cur[i] && !c.last[i] {
			c.pressed = i
		} else if c.last[i] && !c.cur[i] {
			c.released = i
		}
	}
}

// preProcessDrag settles the drag flags for the primary key before any event
// is dispatched, so the endpoint math this frame already knows whether the
// ray is locked to the press distance.
func (c *pointerCore) preProcessDrag(key Button, keyHeld bool) bool {
	if c.pressing && keyHeld {
		c.holding = true
	}
	if c.pressed == int(key) {
		c.pressing = true
		c.holding = false
		c.drag3D = c.result.Valid() && c.result.Module == ModulePhysical3D
	}
	if c.released == int(key) {
		c.pressing = false
		c.holding = false
	}
	return c.holding
}

// raycast resolves this frame's hit and updates the screen position and
// endpoint. scene supplies the targets.
func (c *pointerCore) raycast(s *Scene, dt float64) {
	c.resultCache = c.result
	c.candidates = c.candidates[:0]

	ray := Ray{Origin: c.startpoint.Position, Direction: c.startpoint.Forward()}
	if c.visible {
		c.candidates = PhysicsRaycaster{Mask: c.layerMask}.Raycast(s.objects, ray, c.rayLength, c.camera, c.candidates)
		c.candidates = UIRaycaster{Mask: c.layerMask}.Raycast(s.objects, ray, c.rayLength, c.camera, c.candidates)
		for i := range c.candidates {
			c.candidates[i].Index = i
		}
		c.result = Resolve(c.candidates)
	} else {
		c.result = RaycastHit{}
	}

	primary := &c.data[0]
	key := c.primaryKey
	locked := c.preProcessDrag(key, c.cur[key])

	pressDistance := c.rayLength
	if primary.pressRaycast.Target != nil {
		pressDistance = primary.pressRaycast.Distance
	}

	var pos Vec2
	switch {
	case locked || primary.dragging:
		pos = project(c.camera, ray.At(pressDistance))
	case c.result.Target != nil:
		pos = c.result.ScreenPosition
	default:
		pos = project(c.camera, ray.At(c.rayLength))
	}
	primary.delta = pos.Sub(primary.position)
	primary.position = pos
	primary.currentRaycast = c.result
	c.screen = pos

	c.updateEndpoint(ray, pressDistance, dt)
	c.processCollisions()
}

func (c *pointerCore) updateEndpoint(ray Ray, pressDistance, dt float64) {
	d := c.rayLength
	if c.result.Target != nil {
		d = c.result.Distance
	}
	carrying := c.data[0].dragging && c.grab != nil
	if (c.holding && c.drag3D) || carrying {
		d = pressDistance
	}
	target := ray.At(d)
	if c.smoothEndpoint && !carrying && c.primed {
		c.endpoint = SmoothDamp(c.endpoint, target, &c.velocity, c.endpointSmoothTime, dt)
		return
	}
	c.primed = true
	c.endpoint = target
	c.velocity = Vec3{}
}

// processCollisions computes the enter/exit targets from the two-slot hit
// window. They are delivered at the start of the next frame.
func (c *pointerCore) processCollisions() {
	cur := c.result.Target
	prev := c.resultCache.Target
	c.entered, c.exited = nil, nil
	if cur != nil && cur != prev {
		c.entered = cur
	}
	if prev != nil && prev != cur {
		c.exited = prev
	}
}

// applyDrag moves the grabbed object. A session whose object is gone is
// dropped along with the grab reference.
func (c *pointerCore) applyDrag() {
	if c.session == nil {
		return
	}
	if !c.session.Apply(c.EndpointPose()) {
		c.session = nil
		c.grab = nil
	}
}

// frameDelta converts the frame interval to seconds, treating the first
// frame as one 60 Hz tick.
func frameDelta(last, now time.Time) float64 {
	if last.IsZero() || !now.After(last) {
		return 1.0 / 60
	}
	return now.Sub(last).Seconds()
}
