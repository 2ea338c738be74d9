package xrinput

import "time"

// PointerContext carries pointer event data.
type PointerContext struct {
	Object    *Object
	EntityID  uint32
	UserData  any
	Pointer   Pointer
	PointerID int // pointer ID + logical button index
	Button    Button
	Position  Vec2 // screen position
	Hit       RaycastHit
}

// ClickContext carries click event data.
type ClickContext struct {
	Object     *Object
	EntityID   uint32
	UserData   any
	Pointer    Pointer
	PointerID  int
	Button     Button
	Position   Vec2
	ClickCount int
}

// DragContext carries drag event data.
type DragContext struct {
	Object        *Object
	EntityID      uint32
	UserData      any
	Pointer       Pointer
	PointerID     int
	Button        Button
	Position      Vec2
	PressPosition Vec2
	Delta         Vec2
	Hit           RaycastHit
}

// ButtonContext carries a raw button edge. Button is the physical button.
type ButtonContext struct {
	Pointer   Pointer
	PointerID int
	Button    Button
}

// buttonEventData is the per-button event stream state. The three streams of
// a pointer share position and raycast, and each tracks its own press, click
// and drag progress.
type buttonEventData struct {
	button Button

	position      Vec2
	delta         Vec2
	pressPosition Vec2

	currentRaycast RaycastHit
	pressRaycast   RaycastHit

	pointerPress    *Object
	rawPointerPress *Object
	lastPress       *Object
	pointerDrag     *Object

	pressing         bool
	dragging         bool
	eligibleForClick bool
	clickCount       int
	clickTime        time.Time
}

// moving reports whether the stream's position changed this frame.
func (d *buttonEventData) moving() bool {
	return d.delta.X != 0 || d.delta.Y != 0
}

// copyShared copies the fields that every stream of a pointer shares.
func (d *buttonEventData) copyShared(from *buttonEventData) {
	d.position = from.position
	d.delta = from.delta
	d.currentRaycast = from.currentRaycast
}
