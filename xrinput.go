package xrinput

// Vec2 is a 2D vector used for screen positions and deltas. The screen origin
// is the bottom-left corner with Y increasing upward.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Len returns the length of v.
func (v Vec2) Len() float64 { return hypot(v.X, v.Y) }

// Rect is an axis-aligned rectangle in a surface's local plane.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown    EventType = iota // fires when a pointer button is pressed
	EventPointerUp                       // fires when a pointer button is released
	EventPointerEnter                    // fires when the ray starts hitting an object
	EventPointerExit                     // fires when the ray stops hitting an object
	EventClick                           // fires on press then release over the same object
	EventDragStart                       // fires when movement exceeds the drag threshold
	EventDrag                            // fires each moving frame while dragging
	EventDragEnd                         // fires when the button is released after dragging
	EventDrop                            // fires on the object under the ray when a drag ends
	EventButtonPressed                   // fires on a raw button down edge (no target)
	EventButtonReleased                  // fires on a raw button up edge (no target)
)

var eventTypeNames = [...]string{
	"PointerDown", "PointerUp", "PointerEnter", "PointerExit", "Click",
	"DragStart", "Drag", "DragEnd", "Drop", "ButtonPressed", "ButtonReleased",
}

func (e EventType) String() string {
	if int(e) < len(eventTypeNames) {
		return eventTypeNames[e]
	}
	return "Unknown"
}

// Button identifies one of the three pointer buttons.
type Button uint8

const (
	ButtonLeft   Button = iota // primary event stream
	ButtonRight                // secondary event stream
	ButtonMiddle               // tertiary event stream
)

// buttonCount is the number of buttons every pointer exposes.
const buttonCount = 3

// FramePressState is the edge state of a button for a single frame.
// Exactly one value applies per button per frame.
type FramePressState uint8

const (
	NotChanged FramePressState = iota
	Pressed
	Released
)

// PointerKind tags the closed set of pointer variants.
type PointerKind uint8

const (
	KindStylus   PointerKind = iota // tracked 6-DoF stylus
	KindMouse                       // desktop mouse cast through the event camera
	KindScripted                    // synthetic input fed from a queue
)

// LayerMask selects object layers for raycasting. Bit n enables layer n.
type LayerMask uint32

// AllLayers matches every layer.
const AllLayers LayerMask = 0xFFFFFFFF

// Has reports whether the mask contains the given layer.
func (m LayerMask) Has(layer uint8) bool {
	return layer < 32 && m&(1<<layer) != 0
}

// RaycastModule identifies which raycaster produced a hit.
type RaycastModule uint8

const (
	ModuleNone       RaycastModule = iota // zero hit
	ModulePhysical3D                      // collider geometry
	ModuleUI                              // world-space UI surfaces
)
