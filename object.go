package xrinput

// objectIDCounter is a plain counter (no atomic; the frame path is single-threaded).
var objectIDCounter uint32

func nextObjectID() uint32 {
	objectIDCounter++
	return objectIDCounter
}

// Object is a raycast target in the scene. A single flat struct covers both
// 3D objects (Collider set) and world-space UI elements (Surface set); an
// object may carry both.
type Object struct {
	// Identity
	ID   uint32
	Name string

	// World pose. Colliders and surfaces are expressed in this frame.
	Pose Pose

	// Hit volumes
	Collider Collider
	Surface  *Surface

	// Visibility & interaction
	Visible      bool
	Interactable bool
	Layer        uint8

	// Draggable objects follow the pointer endpoint rigidly while the
	// primary button drags them.
	Draggable bool

	// Vibration drives stylus haptics on hover or press; nil disables it.
	Vibration *VibrationEffect

	// Metadata
	UserData any
	EntityID uint32

	// Per-object callbacks (nil by default; zero cost when unused)
	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnPointerEnter func(PointerContext)
	OnPointerExit  func(PointerContext)
	OnClick        func(ClickContext)
	OnDragStart    func(DragContext)
	OnDrag         func(DragContext)
	OnDragEnd      func(DragContext)
	OnDrop         func(DragContext)

	disposed bool
}

func objectDefaults(o *Object) {
	o.ID = nextObjectID()
	o.Pose = PoseIdentity
	o.Visible = true
	o.Interactable = true
}

// NewObject creates a 3D object with the given collider at pose.
func NewObject(name string, pose Pose, collider Collider) *Object {
	o := &Object{Name: name}
	objectDefaults(o)
	o.Pose = pose
	o.Collider = collider
	return o
}

// NewUIElement creates a world-space UI element lying in pose's local XY plane.
func NewUIElement(name string, pose Pose, surface Surface) *Object {
	o := &Object{Name: name}
	objectDefaults(o)
	o.Pose = pose
	o.Surface = &surface
	return o
}

// Dispose marks the object invalid. Pending hits, enter/exit notifications
// and drag sessions that reference it are dropped on the next frame.
func (o *Object) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	o.Collider = nil
	o.Surface = nil
	o.OnPointerDown = nil
	o.OnPointerUp = nil
	o.OnPointerEnter = nil
	o.OnPointerExit = nil
	o.OnClick = nil
	o.OnDragStart = nil
	o.OnDrag = nil
	o.OnDragEnd = nil
	o.OnDrop = nil
}

// IsDisposed reports whether the object has been disposed.
func (o *Object) IsDisposed() bool {
	return o.disposed
}

// hittable reports whether the object takes part in raycasting for mask.
func (o *Object) hittable(mask LayerMask) bool {
	return !o.disposed && o.Visible && o.Interactable && mask.Has(o.Layer)
}

// localRay converts a world ray into the object's local frame.
func (o *Object) localRay(r Ray) Ray {
	inv := o.Pose.Rotation.Inverse()
	return Ray{
		Origin:    inv.Rotate(r.Origin.Sub(o.Pose.Position)),
		Direction: inv.Rotate(r.Direction),
	}
}

// valid reports whether o is a live object reference.
func valid(o *Object) bool {
	return o != nil && !o.disposed
}
