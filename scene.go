package xrinput

import "time"

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	PointerID int
	Button    Button
	ScreenX   float64
	ScreenY   float64
	// Hit fields (zero when the event has no raycast target)
	WorldPosition Vec3
	Distance      float64
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd, EventDrop)
	StartX float64
	StartY float64
	DeltaX float64
	DeltaY float64
	// Click fields (valid for EventClick)
	ClickCount int
}

// Scene owns the raycast targets, the pointer registry and the input module.
type Scene struct {
	objects    []*Object
	pointers   *Registry
	input      *InputModule
	handlers   handlerRegistry
	store      EntityStore
	debug      bool
	testRunner *TestRunner
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	s := &Scene{pointers: NewRegistry()}
	s.input = newInputModule(s)
	return s
}

// Add adds objects to the scene. Disposed objects are ignored.
func (s *Scene) Add(objects ...*Object) {
	for _, o := range objects {
		if o == nil {
			continue
		}
		if o.disposed {
			if s.debug {
				debugCheckDisposed(o, "Add")
			}
			continue
		}
		s.objects = append(s.objects, o)
	}
}

// Remove removes an object from the scene without disposing it.
func (s *Scene) Remove(o *Object) {
	for i, q := range s.objects {
		if q == o {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return
		}
	}
}

// Objects returns the scene's objects. The returned slice MUST NOT be mutated.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// AddPointer registers a pointer with the scene.
func (s *Scene) AddPointer(p Pointer) error {
	return s.pointers.Add(p)
}

// RemovePointer unregisters a pointer and releases anything it was carrying.
func (s *Scene) RemovePointer(p Pointer) {
	p.SetGrabObject(nil)
	s.pointers.Remove(p)
}

// Pointers returns the scene's pointer registry.
func (s *Scene) Pointers() *Registry {
	return s.pointers
}

// Input returns the scene's input module.
func (s *Scene) Input() *InputModule {
	return s.input
}

// SetDragThreshold sets the movement in pixels a press must exceed to
// become a drag.
func (s *Scene) SetDragThreshold(pixels float64) {
	s.input.DragThreshold = pixels
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, use of disposed
// objects panics and per-frame input stats are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Update runs one frame: the test runner step, then pointer processing.
// now drives click timing and endpoint smoothing.
func (s *Scene) Update(now time.Time) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.pruneDisposed()

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	stats := s.input.process(now)
	if s.debug {
		stats.processTime = time.Since(t0)
		stats.objectCount = len(s.objects)
		s.debugLog(stats)
	}
}

// pruneDisposed drops disposed objects from the target list.
func (s *Scene) pruneDisposed() {
	n := 0
	for _, o := range s.objects {
		if !o.disposed {
			s.objects[n] = o
			n++
		}
	}
	for i := n; i < len(s.objects); i++ {
		s.objects[i] = nil
	}
	s.objects = s.objects[:n]
}
