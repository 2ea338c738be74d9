package xrinput

import (
	"errors"
	"fmt"
)

// ErrPointerExists is returned when a pointer's ID range overlaps one
// already registered.
var ErrPointerExists = errors.New("xrinput: pointer id already registered")

// Registry holds the scene's pointers. Each pointer owns three consecutive
// IDs (one per button) and can be looked up by any of them.
type Registry struct {
	pointers []Pointer
	byID     map[int]Pointer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[int]Pointer)}
}

// Add registers p.
func (r *Registry) Add(p Pointer) error {
	id := p.ID()
	for i := 0; i < buttonCount; i++ {
		if _, ok := r.byID[id+i]; ok {
			return fmt.Errorf("add pointer %d: %w", id, ErrPointerExists)
		}
	}
	for i := 0; i < buttonCount; i++ {
		r.byID[id+i] = p
	}
	r.pointers = append(r.pointers, p)
	return nil
}

// Remove unregisters p. It is a no-op if p is not registered.
func (r *Registry) Remove(p Pointer) {
	for i, q := range r.pointers {
		if q == p {
			r.pointers = append(r.pointers[:i], r.pointers[i+1:]...)
			for b := 0; b < buttonCount; b++ {
				delete(r.byID, p.ID()+b)
			}
			return
		}
	}
}

// ByID returns the pointer owning id, or nil.
func (r *Registry) ByID(id int) Pointer {
	return r.byID[id]
}

// Pointers returns the registered pointers in registration order. The
// returned slice MUST NOT be mutated.
func (r *Registry) Pointers() []Pointer {
	return r.pointers
}

// Len returns the number of registered pointers.
func (r *Registry) Len() int {
	return len(r.pointers)
}

// Button reports whether button b of the pointer owning id is held.
func (r *Registry) Button(id int, b Button) bool {
	p := r.ByID(id)
	return p != nil && p.Button(b)
}

// ButtonDown reports whether button b of the pointer owning id went down this frame.
func (r *Registry) ButtonDown(id int, b Button) bool {
	p := r.ByID(id)
	return p != nil && p.ButtonDown(b)
}

// ButtonUp reports whether button b of the pointer owning id went up this frame.
func (r *Registry) ButtonUp(id int, b Button) bool {
	p := r.ByID(id)
	return p != nil && p.ButtonUp(b)
}

// Axis returns the axis value of the pointer owning id, or zero when the
// pointer has no axis.
func (r *Registry) Axis(id int) Vec2 {
	if a, ok := r.ByID(id).(interface{ Axis() Vec2 }); ok {
		return a.Axis()
	}
	return Vec2{}
}
