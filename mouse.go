package xrinput

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// MouseID is the default pointer ID of the desktop mouse.
const MouseID = 0

// MousePointer casts the desktop cursor through the event camera so the mouse
// produces the same events as a stylus.
type MousePointer struct {
	pointerCore
	cam *Camera

	// RayLength is the ray length when nothing is hit.
	RayLength float64
	// LayerMask selects the layers the ray can hit.
	LayerMask LayerMask
}

// NewMousePointer creates a mouse pointer with ID MouseID. cam may be nil and
// set later with SetCamera.
func NewMousePointer(cam *Camera) *MousePointer {
	m := &MousePointer{
		RayLength: 100,
		LayerMask: AllLayers,
	}
	m.pointerCore = newPointerCore(MouseID, KindMouse, nil)
	m.SetCamera(cam)
	return m
}

// SetCamera sets the event camera. A nil camera suspends the pointer.
func (m *MousePointer) SetCamera(cam *Camera) {
	m.cam = cam
	if cam == nil {
		m.camera = nil
		return
	}
	m.camera = cam
}

func (m *MousePointer) sample(time.Time) pointerSample {
	m.rayLength = m.RayLength
	m.layerMask = m.LayerMask
	x, y := ebiten.CursorPosition()
	return cursorSample(m.cam, float64(x), float64(y), [buttonCount]bool{
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
	})
}
