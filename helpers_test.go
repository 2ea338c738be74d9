package xrinput

import (
	"math"
	"testing"
	"time"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func vecApprox(a, b Vec3, eps float64) bool {
	return approxEqual(a.X, b.X, eps) && approxEqual(a.Y, b.Y, eps) && approxEqual(a.Z, b.Z, eps)
}

// quatApprox compares rotations, treating q and -q as equal.
func quatApprox(a, b Quat, eps float64) bool {
	d := a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
	return approxEqual(math.Abs(d), 1, eps)
}

// testCamera is orthographic at the origin looking along +Z with 1000 px per
// world unit and the screen center at (500, 500).
func testCamera() *Camera {
	return NewOrthographicCamera(PoseIdentity, Rect{Width: 1000, Height: 1000}, 0.5)
}

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return testEpoch.Add(time.Duration(ms) * time.Millisecond)
}

// newTestScene returns a scene with one scripted pointer using testCamera.
func newTestScene(t *testing.T) (*Scene, *ScriptedPointer) {
	t.Helper()
	s := NewScene()
	p := NewScriptedPointer(ScriptedID, testCamera())
	if err := s.AddPointer(p); err != nil {
		t.Fatalf("AddPointer: %v", err)
	}
	return s, p
}

// testPanel is a 100x100 px UI element centered on screen, 0.2 units away.
func testPanel(name string) *Object {
	return NewUIElement(name,
		Pose{Position: Vec3{0, 0, 0.2}, Rotation: QuatIdentity},
		Surface{Rect: Rect{X: -0.05, Y: -0.05, Width: 0.1, Height: 0.1}})
}

// fakeSource is a scriptable StylusSource.
type fakeSource struct {
	visible    bool
	pose       Pose
	buttons    [buttonCount]bool
	vibrations [][2]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{visible: true, pose: PoseIdentity}
}

func (f *fakeSource) Visible() bool     { return f.visible }
func (f *fakeSource) Pose() Pose        { return f.pose }
func (f *fakeSource) Button(b int) bool { return f.buttons[b] }

func (f *fakeSource) Vibrate(ms, strength int) error {
	f.vibrations = append(f.vibrations, [2]int{ms, strength})
	return nil
}

// eventLog records event names in dispatch order.
type eventLog []string

func (l *eventLog) record(s *Scene) {
	s.OnPointerDown(func(PointerContext) { *l = append(*l, "down") })
	s.OnPointerUp(func(PointerContext) { *l = append(*l, "up") })
	s.OnPointerEnter(func(PointerContext) { *l = append(*l, "enter") })
	s.OnPointerExit(func(PointerContext) { *l = append(*l, "exit") })
	s.OnClick(func(ClickContext) { *l = append(*l, "click") })
	s.OnDragStart(func(DragContext) { *l = append(*l, "dragstart") })
	s.OnDrag(func(DragContext) { *l = append(*l, "drag") })
	s.OnDragEnd(func(DragContext) { *l = append(*l, "dragend") })
	s.OnDrop(func(DragContext) { *l = append(*l, "drop") })
}

func (l eventLog) count(name string) int {
	n := 0
	for _, e := range l {
		if e == name {
			n++
		}
	}
	return n
}
