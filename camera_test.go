package xrinput

import (
	"math"
	"testing"
)

func TestCameraOrthographicCenter(t *testing.T) {
	cam := testCamera()
	got := cam.WorldToScreen(Vec3{0, 0, 5})
	if !approxEqual(got.X, 500, epsilon) || !approxEqual(got.Y, 500, epsilon) {
		t.Errorf("WorldToScreen(0,0,5) = %v, want (500,500)", got)
	}
}

func TestCameraOrthographicScale(t *testing.T) {
	cam := testCamera()
	got := cam.WorldToScreen(Vec3{0.012, -0.1, 1})
	if !approxEqual(got.X, 512, 1e-6) || !approxEqual(got.Y, 400, 1e-6) {
		t.Errorf("WorldToScreen = %v, want (512,400)", got)
	}
}

func TestCameraScreenPointToRayRoundTrip(t *testing.T) {
	cams := map[string]*Camera{
		"orthographic": testCamera(),
		"perspective":  NewCamera(PoseIdentity, Rect{Width: 800, Height: 600}),
		"rotated": NewCamera(
			Pose{Position: Vec3{1, 2, -3}, Rotation: QuatAxisAngle(Up, 0.4)},
			Rect{X: 10, Y: 20, Width: 640, Height: 480}),
	}
	points := []Vec2{{400, 300}, {10, 20}, {123.5, 456.25}}
	for name, cam := range cams {
		t.Run(name, func(t *testing.T) {
			for _, sp := range points {
				ray := cam.ScreenPointToRay(sp)
				got := cam.WorldToScreen(ray.At(2.5))
				if !approxEqual(got.X, sp.X, 1e-6) || !approxEqual(got.Y, sp.Y, 1e-6) {
					t.Errorf("round trip %v -> %v", sp, got)
				}
			}
		})
	}
}

func TestCameraPerspectiveFocal(t *testing.T) {
	cam := NewCamera(PoseIdentity, Rect{Width: 800, Height: 600})
	cam.FieldOfView = 90
	// tan(45deg) = 1, so a point at height z projects to the top edge.
	got := cam.WorldToScreen(Vec3{0, 2, 2})
	if !approxEqual(got.Y, 600, 1e-6) {
		t.Errorf("Y = %f, want 600", got.Y)
	}
	cam.FieldOfView = 60
	want := 300 + 300/math.Tan(math.Pi/6)
	got = cam.WorldToScreen(Vec3{0, 1, 1})
	if !approxEqual(got.Y, want, 1e-6) {
		t.Errorf("Y after FieldOfView change = %f, want %f", got.Y, want)
	}
}

func TestCameraRayDirectionIsUnit(t *testing.T) {
	cam := NewCamera(PoseIdentity, Rect{Width: 800, Height: 600})
	r := cam.ScreenPointToRay(Vec2{0, 0})
	if !approxEqual(r.Direction.Len(), 1, 1e-12) {
		t.Errorf("direction length = %f, want 1", r.Direction.Len())
	}
}

func TestCursorSampleFlipsY(t *testing.T) {
	cam := testCamera()
	// Window row 100 from the top is screen row 900 from the bottom.
	s := cursorSample(cam, 600, 100, [buttonCount]bool{true, false, false})
	if !vecApprox(s.pose.Position, Vec3{0.1, 0.4, 0}, 1e-12) {
		t.Errorf("origin = %v, want (0.1,0.4,0)", s.pose.Position)
	}
	if !s.buttons[ButtonLeft] {
		t.Error("buttons not carried through")
	}
	if got := cursorSample(nil, 1, 2, [buttonCount]bool{}); got.visible {
		t.Error("sample without a camera is visible")
	}
}

func TestScreenSampleLooksAlongRay(t *testing.T) {
	cam := NewCamera(Pose{Position: Vec3{0, 0, -1}, Rotation: QuatIdentity}, Rect{Width: 800, Height: 600})
	s := screenSample(cam, Vec2{400, 300}, [buttonCount]bool{false, true, false})
	if !s.visible {
		t.Fatal("sample through a camera is not visible")
	}
	if !vecApprox(s.pose.Position, Vec3{0, 0, -1}, 1e-12) {
		t.Errorf("origin = %v, want camera position", s.pose.Position)
	}
	if fwd := s.pose.Rotation.Rotate(Forward); !vecApprox(fwd, Forward, 1e-9) {
		t.Errorf("forward = %v, want %v through the viewport center", fwd, Forward)
	}
	if !s.buttons[ButtonRight] {
		t.Error("buttons not carried through")
	}
}
