package xrinput

import "math"

// EventCamera projects between world space and screen pixels. Pointers use it
// to report screen positions so that events look like mouse input.
type EventCamera interface {
	WorldToScreen(world Vec3) Vec2
	ScreenPointToRay(screen Vec2) Ray
}

// Camera is a pinhole or orthographic event camera. It does not render; the
// stereo frustum used for display is managed elsewhere.
type Camera struct {
	// Pose is the camera's world position and orientation. The camera looks
	// along its forward (+Z) axis.
	Pose Pose
	// FieldOfView is the vertical field of view in degrees (perspective only).
	FieldOfView float64
	// Orthographic switches to an orthographic projection.
	Orthographic bool
	// OrthographicSize is half the vertical view height in world units.
	OrthographicSize float64
	// Viewport is the screen-space rectangle in pixels.
	Viewport Rect

	focal    float64
	cacheKey [3]float64
}

// NewCamera creates a perspective camera at pose with the given viewport and
// a 60 degree vertical field of view.
func NewCamera(pose Pose, viewport Rect) *Camera {
	return &Camera{
		Pose:             pose,
		FieldOfView:      60,
		OrthographicSize: 1,
		Viewport:         viewport,
	}
}

// NewOrthographicCamera creates an orthographic camera. size is half the
// vertical view height in world units.
func NewOrthographicCamera(pose Pose, viewport Rect, size float64) *Camera {
	return &Camera{
		Pose:             pose,
		FieldOfView:      60,
		Orthographic:     true,
		OrthographicSize: size,
		Viewport:         viewport,
	}
}

// pixelsPerUnit returns the perspective focal length in pixels, or the
// orthographic scale in pixels per world unit. The value is cached until the
// projection inputs change.
func (c *Camera) pixelsPerUnit() float64 {
	key := [3]float64{c.FieldOfView, c.OrthographicSize, c.Viewport.Height}
	if c.focal != 0 && key == c.cacheKey {
		return c.focal
	}
	c.cacheKey = key
	half := c.Viewport.Height / 2
	if c.Orthographic {
		size := c.OrthographicSize
		if size <= 0 {
			size = 1
		}
		c.focal = half / size
	} else {
		fov := c.FieldOfView
		if fov <= 0 || fov >= 180 {
			fov = 60
		}
		c.focal = half / math.Tan(fov*math.Pi/360)
	}
	return c.focal
}

func (c *Camera) center() (float64, float64) {
	return c.Viewport.X + c.Viewport.Width/2, c.Viewport.Y + c.Viewport.Height/2
}

// WorldToScreen converts a world point to screen pixels. Points behind a
// perspective camera project mirrored, as with any pinhole model.
func (c *Camera) WorldToScreen(world Vec3) Vec2 {
	local := c.Pose.InverseTransformPoint(world)
	k := c.pixelsPerUnit()
	cx, cy := c.center()
	if c.Orthographic {
		return Vec2{cx + local.X*k, cy + local.Y*k}
	}
	z := local.Z
	if math.Abs(z) < 1e-9 {
		z = 1e-9
	}
	return Vec2{cx + local.X/z*k, cy + local.Y/z*k}
}

// ScreenPointToRay returns the world ray passing through a screen pixel.
func (c *Camera) ScreenPointToRay(screen Vec2) Ray {
	k := c.pixelsPerUnit()
	cx, cy := c.center()
	dx := (screen.X - cx) / k
	dy := (screen.Y - cy) / k
	if c.Orthographic {
		return Ray{
			Origin:    c.Pose.TransformPoint(Vec3{dx, dy, 0}),
			Direction: c.Pose.Forward(),
		}
	}
	return Ray{
		Origin:    c.Pose.Position,
		Direction: c.Pose.Rotation.Rotate(Vec3{dx, dy, 1}.Normalize()),
	}
}

// cursorSample builds a pointer sample from window coordinates (origin
// top-left, Y down) by casting through cam.
func cursorSample(cam *Camera, x, y float64, buttons [buttonCount]bool) pointerSample {
	if cam == nil {
		return pointerSample{buttons: buttons}
	}
	screen := Vec2{x, cam.Viewport.Y + cam.Viewport.Height - y}
	return screenSample(cam, screen, buttons)
}

// screenSample builds a pointer sample whose ray passes through a screen point.
func screenSample(cam EventCamera, screen Vec2, buttons [buttonCount]bool) pointerSample {
	ray := cam.ScreenPointToRay(screen)
	up := Up
	if c, ok := cam.(*Camera); ok {
		up = c.Pose.Up()
	}
	return pointerSample{
		visible: true,
		pose:    Pose{Position: ray.Origin, Rotation: QuatLookRotation(ray.Direction, up)},
		buttons: buttons,
	}
}
