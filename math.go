package xrinput

import "math"

// Vec3 is a 3D vector. The coordinate system is left-handed: +X right,
// +Y up, +Z forward (into the screen).
type Vec3 struct {
	X, Y, Z float64
}

// Forward, Up and Right are the unit axes of the coordinate system.
var (
	Forward = Vec3{0, 0, 1}
	Up      = Vec3{0, 1, 0}
	Right   = Vec3{1, 0, 0}
)

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Len returns the length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return v
	}
	return v.Scale(1 / l)
}

// Quat is a rotation quaternion (x, y, z, w).
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the rotation that does nothing.
var QuatIdentity = Quat{0, 0, 0, 1}

// QuatAxisAngle returns the rotation of angle radians around axis.
func QuatAxisAngle(axis Vec3, angle float64) Quat {
	a := axis.Normalize()
	s, c := math.Sincos(angle / 2)
	return Quat{a.X * s, a.Y * s, a.Z * s, c}
}

// QuatLookRotation returns the rotation whose forward axis points along
// forward with up as close to up as possible.
func QuatLookRotation(forward, up Vec3) Quat {
	f := forward.Normalize()
	r := up.Cross(f).Normalize()
	if r.Len() < 1e-9 {
		// forward is parallel to up; pick any perpendicular right axis.
		r = Right
		if math.Abs(f.X) > 0.9 {
			r = Forward.Cross(f).Normalize()
		}
	}
	u := f.Cross(r)

	// Rotation matrix columns are r, u, f.
	m00, m01, m02 := r.X, u.X, f.X
	m10, m11, m12 := r.Y, u.Y, f.Y
	m20, m21, m22 := r.Z, u.Z, f.Z

	var q Quat
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q = Quat{(m21 - m12) / s, (m02 - m20) / s, (m10 - m01) / s, s / 4}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q = Quat{s / 4, (m01 + m10) / s, (m02 + m20) / s, (m21 - m12) / s}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q = Quat{(m01 + m10) / s, s / 4, (m12 + m21) / s, (m02 - m20) / s}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q = Quat{(m02 + m20) / s, (m12 + m21) / s, s / 4, (m10 - m01) / s}
	}
	return q.Normalize()
}

// Mul returns the composed rotation q * o (o applied first).
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2w(u x v) + 2(u x (u x v)), u = (x, y, z)
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Inverse returns the inverse rotation. Non-unit quaternions are handled.
func (q Quat) Inverse() Quat {
	n := q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W
	if n < 1e-12 {
		return QuatIdentity
	}
	return Quat{-q.X / n, -q.Y / n, -q.Z / n, q.W / n}
}

// Normalize returns q scaled to unit length. A zero quaternion becomes identity.
func (q Quat) Normalize() Quat {
	n := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if n < 1e-12 {
		return QuatIdentity
	}
	return Quat{q.X / n, q.Y / n, q.Z / n, q.W / n}
}

// Pose is a position and orientation in 3D space.
type Pose struct {
	Position Vec3
	Rotation Quat
}

// PoseIdentity is the pose at the origin with no rotation.
var PoseIdentity = Pose{Rotation: QuatIdentity}

// Forward returns the pose's forward (+Z) axis.
func (p Pose) Forward() Vec3 { return p.Rotation.Rotate(Forward) }

// Up returns the pose's up (+Y) axis.
func (p Pose) Up() Vec3 { return p.Rotation.Rotate(Up) }

// TransformPoint maps a point from this pose's local space to the parent space.
func (p Pose) TransformPoint(local Vec3) Vec3 {
	return p.Position.Add(p.Rotation.Rotate(local))
}

// InverseTransformPoint maps a point from the parent space into this pose's local space.
func (p Pose) InverseTransformPoint(world Vec3) Vec3 {
	return p.Rotation.Inverse().Rotate(world.Sub(p.Position))
}

// Ray is a half-line starting at Origin along the unit Direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point at distance d along the ray.
func (r Ray) At(d float64) Vec3 { return r.Origin.Add(r.Direction.Scale(d)) }

// SmoothDamp moves current toward target with a critically damped spring.
// velocity carries state between calls. smoothTime is roughly the time to
// reach the target; dt is the frame time in seconds.
func SmoothDamp(current, target Vec3, velocity *Vec3, smoothTime, dt float64) Vec3 {
	if dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	temp := velocity.Add(change.Scale(omega)).Scale(dt)
	*velocity = velocity.Sub(temp.Scale(omega)).Scale(exp)
	out := target.Add(change.Add(temp).Scale(exp))

	// Prevent overshooting.
	if target.Sub(current).Dot(out.Sub(target)) > 0 {
		out = target
		*velocity = Vec3{}
	}
	return out
}

func hypot(x, y float64) float64 { return math.Sqrt(x*x + y*y) }
