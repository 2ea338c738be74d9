package xrinput

import "math"

// Collider is a 3D hit volume in an object's local coordinates.
type Collider interface {
	// Raycast intersects a local-space ray with the collider. It returns the
	// distance along the ray and the local-space surface normal at the hit.
	Raycast(local Ray, maxDistance float64) (distance float64, normal Vec3, ok bool)
}

// SphereCollider is a sphere in local coordinates.
type SphereCollider struct {
	Center Vec3
	Radius float64
}

// Raycast implements Collider. Rays starting inside the sphere report no hit.
func (s SphereCollider) Raycast(r Ray, maxDistance float64) (float64, Vec3, bool) {
	oc := r.Origin.Sub(s.Center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	if c < 0 {
		return 0, Vec3{}, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, Vec3{}, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 || t > maxDistance {
		return 0, Vec3{}, false
	}
	n := r.At(t).Sub(s.Center).Normalize()
	return t, n, true
}

// BoxCollider is an axis-aligned box in local coordinates.
type BoxCollider struct {
	Center Vec3
	Size   Vec3
}

// Raycast implements Collider using the slab method. Rays starting inside the
// box report no hit.
func (b BoxCollider) Raycast(r Ray, maxDistance float64) (float64, Vec3, bool) {
	half := b.Size.Scale(0.5)
	lo := b.Center.Sub(half)
	hi := b.Center.Add(half)

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	min := [3]float64{lo.X, lo.Y, lo.Z}
	max := [3]float64{hi.X, hi.Y, hi.Z}

	tNear, tFar := math.Inf(-1), math.Inf(1)
	axis, sign := -1, 0.0
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if origin[i] < min[i] || origin[i] > max[i] {
				return 0, Vec3{}, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (min[i] - origin[i]) * inv
		t2 := (max[i] - origin[i]) * inv
		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tNear {
			tNear = t1
			axis, sign = i, s
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return 0, Vec3{}, false
		}
	}
	if axis < 0 || tNear < 0 || tNear > maxDistance {
		return 0, Vec3{}, false
	}
	var n Vec3
	switch axis {
	case 0:
		n.X = sign
	case 1:
		n.Y = sign
	case 2:
		n.Z = sign
	}
	return tNear, n, true
}

// Surface is a flat UI element lying in its object's local XY plane. The
// visible face points toward -Z, so a camera looking along +Z sees it.
type Surface struct {
	// Rect is the element's bounds in local plane coordinates.
	Rect Rect
	// SortingOrder breaks ties between overlapping elements; higher wins.
	SortingOrder int
	// Depth is the element's render depth; higher draws on top.
	Depth int
	// TwoSided accepts hits from behind the surface.
	TwoSided bool
}

// raycast intersects a local-space ray with the surface plane.
func (s *Surface) raycast(r Ray, maxDistance float64) (float64, Vec3, bool) {
	if math.Abs(r.Direction.Z) < 1e-12 {
		return 0, Vec3{}, false
	}
	if r.Direction.Z < 0 && !s.TwoSided {
		return 0, Vec3{}, false
	}
	t := -r.Origin.Z / r.Direction.Z
	if t < 0 || t > maxDistance {
		return 0, Vec3{}, false
	}
	p := r.At(t)
	if !s.Rect.Contains(p.X, p.Y) {
		return 0, Vec3{}, false
	}
	n := Vec3{0, 0, -1}
	if r.Direction.Z < 0 {
		n.Z = 1
	}
	return t, n, true
}
