package xrinput

import "sort"

// RaycastHit is one raycast candidate. The zero value is the "no hit" result.
type RaycastHit struct {
	Target         *Object
	Distance       float64
	WorldPosition  Vec3
	WorldNormal    Vec3
	Module         RaycastModule
	ScreenPosition Vec2
	SortingOrder   int
	Depth          int
	// Index is the candidate's position in the merged list. It makes the
	// ordering total so equal hits resolve the same way every frame.
	Index int
}

// Valid reports whether the hit names a live target.
func (h RaycastHit) Valid() bool {
	return valid(h.Target)
}

// PhysicsRaycaster casts rays against object colliders.
type PhysicsRaycaster struct {
	Mask LayerMask
}

// Raycast appends every collider hit within maxDistance to buf, nearest first.
func (pr PhysicsRaycaster) Raycast(objects []*Object, ray Ray, maxDistance float64, cam EventCamera, buf []RaycastHit) []RaycastHit {
	start := len(buf)
	for _, o := range objects {
		if o.Collider == nil || !o.hittable(pr.Mask) {
			continue
		}
		d, n, ok := o.Collider.Raycast(o.localRay(ray), maxDistance)
		if !ok {
			continue
		}
		p := ray.At(d)
		buf = append(buf, RaycastHit{
			Target:         o,
			Distance:       d,
			WorldPosition:  p,
			WorldNormal:    o.Pose.Rotation.Rotate(n),
			Module:         ModulePhysical3D,
			ScreenPosition: project(cam, p),
		})
	}
	hits := buf[start:]
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return buf
}

// UIRaycaster casts rays against world-space UI surfaces.
type UIRaycaster struct {
	Mask LayerMask
}

// Raycast appends every surface hit within maxDistance to buf, ordered by
// depth then sorting order, both descending.
func (ur UIRaycaster) Raycast(objects []*Object, ray Ray, maxDistance float64, cam EventCamera, buf []RaycastHit) []RaycastHit {
	start := len(buf)
	for _, o := range objects {
		if o.Surface == nil || !o.hittable(ur.Mask) {
			continue
		}
		d, n, ok := o.Surface.raycast(o.localRay(ray), maxDistance)
		if !ok {
			continue
		}
		p := ray.At(d)
		buf = append(buf, RaycastHit{
			Target:         o,
			Distance:       d,
			WorldPosition:  p,
			WorldNormal:    o.Pose.Rotation.Rotate(n),
			Module:         ModuleUI,
			ScreenPosition: project(cam, p),
			SortingOrder:   o.Surface.SortingOrder,
			Depth:          o.Surface.Depth,
		})
	}
	hits := buf[start:]
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Depth != hits[j].Depth {
			return hits[i].Depth > hits[j].Depth
		}
		return hits[i].SortingOrder > hits[j].SortingOrder
	})
	return buf
}

// Resolve orders candidates by distance ascending, then sorting order
// descending, then depth descending, then index ascending, and returns the
// first one whose target is still valid. Candidates are sorted in place.
// With no valid candidate the zero hit is returned.
func Resolve(candidates []RaycastHit) RaycastHit {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := &candidates[i], &candidates[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.SortingOrder != b.SortingOrder {
			return a.SortingOrder > b.SortingOrder
		}
		if a.Depth != b.Depth {
			return a.Depth > b.Depth
		}
		return a.Index < b.Index
	})
	for i := range candidates {
		if candidates[i].Valid() {
			return candidates[i]
		}
	}
	return RaycastHit{}
}

func project(cam EventCamera, p Vec3) Vec2 {
	if cam == nil {
		return Vec2{}
	}
	return cam.WorldToScreen(p)
}
