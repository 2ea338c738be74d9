package xrinput

// DragSession holds the grab offset of an object being carried by a pointer.
// Offsets are relative to the pointer's endpoint pose at grab time, so the
// object follows the endpoint rigidly without consulting any raycast.
type DragSession struct {
	Object         *Object
	PositionOffset Vec3
	RotationOffset Quat
}

// BeginDrag records obj's offset from the endpoint pose.
func BeginDrag(endpoint Pose, obj *Object) *DragSession {
	objRot := obj.Pose.Rotation
	return &DragSession{
		Object:         obj,
		PositionOffset: objRot.Inverse().Rotate(obj.Pose.Position.Sub(endpoint.Position)),
		RotationOffset: endpoint.Rotation.Inverse().Mul(objRot),
	}
}

// Apply moves the object to follow endpoint. It reports false, leaving the
// object untouched, once the object has been disposed.
func (d *DragSession) Apply(endpoint Pose) bool {
	if !valid(d.Object) {
		return false
	}
	rot := endpoint.Rotation.Mul(d.RotationOffset)
	d.Object.Pose = Pose{
		Position: endpoint.Position.Add(rot.Rotate(d.PositionOffset)),
		Rotation: rot,
	}
	return true
}
