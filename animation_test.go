package xrinput

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	obj := NewObject("pos", Pose{Position: Vec3{0.1, 0.2, 0.3}, Rotation: QuatIdentity}, nil)

	g := TweenPosition(obj, Vec3{1, 2, 3}, 1.0, ease.Linear)

	// Exact halves keep float32 accumulation out of the result.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if !vecApprox(obj.Pose.Position, Vec3{1, 2, 3}, 1e-5) {
		t.Errorf("position = %v, want (1,2,3)", obj.Pose.Position)
	}
}

func TestTweenPositionHalfway(t *testing.T) {
	obj := NewObject("half", PoseIdentity, nil)
	g := TweenPosition(obj, Vec3{0, 0, 1}, 1.0, ease.Linear)

	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be Done at halfway")
	}
	if math.Abs(obj.Pose.Position.Z-0.5) > 0.01 {
		t.Errorf("Z = %f, want ~0.5 at halfway", obj.Pose.Position.Z)
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	obj := NewObject("done", PoseIdentity, nil)
	g := TweenPosition(obj, Vec3{0.5, 0.5, 0.5}, 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}
	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}
	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Update after done is a no-op.
	obj.Pose.Position = Vec3{}
	g.Update(0.1)
	if !g.Done || obj.Pose.Position != (Vec3{}) {
		t.Fatal("Update after Done wrote to the object")
	}
}

func TestTweenGroupDisposedObject(t *testing.T) {
	obj := NewObject("disposed", Pose{Position: Vec3{1, 2, 3}, Rotation: QuatIdentity}, nil)
	g := TweenPosition(obj, Vec3{5, 5, 5}, 1.0, ease.Linear)

	obj.Dispose()
	g.Update(0.1)

	if !g.Done {
		t.Fatal("expected Done after disposed object detected")
	}
	if obj.Pose.Position != (Vec3{1, 2, 3}) {
		t.Errorf("position changed to %v on disposed object", obj.Pose.Position)
	}
}

func TestTweenGroupDisposedMidAnimation(t *testing.T) {
	obj := NewObject("mid-dispose", PoseIdentity, nil)
	g := TweenPosition(obj, Vec3{1, 1, 1}, 1.0, ease.Linear)

	g.Update(0.1)
	g.Update(0.1)
	if g.Done {
		t.Fatal("should not be Done yet")
	}

	obj.Dispose()
	saved := obj.Pose.Position
	g.Update(0.1)

	if !g.Done {
		t.Fatal("expected Done after mid-animation dispose")
	}
	if obj.Pose.Position != saved {
		t.Errorf("position changed after dispose: %v -> %v", saved, obj.Pose.Position)
	}
}
