package sinew

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want mgl64.Vec3, tol float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

func quatNear(a, b mgl64.Quat, tol float64) bool {
	if math.Abs(a.W-b.W) > tol {
		return false
	}
	for i := range a.V {
		if math.Abs(a.V[i]-b.V[i]) > tol {
			return false
		}
	}
	return true
}

// assertQuat compares rotations, treating q and -q as equal.
func assertQuat(t *testing.T, name string, got, want mgl64.Quat, tol float64) {
	t.Helper()
	if quatNear(got, want, tol) || quatNear(got.Scale(-1), want, tol) {
		return
	}
	t.Errorf("%s = %v, want %v", name, got, want)
}

func yaw(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), mgl64.Vec3{0, 1, 0})
}

func roll(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), mgl64.Vec3{0, 0, 1})
}

// --- World transform ---

func TestWorldTransformRoot(t *testing.T) {
	n := NewNode("root")
	n.SetLocalPose(Pose{Position: mgl64.Vec3{1, 2, 3}, Rotation: yaw(90)})
	assertVec(t, "pos", n.WorldPosition(), mgl64.Vec3{1, 2, 3}, epsilon)
	assertQuat(t, "rot", n.WorldRotation(), yaw(90), epsilon)
}

func TestWorldTransformParentChild(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	parent.SetPosition(mgl64.Vec3{10, 0, 0})
	parent.SetRotation(yaw(90))
	child.SetPosition(mgl64.Vec3{1, 0, 0})

	// +X rotated 90° about Y lands on -Z.
	assertVec(t, "child pos", child.WorldPosition(), mgl64.Vec3{10, 0, -1}, 1e-12)
	assertQuat(t, "child rot", child.WorldRotation(), yaw(90), 1e-12)
}

func TestDirtyFlagSkipsClean(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	child.SetPosition(mgl64.Vec3{1, 0, 0})
	_ = child.WorldPosition()

	// Direct field write without MarkDirty keeps the cached value.
	child.Position = mgl64.Vec3{5, 0, 0}
	assertVec(t, "stale", child.WorldPosition(), mgl64.Vec3{1, 0, 0}, epsilon)

	child.MarkDirty()
	assertVec(t, "refreshed", child.WorldPosition(), mgl64.Vec3{5, 0, 0}, epsilon)
}

func TestParentChangePropagates(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	child.SetPosition(mgl64.Vec3{0, 1, 0})
	_ = child.WorldPosition()

	parent.SetPosition(mgl64.Vec3{0, 0, 7})
	assertVec(t, "child pos", child.WorldPosition(), mgl64.Vec3{0, 1, 7}, epsilon)
}

func TestReparentMarksDirty(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")
	a.SetPosition(mgl64.Vec3{1, 0, 0})
	b.SetPosition(mgl64.Vec3{0, 1, 0})
	a.AddChild(child)
	assertVec(t, "under a", child.WorldPosition(), mgl64.Vec3{1, 0, 0}, epsilon)

	b.AddChild(child)
	assertVec(t, "under b", child.WorldPosition(), mgl64.Vec3{0, 1, 0}, epsilon)
}

func TestSetWorldPositionAndRotation(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	parent.SetLocalPose(Pose{Position: mgl64.Vec3{3, 0, 0}, Rotation: roll(45)})

	child.SetWorldPosition(mgl64.Vec3{1, 2, 3})
	child.SetWorldRotation(yaw(30))

	assertVec(t, "world pos", child.WorldPosition(), mgl64.Vec3{1, 2, 3}, 1e-12)
	assertQuat(t, "world rot", child.WorldRotation(), yaw(30), 1e-12)
}

// --- WorldToLocal / LocalToWorld ---

func TestWorldToLocalRoundtrip(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	parent.SetLocalPose(Pose{Position: mgl64.Vec3{100, 50, 0}, Rotation: roll(30)})
	child.SetLocalPose(Pose{Position: mgl64.Vec3{10, 20, 5}, Rotation: yaw(60)})

	w := mgl64.Vec3{150, 80, -4}
	l := child.WorldToLocal(w)
	assertVec(t, "roundtrip", child.LocalToWorld(l), w, 1e-9)
}

func TestLocalToWorldOrigin(t *testing.T) {
	n := NewNode("n")
	n.SetPosition(mgl64.Vec3{50, 100, 0})
	assertVec(t, "origin", n.LocalToWorld(mgl64.Vec3{}), mgl64.Vec3{50, 100, 0}, epsilon)
}

// --- Deep hierarchy ---

func TestDeepHierarchy(t *testing.T) {
	nodes := make([]*Node, 10)
	for i := range nodes {
		nodes[i] = NewNode("")
		nodes[i].SetPosition(mgl64.Vec3{10, 0, 0})
		if i > 0 {
			nodes[i-1].AddChild(nodes[i])
		}
	}
	assertNear(t, "leaf.x", nodes[9].WorldPosition()[0], 100)
	if nodes[9].Depth() != 9 {
		t.Errorf("Depth = %d, want 9", nodes[9].Depth())
	}
}
