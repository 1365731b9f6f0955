package sinew

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// --- Delta ---

func TestDeltaComposeOrder(t *testing.T) {
	a := Delta{Translation: mgl64.Vec3{1, 0, 0}, Rotation: yaw(90)}
	b := Delta{Translation: mgl64.Vec3{0, 2, 0}, Rotation: roll(90)}
	got := a.Compose(b)
	assertVec(t, "translation", got.Translation, mgl64.Vec3{1, 2, 0}, epsilon)
	assertQuat(t, "rotation", got.Rotation, yaw(90).Mul(roll(90)), 1e-12)
}

func TestDeltaScale(t *testing.T) {
	d := Delta{Translation: mgl64.Vec3{4, 0, 0}, Rotation: yaw(90)}
	half := d.Scale(0.5)
	assertVec(t, "translation", half.Translation, mgl64.Vec3{2, 0, 0}, epsilon)
	assertQuat(t, "rotation", half.Rotation, yaw(45), 1e-9)

	if !d.Scale(0).IsIdentity(0) {
		t.Error("weight 0 should scale to exact identity")
	}
	full := d.Scale(1)
	assertQuat(t, "full", full.Rotation, yaw(90), 1e-12)
}

func TestDeltaScaleClampsWeight(t *testing.T) {
	d := Delta{Translation: mgl64.Vec3{1, 0, 0}, Rotation: yaw(30)}
	over := d.Scale(3)
	assertVec(t, "translation", over.Translation, mgl64.Vec3{1, 0, 0}, epsilon)
	if !d.Scale(-1).IsIdentity(0) {
		t.Error("negative weight should clamp to identity")
	}
}

func TestSlerpFromIdentityShortestArc(t *testing.T) {
	// -q represents the same rotation; scaling must not take the long way.
	q := yaw(60).Scale(-1)
	half := slerpFromIdentity(q, 0.5)
	assertQuat(t, "half", half, yaw(30), 1e-9)
}

// --- Axis / mode names ---

func TestAxisRoundTrip(t *testing.T) {
	for a := AxisPosX; a <= AxisNegZ; a++ {
		got, ok := ParseAxis(a.String())
		if !ok || got != a {
			t.Errorf("ParseAxis(%q) = %v, %v", a.String(), got, ok)
		}
		if l := a.Vector().Len(); math.Abs(l-1) > epsilon {
			t.Errorf("%v vector length = %v", a, l)
		}
	}
	if _, ok := ParseAxis("w"); ok {
		t.Error("ParseAxis should reject unknown names")
	}
}

func TestReposeModeRoundTrip(t *testing.T) {
	for m := ReposeNone; m <= ReposeNewLocal; m++ {
		got, ok := ParseReposeMode(m.String())
		if !ok || got != m {
			t.Errorf("ParseReposeMode(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParseReposeMode("sideways"); ok {
		t.Error("ParseReposeMode should reject unknown names")
	}
}

// --- Math helpers ---

func TestRotationBetween(t *testing.T) {
	x := mgl64.Vec3{1, 0, 0}
	z := mgl64.Vec3{0, 0, 1}

	assertQuat(t, "aligned", rotationBetween(x, x.Mul(3)), mgl64.QuatIdent(), 0)
	assertQuat(t, "zero", rotationBetween(mgl64.Vec3{}, x), mgl64.QuatIdent(), 0)

	q := rotationBetween(x, z)
	assertVec(t, "x->z", q.Rotate(x), z, 1e-12)

	opp := rotationBetween(x, x.Mul(-1))
	assertVec(t, "x->-x", opp.Rotate(x), x.Mul(-1), 1e-12)

	// Nearly opposite still lands exactly.
	near := mgl64.Vec3{-1, 1e-4, 0}.Normalize()
	assertVec(t, "near opposite", rotationBetween(x, near).Rotate(x), near, 1e-12)
}

func TestAngleBetween(t *testing.T) {
	assertNear(t, "right", angleBetween(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 5, 0}), math.Pi/2)
	assertNear(t, "zero length", angleBetween(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}), 0)
}

func TestFiniteDelta(t *testing.T) {
	if !finiteDelta(IdentityDelta()) {
		t.Error("identity should be finite")
	}
	bad := IdentityDelta()
	bad.Translation[1] = math.NaN()
	if finiteDelta(bad) {
		t.Error("NaN translation should not be finite")
	}
}
