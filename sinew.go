package sinew

import "github.com/go-gl/mathgl/mgl64"

// Pose is a local or world position/rotation pair.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityPose returns the pose at the origin with identity rotation.
func IdentityPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// Delta is an additive world-space correction. The zero value is not a valid
// rotation; use IdentityDelta.
type Delta struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Quat
}

// IdentityDelta returns the correction that changes nothing.
func IdentityDelta() Delta {
	return Delta{Rotation: mgl64.QuatIdent()}
}

// Compose accumulates next onto d. Translations add; rotations multiply
// left-to-right, so composition order matters.
func (d Delta) Compose(next Delta) Delta {
	return Delta{
		Translation: d.Translation.Add(next.Translation),
		Rotation:    d.Rotation.Mul(next.Rotation).Normalize(),
	}
}

// Scale weights the correction: translation linearly, rotation by spherical
// interpolation from identity.
func (d Delta) Scale(w float64) Delta {
	return Delta{
		Translation: d.Translation.Mul(clampWeight(w)),
		Rotation:    slerpFromIdentity(d.Rotation, w),
	}
}

// IsIdentity reports whether the correction is a no-op within epsilon.
func (d Delta) IsIdentity(epsilon float64) bool {
	return d.Translation.Len() <= epsilon && quatNearIdentity(d.Rotation, epsilon)
}

// Axis selects one of the six principal directions of a node's local frame.
type Axis uint8

const (
	AxisPosX Axis = iota // +X
	AxisNegX             // -X
	AxisPosY             // +Y
	AxisNegY             // -Y
	AxisPosZ             // +Z
	AxisNegZ             // -Z
)

// Vector returns the unit vector for the axis.
func (a Axis) Vector() mgl64.Vec3 {
	switch a {
	case AxisPosX:
		return mgl64.Vec3{1, 0, 0}
	case AxisNegX:
		return mgl64.Vec3{-1, 0, 0}
	case AxisPosY:
		return mgl64.Vec3{0, 1, 0}
	case AxisNegY:
		return mgl64.Vec3{0, -1, 0}
	case AxisPosZ:
		return mgl64.Vec3{0, 0, 1}
	case AxisNegZ:
		return mgl64.Vec3{0, 0, -1}
	default:
		return mgl64.Vec3{0, 0, 1}
	}
}

func (a Axis) String() string {
	switch a {
	case AxisPosX:
		return "+x"
	case AxisNegX:
		return "-x"
	case AxisPosY:
		return "+y"
	case AxisNegY:
		return "-y"
	case AxisPosZ:
		return "+z"
	case AxisNegZ:
		return "-z"
	default:
		return "?"
	}
}

// ParseAxis converts "+x", "-y", "z" style names to an Axis.
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "+x", "x", "X", "+X":
		return AxisPosX, true
	case "-x", "-X":
		return AxisNegX, true
	case "+y", "y", "Y", "+Y":
		return AxisPosY, true
	case "-y", "-Y":
		return AxisNegY, true
	case "+z", "z", "Z", "+Z":
		return AxisPosZ, true
	case "-z", "-Z":
		return AxisNegZ, true
	}
	return 0, false
}

// ReposeMode selects how a Repose value is interpreted.
type ReposeMode uint8

const (
	ReposeNone        ReposeMode = iota // channel left untouched
	ReposeNewWorld                      // absolute world-space target
	ReposeOffsetWorld                   // world-space additive offset
	ReposeOffsetLocal                   // local-space additive offset
	ReposeNewLocal                      // absolute value in the parent's frame
)

func (m ReposeMode) String() string {
	switch m {
	case ReposeNone:
		return "none"
	case ReposeNewWorld:
		return "new_world"
	case ReposeOffsetWorld:
		return "offset_world"
	case ReposeOffsetLocal:
		return "offset_local"
	case ReposeNewLocal:
		return "new_local"
	default:
		return "unknown"
	}
}

// ParseReposeMode is the inverse of ReposeMode.String.
func ParseReposeMode(s string) (ReposeMode, bool) {
	for m := ReposeNone; m <= ReposeNewLocal; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return ReposeNone, false
}
