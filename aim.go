package sinew

import "github.com/go-gl/mathgl/mgl64"

// Aim rotates its node so that AimAxis points at Target. When StabilizeAxis
// differs from AimAxis the target direction is flattened onto the plane
// orthogonal to it, so the node never rolls around that axis (a head turning
// toward a target keeps its up vector).
type Aim struct {
	ElementBase

	Target        *Node
	AimAxis       Axis
	StabilizeAxis Axis
}

// NewAim creates an aim element on node. Both axes are in node's local frame.
func NewAim(node, target *Node, aimAxis, stabilizeAxis Axis) *Aim {
	return &Aim{
		ElementBase:   newElementBase(node),
		Target:        target,
		AimAxis:       aimAxis,
		StabilizeAxis: stabilizeAxis,
	}
}

// Init implements Element.
func (a *Aim) Init() error {
	return a.checkNodes(ErrNilTarget, a.Target)
}

// Solve implements Element.
func (a *Aim) Solve(weight float64, out map[*Node]Delta) {
	out[a.node] = Delta{Rotation: a.rotation(weight)}
}

func (a *Aim) rotation(weight float64) mgl64.Quat {
	dir := a.Target.WorldPosition().Sub(a.node.WorldPosition())
	if dir.Len() < lengthEpsilon {
		return mgl64.QuatIdent()
	}

	worldRot := a.node.WorldRotation()
	aimWorld := worldRot.Rotate(a.AimAxis.Vector())
	if a.AimAxis != a.StabilizeAxis {
		stabWorld := worldRot.Rotate(a.StabilizeAxis.Vector()).Normalize()
		dir = projectOnPlane(dir, stabWorld)
		if dir.Len() < lengthEpsilon {
			return mgl64.QuatIdent()
		}
	}
	return slerpFromIdentity(rotationBetween(aimWorld, dir), weight)
}
