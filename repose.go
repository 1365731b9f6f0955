package sinew

import "github.com/go-gl/mathgl/mgl64"

// Repose injects a position and/or rotation into its node directly. Each
// channel has its own ReposeMode; ReposeNone leaves the channel alone.
//
// Local position modes work in the parent's frame, the same frame as
// Node.Position. ReposeOffsetLocal rotation post-multiplies the node's own
// rotation.
//
// Callers that pin a node to an explicit pose every tick set ForcePoseReset.
type Repose struct {
	ElementBase

	Position     mgl64.Vec3
	Rotation     mgl64.Quat
	PositionMode ReposeMode
	RotationMode ReposeMode
}

// NewRepose creates a repose element with both channels disabled.
func NewRepose(node *Node) *Repose {
	return &Repose{
		ElementBase: newElementBase(node),
		Rotation:    mgl64.QuatIdent(),
	}
}

// SetPosition sets the position channel value and mode.
func (r *Repose) SetPosition(v mgl64.Vec3, mode ReposeMode) *Repose {
	r.Position = v
	r.PositionMode = mode
	return r
}

// SetRotation sets the rotation channel value and mode.
func (r *Repose) SetRotation(q mgl64.Quat, mode ReposeMode) *Repose {
	r.Rotation = q
	r.RotationMode = mode
	return r
}

// Init implements Element.
func (r *Repose) Init() error {
	return r.checkNodes(nil)
}

// Solve implements Element.
func (r *Repose) Solve(weight float64, out map[*Node]Delta) {
	parentPos, parentRot := r.node.parentWorld()
	cur := r.node.WorldPose()

	d := IdentityDelta()
	switch r.PositionMode {
	case ReposeNewWorld:
		d.Translation = r.Position.Sub(cur.Position)
	case ReposeOffsetWorld:
		d.Translation = r.Position
	case ReposeOffsetLocal:
		d.Translation = parentRot.Rotate(r.Position)
	case ReposeNewLocal:
		d.Translation = parentPos.Add(parentRot.Rotate(r.Position)).Sub(cur.Position)
	}

	// Every rotation mode is reduced to the world delta D with D * current = goal.
	q := r.Rotation.Normalize()
	inv := cur.Rotation.Inverse()
	switch r.RotationMode {
	case ReposeNewWorld:
		d.Rotation = q.Mul(inv)
	case ReposeOffsetWorld:
		d.Rotation = q
	case ReposeOffsetLocal:
		d.Rotation = cur.Rotation.Mul(q).Mul(inv)
	case ReposeNewLocal:
		d.Rotation = parentRot.Mul(q).Mul(inv)
	}

	out[r.node] = d.Scale(weight)
}
