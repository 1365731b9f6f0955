package sinew

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrBrokenChain is returned when a TwoJoint's shoulder, elbow and end are not
// an ancestor chain.
var ErrBrokenChain = errors.New("sinew: two-joint nodes are not an ancestor chain")

// DefaultTwoJointEpsilon keeps the target distance off the solvability
// boundary.
const DefaultTwoJointEpsilon = 1e-4

// TwoJoint is the analytic two-bone solver: Shoulder, Elbow and the affected
// end node form a chain; the end is driven to Target and the elbow bends
// toward Hint.
//
// The end node itself receives no correction. It moves because the shoulder
// and elbow rotate.
type TwoJoint struct {
	ElementBase

	Shoulder *Node
	Elbow    *Node
	Target   *Node
	Hint     *Node
	Epsilon  float64
}

// NewTwoJoint creates a two-joint element affecting end.
func NewTwoJoint(shoulder, elbow, end, target, hint *Node) *TwoJoint {
	return &TwoJoint{
		ElementBase: newElementBase(end),
		Shoulder:    shoulder,
		Elbow:       elbow,
		Target:      target,
		Hint:        hint,
		Epsilon:     DefaultTwoJointEpsilon,
	}
}

// Init implements Element. It registers the shoulder and elbow as side
// effects.
func (j *TwoJoint) Init() error {
	if j.Shoulder == nil || j.Elbow == nil {
		return ErrNilNode
	}
	if j.Hint == nil {
		return ErrNilHint
	}
	if err := j.checkNodes(ErrNilTarget, j.Target, j.Hint, j.Shoulder, j.Elbow); err != nil {
		return err
	}
	if j.Elbow == j.node || j.Shoulder == j.Elbow ||
		!isAncestor(j.Elbow, j.node) || !isAncestor(j.Shoulder, j.Elbow) {
		return ErrBrokenChain
	}
	if j.Epsilon <= 0 {
		j.Epsilon = DefaultTwoJointEpsilon
	}
	j.sideEffects = []*Node{j.Shoulder, j.Elbow}
	return nil
}

// Solve implements Element.
func (j *TwoJoint) Solve(weight float64, out map[*Node]Delta) {
	shoulder, elbow := j.solveChain(
		j.Shoulder.WorldPosition(),
		j.Elbow.WorldPosition(),
		j.node.WorldPosition(),
		j.Target.WorldPosition(),
		j.Hint.WorldPosition(),
		weight,
	)
	out[j.Shoulder] = Delta{Rotation: shoulder}
	out[j.Elbow] = Delta{Rotation: elbow}
	out[j.node] = IdentityDelta()
}

// solveChain returns the world rotation deltas for shoulder and elbow. The
// elbow delta is expressed in the frame left behind after the shoulder delta
// has been applied, which is the order the system applies them in.
func (j *TwoJoint) solveChain(a, b, c, t, hint mgl64.Vec3, weight float64) (mgl64.Quat, mgl64.Quat) {
	ident := mgl64.QuatIdent()
	lab := b.Sub(a).Len()
	lcb := c.Sub(b).Len()
	if lab < lengthEpsilon || lcb < lengthEpsilon || lab+lcb <= 2*j.Epsilon {
		return ident, ident
	}
	lat := mgl64.Clamp(t.Sub(a).Len(), j.Epsilon, lab+lcb-j.Epsilon)

	shoulderWant := math.Acos(mgl64.Clamp((lcb*lcb-lab*lab-lat*lat)/(-2*lab*lat), -1, 1))
	elbowWant := math.Acos(mgl64.Clamp((lat*lat-lab*lab-lcb*lcb)/(-2*lab*lcb), -1, 1))

	n := bendAxis(a, b, c, hint)
	shoulderCur := signedAngle(projectOnPlane(c.Sub(a), n), b.Sub(a), n)

	// Swing the upper arm to the wanted shoulder angle against the current
	// end direction, then re-bend the forearm inside the bend plane.
	rs := mgl64.QuatRotate(shoulderWant-shoulderCur, n)
	b1 := a.Add(rs.Rotate(b.Sub(a)))
	c1 := b1.Add(rs.Rotate(c.Sub(b)))
	forearm := mgl64.QuatRotate(elbowWant, n).Rotate(a.Sub(b1).Normalize())
	re := rotationBetween(c1.Sub(b1), forearm)
	c2 := b1.Add(re.Rotate(c1.Sub(b1)))

	// Finally swing the bent chain so the end lands on the target direction.
	sw := rotationBetween(c2.Sub(a), t.Sub(a))

	full := sw.Mul(rs).Normalize()
	bend := rs.Inverse().Mul(re).Mul(rs).Normalize()

	shoulder := slerpFromIdentity(full, weight)
	elbow := shoulder.Mul(slerpFromIdentity(bend, weight)).Mul(shoulder.Inverse()).Normalize()
	return shoulder, elbow
}

// bendAxis returns the normal of the bend plane: (elbow-shoulder) x
// (hint-shoulder), falling back to the current bend when the hint is
// collinear with the upper arm, and to any perpendicular for a straight chain.
func bendAxis(a, b, c, hint mgl64.Vec3) mgl64.Vec3 {
	upper := b.Sub(a)
	n := upper.Cross(hint.Sub(a))
	if n.Len() > 1e-9*upper.Len() {
		return n.Normalize()
	}
	n = c.Sub(a).Cross(upper)
	if n.Len() > 1e-9*upper.Len() {
		return n.Normalize()
	}
	return anyPerpendicular(upper)
}

// signedAngle returns the angle from u to v measured about axis n.
func signedAngle(u, v, n mgl64.Vec3) float64 {
	if u.Len() < lengthEpsilon || v.Len() < lengthEpsilon {
		return 0
	}
	return math.Atan2(n.Dot(u.Cross(v)), u.Dot(v))
}
