package sinew

// SiblingAsParent makes its node follow a sibling as if the sibling were its
// parent: whatever the sibling has moved and turned since it was designated
// is applied to the node, with the node's offset carried around by the
// sibling's rotation.
//
// It overrides animation rather than blending with it, so it defaults to
// non-additive with ForcePoseReset set.
type SiblingAsParent struct {
	ElementBase

	sibling  *Node
	basePose Pose
}

// NewSiblingAsParent creates the element and captures sibling's current local
// pose as its base pose.
func NewSiblingAsParent(node, sibling *Node) *SiblingAsParent {
	s := &SiblingAsParent{ElementBase: newElementBase(node)}
	s.ForcePoseReset = true
	s.SetSibling(sibling)
	return s
}

// SetSibling designates a new sibling and recaptures its base pose.
func (s *SiblingAsParent) SetSibling(sibling *Node) {
	s.sibling = sibling
	if sibling != nil {
		s.basePose = sibling.LocalPose()
	} else {
		s.basePose = IdentityPose()
	}
}

// Sibling returns the designated sibling.
func (s *SiblingAsParent) Sibling() *Node { return s.sibling }

// BasePose returns the sibling's local pose captured at designation.
func (s *SiblingAsParent) BasePose() Pose { return s.basePose }

// Init implements Element.
func (s *SiblingAsParent) Init() error {
	if err := s.checkNodes(ErrNilTarget, s.sibling); err != nil {
		return err
	}
	if s.sibling == s.node || s.sibling.Parent != s.node.Parent {
		return ErrNotSibling
	}
	return nil
}

// Solve implements Element.
func (s *SiblingAsParent) Solve(weight float64, out map[*Node]Delta) {
	cur := s.sibling.LocalPose()
	base := s.basePose

	// Rigid motion of the sibling since designation, in the shared parent
	// frame: p -> cur.Position + turn * (p - base.Position).
	turn := cur.Rotation.Normalize().Mul(base.Rotation.Normalize().Inverse()).Normalize()
	p := s.node.Position
	moved := cur.Position.Add(turn.Rotate(p.Sub(base.Position)))
	local := moved.Sub(p)

	_, parentRot := s.node.parentWorld()
	d := Delta{
		Translation: parentRot.Rotate(local),
		Rotation:    parentRot.Mul(turn).Mul(parentRot.Inverse()).Normalize(),
	}
	out[s.node] = d.Scale(weight)
}
