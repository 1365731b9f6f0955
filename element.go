package sinew

import "errors"

// Configuration errors reported by Element.Init during System.Build.
var (
	ErrNilNode      = errors.New("sinew: element has no affected node")
	ErrNilTarget    = errors.New("sinew: element has no target node")
	ErrNilHint      = errors.New("sinew: element has no hint node")
	ErrNotSibling   = errors.New("sinew: sibling does not share the affected node's parent")
	ErrDisposedNode = errors.New("sinew: element references a disposed node")
	ErrElementOwned = errors.New("sinew: element already belongs to a group")
)

// Element is one corrective unit. The set of implementations is closed: Aim,
// Repose, TwoJoint and SiblingAsParent. The System only uses the methods
// declared here.
type Element interface {
	// Base returns the shared element configuration.
	Base() *ElementBase

	// Init validates the element and registers side-effected nodes. Called
	// once per Build, before the execution plan is constructed.
	Init() error

	// Solve computes world-space corrections for the nodes this element
	// touches, scaled by weight, and writes them into out. Nodes the element
	// declares but does not write are treated as identity.
	Solve(weight float64, out map[*Node]Delta)

	sealed()
}

// ElementBase holds the configuration shared by every element variant.
type ElementBase struct {
	// Layer orders elements across the tick; lower layers solve and commit first.
	Layer int
	// Additive elements get the animation motion re-applied on top of their
	// correction.
	Additive bool
	// ForcePoseReset resets the affected nodes to the default pose before the
	// element solves, even when it is not additive.
	ForcePoseReset bool
	// Weight scales the element on top of its group's weight.
	Weight float64

	node        *Node
	sideEffects []*Node
	owner       *System
	group       int
	slot        int
}

func newElementBase(node *Node) ElementBase {
	return ElementBase{Weight: 1, node: node, group: -1, slot: -1}
}

// Base implements Element.
func (b *ElementBase) Base() *ElementBase { return b }

func (b *ElementBase) sealed() {}

// Node returns the primary affected node.
func (b *ElementBase) Node() *Node { return b.node }

// SideEffects returns the additional nodes the element writes.
func (b *ElementBase) SideEffects() []*Node { return b.sideEffects }

// Nodes returns the primary node followed by the side-effected nodes.
func (b *ElementBase) Nodes() []*Node {
	out := make([]*Node, 0, 1+len(b.sideEffects))
	out = append(out, b.node)
	return append(out, b.sideEffects...)
}

// GroupIndex returns the registration index of the owning group, or -1.
func (b *ElementBase) GroupIndex() int { return b.group }

// touches reports whether n is one of the element's declared nodes.
func (b *ElementBase) touches(n *Node) bool {
	if n == b.node {
		return true
	}
	for _, s := range b.sideEffects {
		if s == n {
			return true
		}
	}
	return false
}

// checkNodes validates the primary node and any extra references, which must
// be non-nil and alive. missing is returned for a nil extra.
func (b *ElementBase) checkNodes(missing error, extra ...*Node) error {
	if b.node == nil {
		return ErrNilNode
	}
	if b.node.IsDisposed() {
		return ErrDisposedNode
	}
	for _, n := range extra {
		if n == nil {
			return missing
		}
		if n.IsDisposed() {
			return ErrDisposedNode
		}
	}
	return nil
}
