package sinew

import "github.com/go-gl/mathgl/mgl64"

// refreshWorld recomputes the cached world transform of n (and any dirty
// ancestors) when needed. A node's world transform is
//
//	worldRotation = parent.worldRotation * Rotation
//	worldPosition = parent.worldPosition + parent.worldRotation * Position
func (n *Node) refreshWorld() {
	if !n.transformDirty {
		return
	}
	if n.Parent == nil {
		n.worldPosition = n.Position
		n.worldRotation = n.Rotation.Normalize()
	} else {
		n.Parent.refreshWorld()
		pr := n.Parent.worldRotation
		n.worldPosition = n.Parent.worldPosition.Add(pr.Rotate(n.Position))
		n.worldRotation = pr.Mul(n.Rotation).Normalize()
	}
	n.transformDirty = false
}

// parentWorld returns the parent's world position and rotation, or the
// identity transform for a root node.
func (n *Node) parentWorld() (mgl64.Vec3, mgl64.Quat) {
	if n.Parent == nil {
		return mgl64.Vec3{}, mgl64.QuatIdent()
	}
	n.Parent.refreshWorld()
	return n.Parent.worldPosition, n.Parent.worldRotation
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(p mgl64.Vec3) {
	n.Position = p
	markSubtreeDirty(n)
}

// SetRotation sets the node's local rotation and marks it dirty.
func (n *Node) SetRotation(q mgl64.Quat) {
	n.Rotation = q
	markSubtreeDirty(n)
}

// SetLocalPose sets both local position and rotation.
func (n *Node) SetLocalPose(p Pose) {
	n.Position = p.Position
	n.Rotation = p.Rotation
	markSubtreeDirty(n)
}

// LocalPose returns the node's local position and rotation.
func (n *Node) LocalPose() Pose {
	return Pose{Position: n.Position, Rotation: n.Rotation}
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next world query. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	markSubtreeDirty(n)
}

// --- World space ---

// WorldPosition returns the node's position in world space.
func (n *Node) WorldPosition() mgl64.Vec3 {
	n.refreshWorld()
	return n.worldPosition
}

// WorldRotation returns the node's rotation in world space.
func (n *Node) WorldRotation() mgl64.Quat {
	n.refreshWorld()
	return n.worldRotation
}

// WorldPose returns the node's world position and rotation.
func (n *Node) WorldPose() Pose {
	n.refreshWorld()
	return Pose{Position: n.worldPosition, Rotation: n.worldRotation}
}

// SetWorldPosition moves the node so its world position equals p.
func (n *Node) SetWorldPosition(p mgl64.Vec3) {
	pp, pr := n.parentWorld()
	n.SetPosition(pr.Inverse().Rotate(p.Sub(pp)))
}

// SetWorldRotation rotates the node so its world rotation equals q.
func (n *Node) SetWorldRotation(q mgl64.Quat) {
	_, pr := n.parentWorld()
	n.SetRotation(pr.Inverse().Mul(q).Normalize())
}

// --- Coordinate conversion ---

// LocalToWorld converts a point in this node's local frame to world space.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	n.refreshWorld()
	return n.worldPosition.Add(n.worldRotation.Rotate(p))
}

// WorldToLocal converts a world-space point to this node's local frame.
func (n *Node) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	n.refreshWorld()
	return n.worldRotation.Inverse().Rotate(p.Sub(n.worldPosition))
}
