// Package sinew is a layered inverse-kinematics blending engine for node
// hierarchies driven by an external animation system.
//
// Every tick the animation system writes a local pose onto each joint.
// Sinew then applies corrective IK on top of it: many solvers may touch the
// same joints, parents are always corrected before their children, and each
// joint decides per layer whether the animation's motion is restored,
// suppressed or re-applied on top of the correction.
//
// # Quick start
//
//	hips := sinew.NewNode("hips")
//	head := sinew.NewNode("head")
//	hips.AddChild(head)
//	target := sinew.NewNode("look_target")
//
//	look := sinew.NewAim(head, target, sinew.AxisPosZ, sinew.AxisPosY)
//	sys := sinew.NewSystem(sinew.NewGroup("look", look))
//	if err := sys.Build(); err != nil {
//		log.Fatal(err)
//	}
//
//	// each tick
//	sys.ResetPose()
//	animator.Apply() // writes local poses
//	sys.Solve()
//
// # Elements, groups and layers
//
// An [Element] is one correction: [Aim], [Repose], [TwoJoint] or
// [SiblingAsParent]. Elements live in a [Group], which scales them all by
// its Weight; gameplay activates IK purely by moving group weights, directly
// or with [Group.FadeTo] (tweens via [gween]).
//
// Elements carry a Layer. Lower layers solve and commit first, so a higher
// layer always sees the corrected pose. Within a layer, elements writing the
// same node are blended in group order; rotations compose left to right.
//
// An Additive element keeps the animation: after its layer, the motion the
// animation added this tick is put back on top of the correction. A
// ForcePoseReset element discards the animation on its nodes instead.
//
// Rig descriptions can be loaded from YAML with package rigfile, and the ecs
// submodule bridges post-solve notifications and group weights into a
// [Donburi] world.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package sinew
