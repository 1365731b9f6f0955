// Package ecs provides ECS adapters for sinew.
//
// [NewDonburiNotifier] bridges sinew's post-solve callbacks into a [Donburi]
// world as typed events; subscribe to [PostSolveEventType] in your ECS
// systems to receive them. [GroupWeight] lets gameplay entities drive IK
// groups by name; call [SyncGroupWeights] once per tick before solving.
//
// Usage:
//
//	ecs.NewDonburiNotifier(world, sys)
//	entry := world.Entry(world.Create(ecs.GroupWeight))
//	ecs.GroupWeight.SetValue(entry, ecs.GroupWeightData{Group: "look", Weight: 1, FadeSeconds: 0.3})
//
//	// each tick
//	ecs.SyncGroupWeights(world, sys)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
