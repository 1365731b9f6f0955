// Package ecs provides ECS adapters for sinew.
package ecs

import (
	"github.com/phanxgames/sinew"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PostSolveEvent is published after every System.Solve.
type PostSolveEvent struct {
	Tick uint64
}

// PostSolveEventType is the Donburi event type for post-solve notifications.
// Subscribe to this in your ECS systems to react after IK has committed.
var PostSolveEventType = events.NewEventType[PostSolveEvent]()

// NewDonburiNotifier registers a post-solve callback on sys that publishes a
// PostSolveEvent into world. Events are queued; consume them with
// PostSolveEventType.ProcessEvents or events.ProcessAllEvents.
func NewDonburiNotifier(world donburi.World, sys *sinew.System) {
	sys.OnPostSolve(func() {
		PostSolveEventType.Publish(world, PostSolveEvent{Tick: sys.Tick()})
	})
}

// GroupWeightData asks for a named group to move to Weight, fading over
// FadeSeconds when positive.
type GroupWeightData struct {
	Group       string
	Weight      float64
	FadeSeconds float32

	requested float64
	synced    bool
}

// GroupWeight is the component gameplay entities carry to drive IK groups.
var GroupWeight = donburi.NewComponentType[GroupWeightData]()

// SyncGroupWeights pushes every GroupWeight component into the matching
// group of sys. A fade only restarts when the requested weight changes.
// Components naming unknown groups are ignored.
func SyncGroupWeights(world donburi.World, sys *sinew.System) {
	GroupWeight.Each(world, func(entry *donburi.Entry) {
		d := GroupWeight.Get(entry)
		g := sys.Group(d.Group)
		if g == nil {
			return
		}
		if d.synced && d.requested == d.Weight {
			return
		}
		g.FadeTo(d.Weight, d.FadeSeconds, nil)
		d.requested = d.Weight
		d.synced = true
	})
}
