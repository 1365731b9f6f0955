package sinew

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Group is an ordered set of elements sharing a weight multiplier. The order
// in which groups are added to a System is their precedence: a later group's
// rotation is composed after an earlier one's on a shared node.
//
// Gameplay drives a group by its Weight, either directly or with FadeTo.
type Group struct {
	Name   string
	Weight float64

	elements []Element
	index    int
	version  uint64
	fade     *gween.Tween
}

// NewGroup creates a group at full weight holding elements in order.
func NewGroup(name string, elements ...Element) *Group {
	return &Group{
		Name:     name,
		Weight:   1,
		elements: append([]Element(nil), elements...),
		index:    -1,
	}
}

// Add appends an element. A System already built with g must be rebuilt
// before its next tick.
func (g *Group) Add(e Element) {
	g.elements = append(g.elements, e)
	g.version++
}

// Elements returns the group's elements. The returned slice MUST NOT be
// mutated by the caller.
func (g *Group) Elements() []Element {
	return g.elements
}

// Index returns the group's registration index in its System, or -1.
func (g *Group) Index() int {
	return g.index
}

// FadeTo tweens Weight from its current value to target over duration
// seconds. A non-positive duration sets the weight immediately.
func (g *Group) FadeTo(target float64, duration float32, fn ease.TweenFunc) {
	target = clampWeight(target)
	if duration <= 0 {
		g.Weight = target
		g.fade = nil
		return
	}
	if fn == nil {
		fn = ease.Linear
	}
	g.fade = gween.New(float32(g.Weight), float32(target), duration, fn)
}

// Fading reports whether a FadeTo is still in progress.
func (g *Group) Fading() bool {
	return g.fade != nil
}

// Update advances an active fade by dt seconds.
func (g *Group) Update(dt float32) {
	if g.fade == nil {
		return
	}
	val, finished := g.fade.Update(dt)
	g.Weight = clampWeight(float64(val))
	if finished {
		g.fade = nil
	}
}

// effectiveWeight is the element weight scaled by its group, in [0, 1].
func (g *Group) effectiveWeight(e Element) float64 {
	return clampWeight(clampWeight(g.Weight) * e.Base().Weight)
}
