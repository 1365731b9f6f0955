package sinew

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// resultSlot caches one element's corrections for the current layer.
type resultSlot struct {
	computed bool
	deltas   map[*Node]Delta
}

// System orchestrates every registered group. Build it once after the groups
// are populated, then each tick:
//
//	sys.ResetPose()  // before the animation system runs
//	// ... animation writes local poses ...
//	sys.Solve()      // or sys.Update() from an ebiten game loop
//
// Step wraps the three calls. A System is not safe for concurrent use.
type System struct {
	groups   []*Group
	versions []uint64
	elements []Element
	layers   []layer
	minLayer int

	touched    []*Node
	nodeIndex  map[*Node]int
	defaults   []Pose
	animDeltas []Pose

	slots     []resultSlot
	callbacks []func()
	script    *ScriptRunner

	built bool
	tick  uint64
	debug bool
	stats debugStats
}

// NewSystem creates a system with the given groups in precedence order.
func NewSystem(groups ...*Group) *System {
	s := &System{nodeIndex: make(map[*Node]int)}
	for _, g := range groups {
		s.AddGroup(g)
	}
	return s
}

// AddGroup registers g after the existing groups. The execution plan must be
// rebuilt before the next tick.
func (s *System) AddGroup(g *Group) {
	if g == nil {
		panic("sinew: cannot add nil group")
	}
	for _, existing := range s.groups {
		if existing == g {
			return
		}
	}
	g.index = len(s.groups)
	s.groups = append(s.groups, g)
	s.built = false
}

// Groups returns the registered groups in precedence order. The returned
// slice MUST NOT be mutated by the caller.
func (s *System) Groups() []*Group {
	return s.groups
}

// Group returns the registered group with the given name, or nil.
func (s *System) Group(name string) *Group {
	for _, g := range s.groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// Build constructs the execution plan: elements are collected in group
// order, initialized, partitioned into layers and bucketed per node, and the
// default pose of every touched node is cached. Nodes that were already
// touched by a previous Build keep their original default pose.
func (s *System) Build() error {
	s.built = false
	s.elements = s.elements[:0]
	seen := make(map[Element]struct{})
	for gi, g := range s.groups {
		g.index = gi
		for ei, e := range g.elements {
			if e == nil {
				return fmt.Errorf("sinew: group %q element %d: %w", g.Name, ei, ErrNilNode)
			}
			b := e.Base()
			if _, dup := seen[e]; dup || (b.owner != nil && b.owner != s) {
				return fmt.Errorf("sinew: group %q element %d: %w", g.Name, ei, ErrElementOwned)
			}
			seen[e] = struct{}{}
			s.elements = append(s.elements, e)
		}
	}
	s.versions = s.versions[:0]
	for gi, g := range s.groups {
		s.versions = append(s.versions, g.version)
		for _, e := range g.elements {
			b := e.Base()
			b.owner = s
			b.group = gi
		}
	}
	for i, e := range s.elements {
		e.Base().slot = i
	}
	for _, e := range s.elements {
		if err := e.Init(); err != nil {
			g := s.groups[e.Base().group]
			return fmt.Errorf("sinew: group %q %T: %w", g.Name, e, err)
		}
	}

	s.layers = buildLayers(s.elements)
	s.minLayer = 0
	if len(s.layers) > 0 {
		s.minLayer = s.layers[0].number
	}

	s.slots = make([]resultSlot, len(s.elements))
	for i, e := range s.elements {
		s.slots[i].deltas = make(map[*Node]Delta, 1+len(e.Base().SideEffects()))
	}

	s.cachePoses()
	for li := range s.layers {
		for bi := range s.layers[li].buckets {
			b := &s.layers[li].buckets[bi]
			idx, ok := s.nodeIndex[b.node]
			if !ok {
				panic(fmt.Sprintf("sinew: bucket node %q not in touched set", b.node.Name))
			}
			b.nodeIdx = idx
		}
	}

	s.built = true
	return nil
}

// mustBuild panics if the plan is stale.
func (s *System) mustBuild(op string) {
	if !s.built || s.groupsChanged() {
		panic("sinew: " + op + " called before Build (or after groups changed)")
	}
}

// groupsChanged reports whether a group gained elements since Build.
func (s *System) groupsChanged() bool {
	for i, g := range s.groups {
		if g.version != s.versions[i] {
			return true
		}
	}
	return false
}

// Replace swaps the registered groups for groups and rebuilds. The touched
// nodes are reset first, so nodes shared with the old plan keep their default
// pose rather than last tick's corrections. On error the old groups are
// restored.
func (s *System) Replace(groups ...*Group) error {
	s.restoreDefaults()
	old := s.groups
	s.release()
	s.groups = nil
	for _, g := range groups {
		s.AddGroup(g)
	}
	err := s.Build()
	if err == nil {
		return nil
	}
	s.release()
	s.groups = nil
	for _, g := range old {
		s.AddGroup(g)
	}
	if rerr := s.Build(); rerr != nil {
		return fmt.Errorf("%w (restoring previous groups: %v)", err, rerr)
	}
	return err
}

// release drops the system's claim on its groups and elements.
func (s *System) release() {
	for _, g := range s.groups {
		g.index = -1
		for _, e := range g.elements {
			if e == nil {
				continue
			}
			if b := e.Base(); b.owner == s {
				b.owner = nil
				b.group = -1
				b.slot = -1
			}
		}
	}
	s.built = false
}

// NumLayers returns the number of layers in the execution plan, including
// empty ones inside the range.
func (s *System) NumLayers() int {
	return len(s.layers)
}

// Tick returns the number of completed Solve calls.
func (s *System) Tick() uint64 {
	return s.tick
}

// OnPostSolve registers fn to run after every Solve, in registration order.
// A nil fn is kept but skipped.
func (s *System) OnPostSolve(fn func()) {
	s.callbacks = append(s.callbacks, fn)
}

// Step runs a whole tick: ResetPose, then animate (may be nil), then Solve.
func (s *System) Step(animate func()) {
	s.ResetPose()
	if animate != nil {
		animate()
	}
	s.Solve()
}

// Update advances group fades and the attached script by one ebiten tick
// and solves. ResetPose must already have run before this tick's animation.
func (s *System) Update() {
	s.UpdateWeights(float32(1.0 / float64(ebiten.TPS())))
	s.Solve()
}

// UpdateWeights advances group fades and the attached script by dt seconds.
func (s *System) UpdateWeights(dt float32) {
	if s.script != nil {
		s.script.step(s)
	}
	for _, g := range s.groups {
		g.Update(dt)
	}
}

// Solve runs the per-tick pipeline on top of the pose the animation system
// wrote since ResetPose.
func (s *System) Solve() {
	s.mustBuild("Solve")

	s.stats = debugStats{}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.captureAnimation()
	s.resetOverridden()

	for li := range s.layers {
		l := &s.layers[li]
		for bi := range l.buckets {
			s.solveBucket(&l.buckets[bi])
		}
		s.reapplyAnimation(li)
		for _, e := range l.elements {
			s.slots[e.Base().slot].computed = false
		}
	}

	if s.debug {
		s.stats.solveTime = time.Since(t0)
		s.debugLog()
	}

	s.tick++
	for _, fn := range s.callbacks {
		if fn != nil {
			fn()
		}
	}
}

// weightOf returns e's effective weight: element weight times group weight.
func (s *System) weightOf(e Element) float64 {
	return s.groups[e.Base().group].effectiveWeight(e)
}

// solveBucket accumulates every active element's correction for the bucket's
// node and applies the result. Each element solves at most once per layer.
func (s *System) solveBucket(b *bucket) {
	acc := IdentityDelta()
	active := false
	for _, e := range b.elements {
		w := s.weightOf(e)
		if w <= 0 {
			continue
		}
		slot := &s.slots[e.Base().slot]
		if !slot.computed {
			clear(slot.deltas)
			e.Solve(w, slot.deltas)
			slot.computed = true
			s.checkDeltas(e, slot.deltas)
			s.stats.solves++
		} else {
			s.stats.cacheHits++
		}
		d, ok := slot.deltas[b.node]
		if !ok {
			continue
		}
		acc = acc.Compose(d)
		active = true
	}
	if !active {
		return
	}
	applyDelta(b.node, acc)
	s.stats.applies++
}

// checkDeltas enforces that a solver only writes nodes it declared.
func (s *System) checkDeltas(e Element, deltas map[*Node]Delta) {
	for n, d := range deltas {
		if !e.Base().touches(n) {
			panic(fmt.Sprintf("sinew: %T wrote undeclared node %q", e, n.Name))
		}
		if s.debug && !finiteDelta(d) {
			debugWarnf("non-finite correction from %T on node %q", e, n.Name)
		}
	}
}

// applyDelta converts a world-space correction into n's local frame and
// writes it.
func applyDelta(n *Node, d Delta) {
	_, parentRot := n.parentWorld()
	parentInv := parentRot.Inverse()
	cur := n.WorldPose()

	pos := n.Position
	if d.Translation != (mgl64.Vec3{}) {
		pos = n.Position.Add(parentInv.Rotate(d.Translation))
	}
	rot := parentInv.Mul(d.Rotation).Mul(cur.Rotation).Normalize()
	n.SetLocalPose(Pose{Position: pos, Rotation: rot})
}

// hasActive reports whether some element in b is active and matches want.
func (s *System) hasActive(b *bucket, want func(*ElementBase) bool) bool {
	for _, e := range b.elements {
		if want(e.Base()) && s.weightOf(e) > 0 {
			return true
		}
	}
	return false
}

func isAdditive(b *ElementBase) bool { return b.Additive }

func resetsPose(b *ElementBase) bool { return b.Additive || b.ForcePoseReset }

// laterAdditive reports whether any layer after the given one re-applies
// animation to n.
func (s *System) laterAdditive(number int, n *Node) bool {
	for li := s.layerIndex(number) + 1; li < len(s.layers); li++ {
		for bi := range s.layers[li].buckets {
			b := &s.layers[li].buckets[bi]
			if b.node == n && s.hasActive(b, isAdditive) {
				return true
			}
		}
	}
	return false
}
