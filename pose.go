package sinew

// cachePoses collects the union of touched nodes in plan order and caches
// each one's default pose. Default poses survive rebuilds.
func (s *System) cachePoses() {
	previous := make(map[*Node]Pose, len(s.touched))
	for i, n := range s.touched {
		previous[n] = s.defaults[i]
	}

	s.touched = s.touched[:0]
	s.defaults = s.defaults[:0]
	clear(s.nodeIndex)
	for li := range s.layers {
		for _, b := range s.layers[li].buckets {
			if _, ok := s.nodeIndex[b.node]; ok {
				continue
			}
			s.nodeIndex[b.node] = len(s.touched)
			s.touched = append(s.touched, b.node)
			if p, ok := previous[b.node]; ok {
				s.defaults = append(s.defaults, p)
			} else {
				s.defaults = append(s.defaults, b.node.LocalPose())
			}
		}
	}

	s.animDeltas = make([]Pose, len(s.touched))
	for i := range s.animDeltas {
		s.animDeltas[i] = IdentityPose()
	}
}

// ResetPose forces every touched node back to its default pose, undoing the
// previous tick's corrections. Call it before the animation system writes
// this tick's pose. Calling it twice in a row is harmless.
func (s *System) ResetPose() {
	s.mustBuild("ResetPose")
	s.restoreDefaults()
}

// restoreDefaults writes the cached default pose of every node touched by the
// last successful Build.
func (s *System) restoreDefaults() {
	for i, n := range s.touched {
		n.SetLocalPose(s.defaults[i])
	}
}

// captureAnimation records, for each touched node, the local offset the
// animation system applied on top of the default pose this tick.
func (s *System) captureAnimation() {
	for i, n := range s.touched {
		def := s.defaults[i]
		s.animDeltas[i] = Pose{
			Position: n.Position.Sub(def.Position),
			Rotation: def.Rotation.Inverse().Mul(n.Rotation).Normalize(),
		}
	}
}

// resetOverridden discards the animated pose of every node with an active
// additive or force-reset element, in any layer. Nodes without such an
// element keep their animated pose.
func (s *System) resetOverridden() {
	for li := range s.layers {
		for bi := range s.layers[li].buckets {
			b := &s.layers[li].buckets[bi]
			if s.hasActive(b, resetsPose) {
				b.node.SetLocalPose(s.defaults[b.nodeIdx])
				s.stats.resets++
			}
		}
	}
}

// reapplyAnimation adds the captured animation delta back onto nodes with an
// active additive element in layer li, unless a later layer will do it.
func (s *System) reapplyAnimation(li int) {
	l := &s.layers[li]
	for bi := range l.buckets {
		b := &l.buckets[bi]
		if !s.hasActive(b, isAdditive) || s.laterAdditive(l.number, b.node) {
			continue
		}
		d := s.animDeltas[b.nodeIdx]
		n := b.node
		n.SetLocalPose(Pose{
			Position: n.Position.Add(d.Position),
			Rotation: n.Rotation.Mul(d.Rotation).Normalize(),
		})
		s.stats.reapplied++
	}
}

// Touched returns every node the plan writes, in plan order. The returned
// slice MUST NOT be mutated by the caller.
func (s *System) Touched() []*Node {
	return s.touched
}

// DefaultPose returns the cached default pose of n.
func (s *System) DefaultPose(n *Node) (Pose, bool) {
	i, ok := s.nodeIndex[n]
	if !ok {
		return Pose{}, false
	}
	return s.defaults[i], true
}

// AnimationDelta returns the animation offset captured for n on the last
// Solve.
func (s *System) AnimationDelta(n *Node) (Pose, bool) {
	i, ok := s.nodeIndex[n]
	if !ok {
		return Pose{}, false
	}
	return s.animDeltas[i], true
}
