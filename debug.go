package sinew

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-tick timing and pipeline counters.
// Only populated when System.debug is true.
type debugStats struct {
	solveTime time.Duration
	resets    int
	solves    int
	cacheHits int
	applies   int
	reapplied int
}

// SetDebug enables per-tick diagnostics on stderr.
func (s *System) SetDebug(enabled bool) {
	s.debug = enabled
}

// debugLog prints timing and pipeline stats to stderr.
func (s *System) debugLog() {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[sinew] tick %d | solve: %v | layers: %d | nodes: %d\n",
		s.tick, s.stats.solveTime, len(s.layers), len(s.touched))
	_, _ = fmt.Fprintf(os.Stderr,
		"[sinew] resets: %d | solves: %d | cache hits: %d | applies: %d | reapplied: %d\n",
		s.stats.resets, s.stats.solves, s.stats.cacheHits, s.stats.applies, s.stats.reapplied)
}

// debugWarnf prints a warning to stderr.
func debugWarnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[sinew] warning: "+format+"\n", args...)
}
