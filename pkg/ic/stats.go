package ic

import (
	"fmt"
	"io"
	"sync/atomic"
)

// Stats is a point-in-time snapshot of one driver's cache activity. Every
// access tallies as exactly one hit or one miss: an access that rewrites the
// chain and then resolves through the new entry is a miss only.
type Stats struct {
	Hits        uint64 // accesses resolved without a rewrite
	Misses      uint64 // accesses that forced a rewrite
	GenericHits uint64 // subset of Hits served by the generic dispatcher
	Installs    uint64 // specializations appended (or superseded in place)
	Collapses   uint64 // whole-chain replacements by the generic entry
}

// HitRate returns hits over total accesses, 0 when idle.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// counters holds the live atomic tallies behind Stats. Drivers are shared
// across goroutines, so plain increments would race.
type counters struct {
	hits        atomic.Uint64
	misses      atomic.Uint64
	genericHits atomic.Uint64
	installs    atomic.Uint64
	collapses   atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		GenericHits: c.genericHits.Load(),
		Installs:    c.installs.Load(),
		Collapses:   c.collapses.Load(),
	}
}

// PrintStats writes a human-readable summary of the driver's cache state and
// hit statistics for debugging.
func (d *Driver) PrintStats(w io.Writer) {
	stats := d.Stats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		fmt.Fprintf(w, "IC Stats: No cache activity\n")
		return
	}
	fmt.Fprintf(w, "IC Stats: Total: %d, Hits: %d (%.1f%%), Misses: %d\n",
		total, stats.Hits, stats.HitRate()*100.0, stats.Misses)

	ch := d.chain.Load()
	stateStr := ch.state().String()
	if ch.state() == ChainSpecialized {
		stateStr = fmt.Sprintf("SPECIALIZED(%d)", ch.depth)
	}
	fmt.Fprintf(w, "  Chain: %s", stateStr)
	for i := 0; i < ch.depth; i++ {
		fmt.Fprintf(w, " [%s]", ch.specs[i].describe())
	}
	fmt.Fprintf(w, "\n  Installs: %d, Collapses: %d, Generic hits: %d\n",
		stats.Installs, stats.Collapses, stats.GenericHits)
}
