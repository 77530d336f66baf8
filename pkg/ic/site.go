package ic

import (
	"sync"
	"sync/atomic"
)

// SiteTable holds one driver per static access site, indexed by site id.
// Embedders that compile many property-access sites allocate one table per
// compiled unit and resolve drivers lazily, avoiding a map lookup and
// cache-key hashing on every access.
type SiteTable struct {
	store Storage
	opts  []Option

	mu      sync.Mutex // guards slot creation only
	drivers []atomic.Pointer[Driver]
}

// NewSiteTable creates a table for numSites access sites. All drivers share
// the storage engine and options; each gets its own chain.
func NewSiteTable(store Storage, numSites int, opts ...Option) *SiteTable {
	if numSites < 0 {
		numSites = 0
	}
	return &SiteTable{
		store:   store,
		opts:    opts,
		drivers: make([]atomic.Pointer[Driver], numSites),
	}
}

// Len returns the number of sites the table covers.
func (t *SiteTable) Len() int { return len(t.drivers) }

// Site returns the driver for a site id, creating it on first use. Ids
// outside the table return a throwaway driver so callers without a stable
// site location still get correct (if uncached) behavior.
func (t *SiteTable) Site(id int) *Driver {
	if id < 0 || id >= len(t.drivers) {
		return NewDriver(t.store, t.opts...)
	}
	if d := t.drivers[id].Load(); d != nil {
		return d
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if d := t.drivers[id].Load(); d != nil {
		return d
	}
	d := NewDriver(t.store, t.opts...)
	t.drivers[id].Store(d)
	return d
}

// TotalStats sums the counters of every materialized driver.
func (t *SiteTable) TotalStats() Stats {
	var total Stats
	for i := range t.drivers {
		d := t.drivers[i].Load()
		if d == nil {
			continue
		}
		s := d.Stats()
		total.Hits += s.Hits
		total.Misses += s.Misses
		total.GenericHits += s.GenericHits
		total.Installs += s.Installs
		total.Collapses += s.Collapses
	}
	return total
}
