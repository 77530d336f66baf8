package ic

import (
	"sync"
	"sync/atomic"

	"propcache/pkg/key"
	"propcache/pkg/value"
)

// Driver is the entry point for one static property-access call site. It owns
// the site's specialization chain, evaluates guards in order, rewrites the
// chain on a miss and delegates matched actions to the storage collaborator.
//
// Independent goroutines may invoke the same driver concurrently: guard
// evaluation is read-only against the published chain, and rewrites build a
// fresh generation off to the side, serialize on the driver's mutex and
// publish with a single atomic swap.
type Driver struct {
	store Storage
	cfg   config

	chain atomic.Pointer[chain]
	mu    sync.Mutex // serializes chain rewrites

	stats counters
}

// NewDriver constructs a driver bound to a storage engine and fixed mode
// flags. The chain starts empty; the first access installs its first
// specialization.
func NewDriver(store Storage, opts ...Option) *Driver {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	d := &Driver{store: store, cfg: cfg}
	d.chain.Store(emptyChain)
	return d
}

// Strict reports whether assignment failures surface as errors.
func (d *Driver) Strict() bool { return d.cfg.strict }

// DefineOwn reports whether writes always define fresh own data properties.
func (d *Driver) DefineOwn() bool { return d.cfg.defineOwn }

// MaxDepth returns the chain's specialized-entry bound.
func (d *Driver) MaxDepth() int { return d.cfg.maxDepth }

// State returns the chain's current lifecycle state.
func (d *Driver) State() ChainState { return d.chain.Load().state() }

// Depth returns the number of installed entries, including the generic one
// after a collapse.
func (d *Driver) Depth() int { return d.chain.Load().depth }

// Kinds returns the installed specialization kinds in evaluation order.
func (d *Driver) Kinds() []SpecKind {
	ch := d.chain.Load()
	kinds := make([]SpecKind, ch.depth)
	for i := 0; i < ch.depth; i++ {
		kinds[i] = ch.specs[i].kind
	}
	return kinds
}

// Stats returns a snapshot of the driver's cache counters.
func (d *Driver) Stats() Stats { return d.stats.snapshot() }

// ExecuteSet performs target[key] = v with receiver = target.
func (d *Driver) ExecuteSet(target, rawKey, v value.Value) error {
	return d.ExecuteSetWith(target, target, rawKey, v)
}

// ExecuteSetWith performs target[key] = v against an explicit receiver. The
// receiver only differs from target when a prior dispatch (typically a proxy
// trap forwarding to its target) supplies the object the assignment logically
// occurs on.
func (d *Driver) ExecuteSetWith(target, receiver, rawKey, v value.Value) error {
	k := key.Classify(rawKey)
	missed := false
	for {
		ch := d.chain.Load()
		for i := 0; i < ch.depth; i++ {
			s := &ch.specs[i]
			if s.guard(d.store, target, k) {
				// An access counts as a hit only when it resolves without a
				// rewrite; the post-rewrite retry was already tallied as the
				// miss that caused it.
				if !missed {
					d.stats.hits.Add(1)
					if s.kind == SpecGeneric {
						d.stats.genericHits.Add(1)
					}
				}
				return d.applySet(s, target, receiver, rawKey, k, v)
			}
		}
		if !missed {
			d.stats.misses.Add(1)
			missed = true
		}
		d.rewrite(ch, target, k)
		// Retry against the freshly published chain. The loop is bounded:
		// every rewrite makes the chain strictly more general, and the
		// generic entry matches everything.
	}
}

// ExecuteGet performs target[key] with receiver = target.
func (d *Driver) ExecuteGet(target, rawKey value.Value) (value.Value, error) {
	return d.ExecuteGetWith(target, target, rawKey)
}

// ExecuteGetWith performs target[key] against an explicit receiver. Missing
// properties read as undefined without error.
func (d *Driver) ExecuteGetWith(target, receiver, rawKey value.Value) (value.Value, error) {
	k := key.Classify(rawKey)
	missed := false
	for {
		ch := d.chain.Load()
		for i := 0; i < ch.depth; i++ {
			s := &ch.specs[i]
			if s.guard(d.store, target, k) {
				if !missed {
					d.stats.hits.Add(1)
					if s.kind == SpecGeneric {
						d.stats.genericHits.Add(1)
					}
				}
				return d.applyGet(s, target, receiver, rawKey, k)
			}
		}
		if !missed {
			d.stats.misses.Add(1)
			missed = true
		}
		d.rewrite(ch, target, k)
	}
}

// applySet runs a matched specialization's write action.
func (d *Driver) applySet(s *specialization, target, receiver value.Value, rawKey value.Value, k key.Key, v value.Value) error {
	switch s.kind {
	case SpecCachedName:
		if d.cfg.defineOwn {
			return d.store.DefineOwnDataProperty(target, k, v)
		}
		return s.accessor.Set(target, v, d.cfg.strict)
	case SpecArrayIndexFast, SpecArrayIndexGeneral:
		return d.setArrayIndex(target, k, v)
	case SpecProxyTarget:
		if d.cfg.defineOwn {
			return d.store.DefineOwnDataProperty(target, k, v)
		}
		return d.store.InvokeSetTrap(target, receiver, k, v)
	case SpecGeneric:
		return d.genericSet(target, receiver, rawKey, v)
	}
	return nil
}

// applyGet runs a matched specialization's read action.
func (d *Driver) applyGet(s *specialization, target, receiver value.Value, rawKey value.Value, k key.Key) (value.Value, error) {
	switch s.kind {
	case SpecCachedName:
		v, _ := s.accessor.Get(target)
		return v, nil
	case SpecArrayIndexFast, SpecArrayIndexGeneral:
		v, _ := d.store.GetIndexed(target, k.Index())
		return v, nil
	case SpecProxyTarget:
		return d.store.InvokeGetTrap(target, receiver, k)
	case SpecGeneric:
		return d.genericGet(target, receiver, rawKey)
	}
	return value.Undefined, nil
}

// setArrayIndex is the shared index-write action. Define-own mode keys the
// fresh property by the index's canonical decimal string; redefining an
// existing index simply overwrites.
func (d *Driver) setArrayIndex(target value.Value, k key.Key, v value.Value) error {
	if d.cfg.defineOwn {
		return d.store.DefineOwnDataProperty(target, k, v)
	}
	return d.store.SetIndexed(target, k.Index(), v, d.cfg.strict)
}

// genericSet is the always-correct fallback: re-derive everything from first
// principles on each call, with no caching assumptions.
func (d *Driver) genericSet(target, receiver, rawKey, v value.Value) error {
	k := key.Classify(rawKey)
	if d.store.IsProxy(target) {
		if d.cfg.defineOwn {
			return d.store.DefineOwnDataProperty(target, k, v)
		}
		return d.store.InvokeSetTrap(target, receiver, k, v)
	}
	if k.IsArrayIndex() {
		return d.setArrayIndex(target, k, v)
	}
	if d.cfg.defineOwn {
		return d.store.DefineOwnDataProperty(target, k, v)
	}
	return d.store.SetNamed(target, k.Name(), v, d.cfg.strict)
}

func (d *Driver) genericGet(target, receiver, rawKey value.Value) (value.Value, error) {
	k := key.Classify(rawKey)
	if d.store.IsProxy(target) {
		return d.store.InvokeGetTrap(target, receiver, k)
	}
	if k.IsArrayIndex() {
		v, _ := d.store.GetIndexed(target, k.Index())
		return v, nil
	}
	v, _ := d.store.GetNamedOwnOrInherited(target, k.Name())
	return v, nil
}

// rewrite performs the install-or-collapse transition after a chain miss.
// prev is the generation the caller evaluated; a concurrent rewrite that
// already replaced it wins, and the caller falls through to the newer chain.
func (d *Driver) rewrite(prev *chain, target value.Value, k key.Key) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cur := d.chain.Load()
	if cur != prev {
		// Lost the race; re-evaluate against the winner's chain.
		return
	}
	if cur.saturated {
		// Generic matches everything; a miss here cannot happen.
		return
	}

	spec := narrowestFor(d.store, target, k)
	if spec.kind == SpecArrayIndexGeneral && cur.hasKind(SpecArrayIndexFast) {
		// Supersede the fast index entry in place; depth is unchanged.
		d.chain.Store(cur.withInstalled(spec))
		d.stats.installs.Add(1)
		return
	}
	if cur.depth < d.cfg.maxDepth {
		d.chain.Store(cur.withInstalled(spec))
		d.stats.installs.Add(1)
		return
	}
	d.chain.Store(cur.collapsed())
	d.stats.collapses.Add(1)
}
