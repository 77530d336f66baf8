package ic

// ChainState names the lifecycle stage of an access site's cache: empty,
// holding specialized entries, or collapsed to the generic dispatcher.
type ChainState uint8

const (
	ChainUninitialized ChainState = iota
	ChainSpecialized
	ChainGeneric
)

func (cs ChainState) String() string {
	switch cs {
	case ChainUninitialized:
		return "UNINITIALIZED"
	case ChainSpecialized:
		return "SPECIALIZED"
	case ChainGeneric:
		return "GENERIC"
	default:
		return "UNKNOWN"
	}
}

// chain is one published chain generation. specs is an arena-style
// fixed-capacity array filled up to depth; once a chain is published through
// the driver's atomic slot it is never mutated again; rewrites build a fresh
// chain and swap the pointer. Readers see either the old or the new
// generation, never a partially built one.
type chain struct {
	specs     [maxChainCapacity]specialization
	depth     int
	saturated bool
}

// maxChainCapacity bounds the arena: MaxDepth specialized entries plus the
// one generic slot a collapse installs.
const maxChainCapacity = maxSupportedDepth + 1

var emptyChain = &chain{}

func (c *chain) state() ChainState {
	if c.saturated {
		return ChainGeneric
	}
	if c.depth == 0 {
		return ChainUninitialized
	}
	return ChainSpecialized
}

func (c *chain) hasKind(k SpecKind) bool {
	for i := 0; i < c.depth; i++ {
		if c.specs[i].kind == k {
			return true
		}
	}
	return false
}

// withInstalled returns a new chain generation with spec appended. When the
// new entry is the general index strategy it supersedes an installed fast
// index entry in place instead of growing the chain.
func (c *chain) withInstalled(spec specialization) *chain {
	next := &chain{}
	if spec.kind == SpecArrayIndexGeneral {
		for i := 0; i < c.depth; i++ {
			if c.specs[i].kind == SpecArrayIndexFast {
				*next = *c
				next.specs[i] = spec
				return next
			}
		}
	}
	*next = *c
	next.specs[next.depth] = spec
	next.depth++
	return next
}

// collapsed returns the saturated single-generic chain. The transition is
// one-way: nothing ever rebuilds a specialized chain from it.
func (c *chain) collapsed() *chain {
	next := &chain{depth: 1, saturated: true}
	next.specs[0] = specialization{kind: SpecGeneric}
	return next
}
