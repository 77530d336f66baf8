package ic

const (
	// DefaultMaxDepth is the number of specialized entries a chain may hold
	// before a miss collapses it to the generic dispatcher.
	DefaultMaxDepth = 1

	// maxSupportedDepth caps configurable depth so chain generations stay
	// fixed-size arrays.
	maxSupportedDepth = 8
)

type config struct {
	maxDepth  int
	strict    bool
	defineOwn bool
}

func defaultConfig() config {
	return config{maxDepth: DefaultMaxDepth}
}

// Option configures a Driver at construction. Mode flags are immutable for
// the driver's lifetime.
type Option func(*config)

// WithMaxDepth sets how many specialized entries a chain may hold. Values
// outside [1, 8] are clamped.
func WithMaxDepth(n int) Option {
	return func(c *config) {
		if n < 1 {
			n = 1
		}
		if n > maxSupportedDepth {
			n = maxSupportedDepth
		}
		c.maxDepth = n
	}
}

// WithStrict makes assignment failures surface as errors instead of silent
// no-ops.
func WithStrict(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}

// WithDefineOwn makes every write define a fresh own data property,
// bypassing existing-property semantics. Used for object and array literal
// initialization; such writes throw on failure regardless of strict mode.
func WithDefineOwn(on bool) Option {
	return func(c *config) {
		c.defineOwn = on
	}
}
