package loom

// ResolveOption configures a single Resolve call.
type ResolveOption interface {
	applyResolve(*resolveConfig)
}

// resolveConfig carries caller-supplied overrides for one resolution.
// Overrides apply only to the outermost construction; recursive
// parameter resolution never sees them.
type resolveConfig struct {
	args  []any
	named map[string]any
}

// resolveOptionFunc is a function adapter for ResolveOption.
type resolveOptionFunc func(*resolveConfig)

func (f resolveOptionFunc) applyResolve(c *resolveConfig) { f(c) }

// WithArgs supplies positional overrides. args[i] is used verbatim for
// the i-th constructor parameter in declaration order; no further
// resolution is attempted for covered positions.
//
// Example:
//
//	repo, err := loom.Resolve[*Repo](c, loom.WithArgs(conn))
func WithArgs(args ...any) ResolveOption {
	return resolveOptionFunc(func(c *resolveConfig) {
		c.args = append(c.args, args...)
	})
}

// WithNamed supplies named overrides keyed by parameter name. A named
// override beats every other resolution source except a positional
// override covering the same parameter.
func WithNamed(named map[string]any) ResolveOption {
	return resolveOptionFunc(func(c *resolveConfig) {
		if c.named == nil {
			c.named = make(map[string]any, len(named))
		}
		for k, v := range named {
			c.named[k] = v
		}
	})
}

// WithNamedArg supplies a single named override.
func WithNamedArg(name string, value any) ResolveOption {
	return resolveOptionFunc(func(c *resolveConfig) {
		if c.named == nil {
			c.named = make(map[string]any, 1)
		}
		c.named[name] = value
	})
}
