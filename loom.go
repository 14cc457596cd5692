// Package loom is a reflection-driven dependency resolution container.
//
// A Container maps resolution keys (Go types and Tokens) to bindings:
// fixed values or zero-argument factories. Resolving a type
// with no binding constructs it structurally: each exported field is a
// constructor parameter satisfied by, in priority order, a caller
// override, a declared default, the first bound token in the field's
// token chain, and finally the field's own type, resolved recursively.
//
//	c := loom.New()
//	conn := &DbConnection{}
//	c.RegisterValue(loom.KeyFor[*DbConnection](), conn)
//	c.RegisterValue(loom.NewToken("UserTable"), "users")
//
//	type Repo struct {
//	    Connection *DbConnection
//	    Table      string `token:"UserTable"`
//	}
//	type App struct {
//	    Repo *Repo
//	}
//
//	app, err := loom.Resolve[*App](c)
//
// Constructed instances are never cached: two resolutions of the same
// unbound type construct two instances. Identity is only stabilized by
// a value binding.
package loom

import "sync"

var (
	defaultOnce      sync.Once
	defaultContainer *Container
)

// Default returns the process-wide container. It is created lazily on
// first use and has the same semantics as any container built with
// New. Independent containers remain fully isolated from it.
func Default() *Container {
	defaultOnce.Do(func() {
		defaultContainer = New()
	})

	return defaultContainer
}
