package loom

import (
	"fmt"
	"sync"
)

// Lazy defers resolution of a key until first access. This is useful
// for dependencies that are expensive to construct or registered after
// the consumer is built.
type Lazy[T any] struct {
	container *Container
	key       Key
	once      sync.Once
	value     T
	err       error
	resolved  bool
}

// NewLazy creates a lazy resolver for the type T.
func NewLazy[T any](c *Container) *Lazy[T] {
	return &Lazy[T]{container: c, key: KeyFor[T]()}
}

// NewLazyToken creates a lazy resolver for a token binding read as T.
func NewLazyToken[T any](c *Container, tok Token) *Lazy[T] {
	return &Lazy[T]{container: c, key: TokenKey(tok)}
}

// Get resolves the key on first call; both value and error are cached
// for every later call.
func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		instance, err := l.container.Resolve(l.key)
		if err != nil {
			l.err = err

			return
		}

		typed, ok := instance.(T)
		if !ok {
			l.err = &ResolveError{
				Target: l.key.String(),
				Reason: fmt.Sprintf("bound value has type %T", instance),
			}

			return
		}

		l.value = typed
		l.resolved = true
	})

	return l.value, l.err
}

// MustGet resolves the key and returns the value, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("loom: lazy %s: %v", l.key, err))
	}

	return value
}

// IsResolved reports whether Get has completed successfully.
func (l *Lazy[T]) IsResolved() bool {
	return l.resolved
}

// Key returns the key the lazy resolves.
func (l *Lazy[T]) Key() Key {
	return l.key
}
