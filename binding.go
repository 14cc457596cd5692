package loom

import (
	"reflect"
	"sync"
)

// Key addresses a binding in a container. A key names either a Go type
// or a Token; the two kinds never collide.
type Key struct {
	typ reflect.Type
	tok Token
}

// KeyOf returns the key for a reflect.Type.
func KeyOf(t reflect.Type) Key {
	return Key{typ: t}
}

// KeyFor returns the key for the type T.
//
// Example:
//
//	c.RegisterValue(loom.KeyFor[*Database](), db)
func KeyFor[T any]() Key {
	return Key{typ: TypeOf[T]()}
}

// TokenKey returns the key for a token.
func TokenKey(tok Token) Key {
	return Key{tok: tok}
}

// TypeOf returns the reflect.Type of T without requiring a value of T.
// It works for interface types as well as concrete ones.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Type returns the type addressed by the key, or nil for token keys.
func (k Key) Type() reflect.Type {
	return k.typ
}

// isToken reports whether the key addresses a token binding.
func (k Key) isToken() bool {
	return k.typ == nil
}

// String returns a human-readable representation of the key.
func (k Key) String() string {
	if k.typ != nil {
		return k.typ.String()
	}

	return k.tok.String()
}

// Factory produces a value for a binding. It is invoked fresh on every
// resolution of its key; results are never cached by the container.
type Factory func() (any, error)

type bindingKind int

const (
	kindValue bindingKind = iota
	kindFactory
)

// binding is a registered rule for producing a value: either a fixed
// value returned as-is, or a factory invoked per resolution.
type binding struct {
	kind    bindingKind
	value   any
	factory Factory
}

// produce yields the binding's value. Factory errors propagate to the
// caller unmodified.
func (b binding) produce() (any, error) {
	if b.kind == kindFactory {
		return b.factory()
	}

	return b.value, nil
}

// bindingStore maps keys to bindings. Lookups are safe under
// concurrent resolution; a registration racing a resolve has no
// ordering guarantee beyond last-write-wins under the lock.
type bindingStore struct {
	mu       sync.RWMutex
	bindings map[Key]binding
}

func newBindingStore() *bindingStore {
	return &bindingStore{
		bindings: make(map[Key]binding),
	}
}

// set registers a binding, silently replacing any previous binding for
// the key.
func (s *bindingStore) set(key Key, b binding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bindings[key] = b
}

// lookup returns the binding for key, if any. Pure read.
func (s *bindingStore) lookup(key Key) (binding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bindings[key]

	return b, ok
}
