package loom

import (
	"fmt"
	"reflect"
)

// Container composes a binding store with the resolver behind a small
// registration and resolution surface. Containers are independent:
// bindings registered on one are invisible to every other, including
// the process-wide Default container.
type Container struct {
	store      *bindingStore
	resolver   *resolver
	middleware *middlewareChain
}

// New creates an empty container.
func New() *Container {
	store := newBindingStore()

	return &Container{
		store:      store,
		resolver:   newResolver(store),
		middleware: newMiddlewareChain(),
	}
}

// RegisterValue binds key to a fixed value. Every resolution of key
// returns the same value, identity preserved. Re-registering a key
// replaces the prior binding without error.
//
// key may be a Token, a Key, or a reflect.Type.
func (c *Container) RegisterValue(key any, value any) error {
	k, err := keyFrom(key)
	if err != nil {
		return err
	}

	c.store.set(k, binding{kind: kindValue, value: value})

	return nil
}

// Register binds key to a zero-argument factory invoked fresh on every
// resolution. Results are never cached; concurrent resolutions of the
// same key may invoke the factory in parallel.
func (c *Container) Register(key any, factory Factory) error {
	if factory == nil {
		return ErrNilFactory
	}

	k, err := keyFrom(key)
	if err != nil {
		return err
	}

	c.store.set(k, binding{kind: kindFactory, factory: factory})

	return nil
}

// RegisterAlias binds key to resolve through target on this container.
// The target is re-resolved on every resolution of key.
func (c *Container) RegisterAlias(key any, target any) error {
	tk, err := keyFrom(target)
	if err != nil {
		return err
	}

	return c.Register(key, func() (any, error) {
		return c.resolver.resolveKey(tk, nil, nil)
	})
}

// Describe registers explicit parameter descriptors for a struct type,
// overriding tag-based introspection for that type on this container.
// Descriptor order defines parameter declaration order; fields not
// listed stay at their zero value.
func (c *Container) Describe(target any, params ...ParamSpec) error {
	k, err := keyFrom(target)
	if err != nil {
		return err
	}

	t := k.Type()
	if t == nil {
		return fmt.Errorf("loom: only struct types can be described, got %s", k)
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("loom: only struct types can be described, got %s", t)
	}

	specs, err := buildSpecs(t, params)
	if err != nil {
		return err
	}

	c.resolver.describe(t, specs)

	return nil
}

// Resolve produces an instance for target, which may be a
// reflect.Type, a Token, or a Key. A bound target resolves through its
// binding; an unbound type constructs structurally, resolving each
// parameter through the priority chain: caller override, declared
// default, first bound token in declared order, declared type.
//
// Callers that know the target type statically should prefer the
// generic Resolve[T] helper.
func (c *Container) Resolve(target any, opts ...ResolveOption) (any, error) {
	key, err := keyFrom(target)
	if err != nil {
		return nil, err
	}

	var cfg resolveConfig
	for _, opt := range opts {
		opt.applyResolve(&cfg)
	}

	if err := c.middleware.beforeResolve(key); err != nil {
		return nil, err
	}

	instance, err := c.resolver.resolveKey(key, cfg.args, cfg.named)

	if mwErr := c.middleware.afterResolve(key, instance, err); mwErr != nil {
		return nil, mwErr
	}

	return instance, err
}

// Use appends middleware invoked around every top-level Resolve call
// on this container. Middleware runs in the order added.
func (c *Container) Use(mw Middleware) {
	c.middleware.add(mw)
}

// keyFrom normalizes the accepted key forms.
func keyFrom(v any) (Key, error) {
	switch k := v.(type) {
	case Key:
		if k.typ == nil && k.tok == (Token{}) {
			return Key{}, fmt.Errorf("loom: zero key")
		}
		return k, nil
	case Token:
		return TokenKey(k), nil
	case reflect.Type:
		if k == nil {
			return Key{}, fmt.Errorf("loom: nil type")
		}
		return KeyOf(k), nil
	case nil:
		return Key{}, fmt.Errorf("loom: key cannot be nil")
	default:
		return Key{}, &ResolveError{
			Target: fmt.Sprintf("%T", v),
			Reason: "keys must be a reflect.Type, Token, or Key",
		}
	}
}
