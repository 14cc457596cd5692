package loom

import "fmt"

// Resolve constructs an instance of T from the container with type
// safety.
func Resolve[T any](c *Container, opts ...ResolveOption) (T, error) {
	var zero T

	instance, err := c.Resolve(TypeOf[T](), opts...)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, &ResolveError{
			Target: TypeOf[T]().String(),
			Reason: fmt.Sprintf("bound value has type %T", instance),
		}
	}

	return typed, nil
}

// Must resolves T or panics. Intended for startup wiring.
func Must[T any](c *Container, opts ...ResolveOption) T {
	instance, err := Resolve[T](c, opts...)
	if err != nil {
		panic(fmt.Sprintf("loom: failed to resolve %s: %v", TypeOf[T](), err))
	}

	return instance
}

// ResolveToken resolves a token's binding as T.
func ResolveToken[T any](c *Container, tok Token) (T, error) {
	var zero T

	instance, err := c.Resolve(tok)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, &ResolveError{
			Target: tok.String(),
			Reason: fmt.Sprintf("bound value has type %T, not %s", instance, TypeOf[T]()),
		}
	}

	return typed, nil
}

// RegisterValueFor binds the type T to a fixed value.
//
// Example:
//
//	loom.RegisterValueFor(c, &Database{})
func RegisterValueFor[T any](c *Container, value T) error {
	return c.RegisterValue(KeyFor[T](), value)
}

// RegisterFor binds the type T to a typed factory.
func RegisterFor[T any](c *Container, factory func() (T, error)) error {
	if factory == nil {
		return ErrNilFactory
	}

	return c.Register(KeyFor[T](), func() (any, error) {
		return factory()
	})
}

// RegisterAliasFor binds the type T to resolve through the type U.
// Useful for binding an interface to a concrete implementation.
func RegisterAliasFor[T, U any](c *Container) error {
	return c.RegisterAlias(KeyFor[T](), KeyFor[U]())
}
