package loom

import (
	"fmt"
	"reflect"
	"sync"
)

// resolver implements the recursive resolution algorithm over a
// binding store. Resolution is synchronous and runs to completion;
// recursion depth follows the dependency graph along the path being
// resolved. Cyclic graphs are not detected and exhaust the stack.
type resolver struct {
	store *bindingStore

	mu        sync.RWMutex
	described map[reflect.Type][]paramSpec
}

func newResolver(store *bindingStore) *resolver {
	return &resolver{
		store:     store,
		described: make(map[reflect.Type][]paramSpec),
	}
}

// describe installs explicit parameter descriptors for a struct type,
// replacing tag introspection for that type on this resolver.
func (r *resolver) describe(t reflect.Type, specs []paramSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.described[t] = specs
}

// specsFor returns explicit descriptors if registered, falling back to
// structural introspection of the struct's exported fields.
func (r *resolver) specsFor(t reflect.Type) ([]paramSpec, error) {
	r.mu.RLock()
	specs, ok := r.described[t]
	r.mu.RUnlock()

	if ok {
		return specs, nil
	}

	return describeStruct(t)
}

// resolveKey is the top-level dispatch. A bound key resolves through
// its binding and is never structurally inspected; an unbound type key
// falls through to construction; an unbound token key fails.
func (r *resolver) resolveKey(key Key, pos []any, named map[string]any) (any, error) {
	if b, ok := r.store.lookup(key); ok {
		return b.produce()
	}

	if key.isToken() {
		return nil, &ResolveError{
			Target: key.String(),
			Reason: "token has no binding",
		}
	}

	return r.construct(key.typ, pos, named)
}

// construct builds an instance of t, resolving each constructor
// parameter in declaration order. Unbound types construct anew on
// every call; only a value binding stabilizes identity.
func (r *resolver) construct(t reflect.Type, pos []any, named map[string]any) (any, error) {
	base := t
	wantPtr := false

	if base.Kind() == reflect.Ptr {
		base = base.Elem()
		wantPtr = true
	}

	if base.Kind() != reflect.Struct {
		return nil, &ResolveError{
			Target: t.String(),
			Reason: "only struct types can be constructed",
		}
	}

	specs, err := r.specsFor(base)
	if err != nil {
		return nil, err
	}

	instance := reflect.New(base)
	fields := instance.Elem()

	for position, spec := range specs {
		value, err := r.resolveParam(base, spec, position, pos, named)
		if err != nil {
			return nil, err
		}

		if err := setField(fields.Field(spec.index), value, spec, base); err != nil {
			return nil, err
		}
	}

	if wantPtr {
		return instance.Interface(), nil
	}

	return fields.Interface(), nil
}

// resolveParam applies the priority chain for one parameter. First
// applicable source wins, with no further checks once one matches:
// caller override, declared default, first bound token in declared
// order, declared type, failure.
func (r *resolver) resolveParam(target reflect.Type, spec paramSpec, position int, pos []any, named map[string]any) (any, error) {
	// (a) Caller override, positional before named.
	if position < len(pos) {
		return pos[position], nil
	}
	if value, ok := named[spec.name]; ok {
		return value, nil
	}

	// (b) Declared default.
	if spec.hasDefault {
		return spec.defaultVal.Interface(), nil
	}

	// (c) Token chain, in declared order. Unbound tokens are skipped,
	// never resolved as types; only a fully unbound chain falls
	// through to the declared type.
	for _, tok := range spec.tokens {
		if b, ok := r.store.lookup(TokenKey(tok)); ok {
			return b.produce()
		}
	}

	// (d) Declared type: bound types short-circuit, struct types
	// recurse with no overrides.
	if b, ok := r.store.lookup(KeyOf(spec.typ)); ok {
		return b.produce()
	}

	elem := spec.typ
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct {
		return r.construct(spec.typ, nil, nil)
	}

	// (e) Failure, naming the parameter and the enclosing type.
	return nil, &ResolveError{
		Param:  spec.name,
		Target: target.String(),
		Reason: fmt.Sprintf("no binding for %s and no override, default, or bound token", spec.typ),
	}
}

// setField assigns a resolved value to its struct field. A nil value
// leaves the field at its zero value.
func setField(field reflect.Value, value any, spec paramSpec, target reflect.Type) error {
	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(field.Type()) {
		return &ResolveError{
			Param:  spec.name,
			Target: target.String(),
			Reason: fmt.Sprintf("value of type %s is not assignable to %s", v.Type(), field.Type()),
		}
	}

	field.Set(v)

	return nil
}
