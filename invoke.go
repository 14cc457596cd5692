package loom

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Invoke calls fn, resolving each parameter by its declared type
// through the container. Results are returned in order; if fn's last
// result is a non-nil error it is returned as the error instead.
//
// Example:
//
//	_, err := c.Invoke(func(repo *Repo, logger *zap.Logger) error {
//	    return repo.Migrate()
//	})
func (c *Container) Invoke(fn any) ([]any, error) {
	fnValue := reflect.ValueOf(fn)
	if !fnValue.IsValid() || fnValue.Kind() != reflect.Func {
		return nil, fmt.Errorf("loom: Invoke requires a function, got %T", fn)
	}

	fnType := fnValue.Type()
	if fnType.IsVariadic() {
		return nil, fmt.Errorf("loom: Invoke does not support variadic functions")
	}

	args := make([]reflect.Value, fnType.NumIn())
	for i := range args {
		paramType := fnType.In(i)

		instance, err := c.resolver.resolveKey(KeyOf(paramType), nil, nil)
		if err != nil {
			return nil, err
		}

		if instance == nil {
			args[i] = reflect.Zero(paramType)
			continue
		}

		value := reflect.ValueOf(instance)
		if !value.Type().AssignableTo(paramType) {
			return nil, &ResolveError{
				Target: paramType.String(),
				Reason: fmt.Sprintf("bound value has type %T", instance),
			}
		}

		args[i] = value
	}

	outs := fnValue.Call(args)

	results := make([]any, 0, len(outs))
	var callErr error

	for i, out := range outs {
		if i == len(outs)-1 && fnType.Out(i) == errorType {
			if !out.IsNil() {
				callErr = out.Interface().(error)
			}
			continue
		}

		results = append(results, out.Interface())
	}

	return results, callErr
}
