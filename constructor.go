package loom

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Constructor parameters are modeled structurally: a constructible
// type is a struct (or pointer to struct) whose exported fields, in
// declaration order, are the parameters of its constructor. Two struct
// tags refine how a field resolves:
//
//	type Repo struct {
//	    Conn  *DbConnection
//	    Table string `token:"UserTable,DefaultTable"` // token chain, in order
//	    Limit int    `default:"100"`                  // declared default
//	}
//
// Types whose parameters cannot be expressed through tags, such as
// anonymous tokens or composite defaults, register explicit descriptors
// through Container.Describe instead.

// paramSpec describes one constructor parameter.
type paramSpec struct {
	name       string
	typ        reflect.Type
	index      int // struct field index
	hasDefault bool
	defaultVal reflect.Value
	tokens     []Token
}

// specCache caches structural descriptors per type. Tag introspection
// is deterministic for a given type, so the cache is process-wide.
var specCache sync.Map // reflect.Type → []paramSpec

// describeStruct returns the ordered parameter descriptors for a
// struct type. A struct with no exported fields yields an empty
// descriptor list and constructs as its zero value.
func describeStruct(t reflect.Type) ([]paramSpec, error) {
	if cached, ok := specCache.Load(t); ok {
		return cached.([]paramSpec), nil
	}

	var specs []paramSpec

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		spec := paramSpec{
			name:  field.Name,
			typ:   field.Type,
			index: i,
		}

		if tag, ok := field.Tag.Lookup("token"); ok && tag != "" {
			for _, name := range strings.Split(tag, ",") {
				spec.tokens = append(spec.tokens, NewToken(strings.TrimSpace(name)))
			}
		}

		if tag, ok := field.Tag.Lookup("default"); ok {
			value, err := parseDefault(field.Type, tag)
			if err != nil {
				return nil, fmt.Errorf("loom: field %s of %s: %w", field.Name, t, err)
			}

			spec.hasDefault = true
			spec.defaultVal = value
		}

		specs = append(specs, spec)
	}

	specCache.Store(t, specs)

	return specs, nil
}

// parseDefault converts a default tag to a value of the field's type.
// Only scalar kinds are supported; composite defaults go through
// Container.Describe.
func parseDefault(t reflect.Type, raw string) (reflect.Value, error) {
	v := reflect.New(t).Elem()

	switch t.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid default %q: %w", raw, err)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid default %q: %w", raw, err)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid default %q: %w", raw, err)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid default %q: %w", raw, err)
		}
		v.SetFloat(f)
	default:
		return reflect.Value{}, fmt.Errorf("default tag unsupported for kind %s", t.Kind())
	}

	return v, nil
}

// ParamSpec declares one constructor parameter explicitly. It is the
// registration fallback for parameters that struct tags cannot
// express, such as anonymous token chains.
//
// Example:
//
//	secret := loom.AnonymousToken()
//	c.RegisterValue(secret, "s3cr3t")
//	c.Describe(loom.KeyFor[Vault](),
//	    loom.Param("Passphrase").Tokens(secret),
//	    loom.Param("Rounds").Default(12),
//	)
type ParamSpec struct {
	name       string
	defaultVal any
	hasDefault bool
	tokens     []Token
}

// Param starts an explicit descriptor for the exported field name.
func Param(name string) ParamSpec {
	return ParamSpec{name: name}
}

// Default attaches a declared default value.
func (p ParamSpec) Default(value any) ParamSpec {
	p.defaultVal = value
	p.hasDefault = true

	return p
}

// Tokens attaches the parameter's token chain, consulted in the given
// order before the field's declared type.
func (p ParamSpec) Tokens(toks ...Token) ParamSpec {
	p.tokens = append(p.tokens[:len(p.tokens):len(p.tokens)], toks...)

	return p
}

// buildSpecs validates explicit descriptors against the struct type
// and converts them to the internal form. Descriptor order defines
// parameter order; fields not listed are not parameters and stay zero.
func buildSpecs(t reflect.Type, params []ParamSpec) ([]paramSpec, error) {
	specs := make([]paramSpec, 0, len(params))

	for _, p := range params {
		field, ok := t.FieldByName(p.name)
		if !ok || !field.IsExported() {
			return nil, fmt.Errorf("loom: type %s has no exported field %s", t, p.name)
		}

		spec := paramSpec{
			name:   p.name,
			typ:    field.Type,
			index:  field.Index[0],
			tokens: p.tokens,
		}

		if p.hasDefault {
			if p.defaultVal == nil {
				spec.defaultVal = reflect.Zero(field.Type)
			} else {
				dv := reflect.ValueOf(p.defaultVal)
				if !dv.Type().AssignableTo(field.Type) {
					return nil, fmt.Errorf("loom: default for %s.%s: %T is not assignable to %s",
						t, p.name, p.defaultVal, field.Type)
				}
				spec.defaultVal = dv
			}
			spec.hasDefault = true
		}

		specs = append(specs, spec)
	}

	return specs, nil
}
