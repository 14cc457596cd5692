package loom

import "go.uber.org/multierr"

// Entry holds one binding for batch registration.
type Entry struct {
	key     any
	value   any
	factory Factory
	isValue bool
}

// Value creates a batch entry binding key to a fixed value.
func Value(key any, value any) Entry {
	return Entry{key: key, value: value, isValue: true}
}

// Provide creates a batch entry binding key to a factory.
func Provide(key any, factory Factory) Entry {
	return Entry{key: key, factory: factory}
}

// RegisterAll registers every entry, collecting all failures rather
// than stopping at the first. Entries that register cleanly stay
// registered even when others fail.
//
// Example:
//
//	err := c.RegisterAll(
//	    loom.Value(loom.KeyFor[*Config](), cfg),
//	    loom.Provide(loom.NewToken("RequestID"), newRequestID),
//	)
func (c *Container) RegisterAll(entries ...Entry) error {
	var err error

	for _, e := range entries {
		if e.isValue {
			err = multierr.Append(err, c.RegisterValue(e.key, e.value))
		} else {
			err = multierr.Append(err, c.Register(e.key, e.factory))
		}
	}

	return err
}
