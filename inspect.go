package loom

import "sort"

// BindingKind identifies how a binding produces values.
type BindingKind string

const (
	// KindValue bindings return the same stored value on every
	// resolution.
	KindValue BindingKind = "value"

	// KindFactory bindings invoke their factory fresh on every
	// resolution.
	KindFactory BindingKind = "factory"
)

// BindingInfo describes one registered binding.
type BindingInfo struct {
	Key  string
	Kind BindingKind
}

// Bindings returns a snapshot of all registered bindings, sorted by
// key for stable output.
func (c *Container) Bindings() []BindingInfo {
	c.store.mu.RLock()
	infos := make([]BindingInfo, 0, len(c.store.bindings))
	for key, b := range c.store.bindings {
		kind := KindValue
		if b.kind == kindFactory {
			kind = KindFactory
		}
		infos = append(infos, BindingInfo{Key: key.String(), Kind: kind})
	}
	c.store.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })

	return infos
}

// Has reports whether key has a binding.
func (c *Container) Has(key any) bool {
	k, err := keyFrom(key)
	if err != nil {
		return false
	}

	_, ok := c.store.lookup(k)

	return ok
}
