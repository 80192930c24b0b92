package factory

import (
	"element-autodoc/internal/universe"
)

// Descriptor is the resolved factory of one model. It is not modified
// after Resolve returns it.
type Descriptor struct {
	kind     Kind
	member   *universe.Member
	data     *universe.Declaration
	children map[string]*universe.Param
	keys     []string
}

// Child links a child key to the constructor parameter it resolves to.
type Child struct {
	Key   string
	Param *universe.Param
}

// NewDescriptor builds a Descriptor. Children must have unique keys; their
// order is kept.
func NewDescriptor(kind Kind, member *universe.Member, data *universe.Declaration, children []Child) *Descriptor {
	d := &Descriptor{
		kind:     kind,
		member:   member,
		data:     data,
		children: make(map[string]*universe.Param, len(children)),
		keys:     make([]string, 0, len(children)),
	}

	for _, c := range children {
		if _, dup := d.children[c.Key]; dup {
			continue
		}

		d.children[c.Key] = c.Param
		d.keys = append(d.keys, c.Key)
	}

	return d
}

// Kind returns the factory shape.
func (d *Descriptor) Kind() Kind { return d.kind }

// Member returns the factory operation.
func (d *Descriptor) Member() *universe.Member { return d.member }

// DataCarrier returns the declaration supplying the model's parameters,
// or nil when the model takes none.
func (d *Descriptor) DataCarrier() *universe.Declaration { return d.data }

// Child returns the parameter mapped to key.
func (d *Descriptor) Child(key string) (*universe.Param, bool) {
	p, ok := d.children[key]
	return p, ok
}

// ChildKeys returns the child keys in parameter order.
func (d *Descriptor) ChildKeys() []string {
	return append([]string(nil), d.keys...)
}
