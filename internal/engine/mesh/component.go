// Package mesh implements the field data model: named per-vertex components
// grouped into Data, owned by renderable blocks (plain, triangulated, or
// tetrahedral). Blocks notify registered dependents and observers after each
// committed mutation.
package mesh

import "fmt"

// Component is a named numeric field attached to mesh vertices. The array
// holds arity values per vertex (1 for scalars, 3 for vectors).
type Component struct {
	name  string
	arity int
	array []float32
	data  *Data // owning group, set by NewData
}

// NewComponent creates a component with the given arity.
// Fails with ErrDimensionMismatch if the array length is not a multiple of
// the arity.
func NewComponent(name string, arity int, array []float32) (*Component, error) {
	if arity != 1 && arity != 3 {
		return nil, fmt.Errorf("%w: arity %d", ErrDimensionMismatch, arity)
	}
	if len(array)%arity != 0 {
		return nil, fmt.Errorf("%w: %d values with arity %d", ErrDimensionMismatch, len(array), arity)
	}
	return &Component{name: name, arity: arity, array: array}, nil
}

// NewScalarComponent creates an arity-1 component.
func NewScalarComponent(name string, array []float32) *Component {
	c, _ := NewComponent(name, 1, array)
	return c
}

// Name returns the component name.
func (c *Component) Name() string { return c.name }

// Arity returns values per vertex (1 or 3).
func (c *Component) Arity() int { return c.arity }

// Array returns the live backing array, not a copy. Callers must not retain
// the reference across a ReplaceArray.
func (c *Component) Array() []float32 { return c.array }

// ValueCount returns the number of per-vertex entries.
func (c *Component) ValueCount() int { return len(c.array) / c.arity }

// ReplaceArray swaps the backing array in place. Fails with
// ErrDimensionMismatch if the new length is not a multiple of the arity or
// does not match the vertex count of any block currently holding the owning
// Data. Owning blocks are notified after the swap.
func (c *Component) ReplaceArray(newArray []float32) error {
	if len(newArray)%c.arity != 0 {
		return fmt.Errorf("%w: %d values with arity %d", ErrDimensionMismatch, len(newArray), c.arity)
	}
	if c.data != nil {
		count := len(newArray) / c.arity
		for _, b := range c.data.owners {
			if count != b.VertexCount() {
				return fmt.Errorf("%w: %d entries for %d vertices", ErrDimensionMismatch, count, b.VertexCount())
			}
		}
	}

	c.array = newArray

	if c.data != nil {
		for _, b := range c.data.owners {
			b.commit(Change{Prop: PropData, Data: c.data.name})
		}
	}
	return nil
}

// Data groups related components (e.g. velocity x/y/z) under one logical
// field name. The component set is fixed after construction; individual
// component arrays may be replaced.
type Data struct {
	name       string
	components []*Component
	owners     []*Block // blocks holding this data, non-owning
}

// NewData creates a data group and takes ownership of the components.
func NewData(name string, components ...*Component) *Data {
	d := &Data{name: name, components: components}
	for _, c := range components {
		c.data = d
	}
	return d
}

// Name returns the field name.
func (d *Data) Name() string { return d.name }

// Components returns the ordered component sequence.
func (d *Data) Components() []*Component { return d.components }

// Component returns the named component, or nil.
func (d *Data) Component(name string) *Component {
	for _, c := range d.components {
		if c.name == name {
			return c
		}
	}
	return nil
}

// attach registers a block as holding this data.
func (d *Data) attach(b *Block) {
	d.owners = append(d.owners, b)
}

// detach removes a block from the owner list.
func (d *Data) detach(b *Block) {
	for i, owner := range d.owners {
		if owner == b {
			d.owners = append(d.owners[:i], d.owners[i+1:]...)
			return
		}
	}
}
