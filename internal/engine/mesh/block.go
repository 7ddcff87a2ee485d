package mesh

import (
	gomath "math"

	"github.com/Faultbox/meshview/pkg/math"
)

// Shape is the capability set shared by all renderable blocks: plain
// vertex clouds, triangulated meshes, tetrahedral meshes, and effects.
type Shape interface {
	Base() *Block
	Triangles() []uint32
	SetVertices([]float32) error
}

// Block owns vertex geometry, a set of named Data, and a default
// appearance. Vertices are packed xyz float32 triples. A block is owned by
// exactly one parent context (a scene slot or an effect's parent link);
// back-references from dependents are non-owning.
type Block struct {
	vertices    []float32
	data        []*Data
	environment []Shape

	defaultColor [3]float32
	defaultAlpha float32
	scale        float32
	colors       []float32 // per-vertex RGB appearance layer, may be nil

	sphere      math.Sphere
	sphereDirty bool

	epoch uint64 // bumped on every change a renderer must re-upload

	deps      []Dependent
	observers []func(Change)
}

// initBlock initializes block state in place, validating geometry and data.
func initBlock(b *Block, vertices []float32, data ...*Data) error {
	if len(vertices)%3 != 0 {
		return ErrDimensionMismatch
	}

	b.vertices = vertices
	b.defaultColor = [3]float32{0.7, 0.7, 0.7}
	b.defaultAlpha = 1.0
	b.scale = 1.0
	b.sphereDirty = true

	for _, d := range data {
		if err := b.AddData(d); err != nil {
			return err
		}
	}
	return nil
}

// NewBlock creates a block from packed vertices and optional data groups.
// Fails with ErrDimensionMismatch if the vertex length is not divisible by
// 3 or any data component does not match the vertex count.
func NewBlock(vertices []float32, data ...*Data) (*Block, error) {
	b := &Block{}
	if err := initBlock(b, vertices, data...); err != nil {
		return nil, err
	}
	return b, nil
}

// Base returns the block itself; satisfies Shape for embedding.
func (b *Block) Base() *Block { return b }

// Triangles returns nil; a bare block has no connectivity.
func (b *Block) Triangles() []uint32 { return nil }

// VertexCount returns the number of xyz triples.
func (b *Block) VertexCount() int { return len(b.vertices) / 3 }

// Vertices returns the live packed vertex buffer.
func (b *Block) Vertices() []float32 { return b.vertices }

// SetVertices replaces the geometry wholesale. Fails with
// ErrDimensionMismatch if the length is not divisible by 3 or attached data
// no longer match the new vertex count. The bounding sphere is invalidated
// and dependents are notified.
func (b *Block) SetVertices(vertices []float32) error {
	if len(vertices)%3 != 0 {
		return ErrDimensionMismatch
	}
	count := len(vertices) / 3
	for _, d := range b.data {
		for _, c := range d.components {
			if c.ValueCount() != count {
				return ErrDimensionMismatch
			}
		}
	}

	b.vertices = vertices
	b.sphereDirty = true
	b.commit(Change{Prop: PropVertices})
	return nil
}

// Data returns the attached data groups.
func (b *Block) Data() []*Data { return b.data }

// DataByName returns the data group with the given name, or nil.
func (b *Block) DataByName(name string) *Data {
	for _, d := range b.data {
		if d.name == name {
			return d
		}
	}
	return nil
}

// AddData attaches a data group. Names must be unique per block and every
// component must match the vertex count.
func (b *Block) AddData(d *Data) error {
	if b.DataByName(d.name) != nil {
		return ErrDuplicateData
	}
	for _, c := range d.components {
		if c.ValueCount() != b.VertexCount() {
			return ErrDimensionMismatch
		}
	}
	b.data = append(b.data, d)
	d.attach(b)
	b.commit(Change{Prop: PropData, Data: d.name})
	return nil
}

// SetData replaces the whole data set. Used by effects rebuilding their
// output. Same validation as AddData.
func (b *Block) SetData(data ...*Data) error {
	seen := make(map[string]bool, len(data))
	for _, d := range data {
		if seen[d.name] {
			return ErrDuplicateData
		}
		seen[d.name] = true
		for _, c := range d.components {
			if c.ValueCount() != b.VertexCount() {
				return ErrDimensionMismatch
			}
		}
	}

	for _, d := range b.data {
		d.detach(b)
	}
	b.data = data
	for _, d := range data {
		d.attach(b)
	}
	b.commit(Change{Prop: PropData})
	return nil
}

// DefaultColor returns the fallback RGB color.
func (b *Block) DefaultColor() [3]float32 { return b.defaultColor }

// SetDefaultColor sets the fallback RGB color. Pure appearance change.
func (b *Block) SetDefaultColor(color [3]float32) {
	b.defaultColor = color
	b.commit(Change{Prop: PropDefaultColor})
}

// DefaultAlpha returns the opacity in [0,1].
func (b *Block) DefaultAlpha() float32 { return b.defaultAlpha }

// SetDefaultAlpha sets the opacity. Pure appearance change.
func (b *Block) SetDefaultAlpha(alpha float32) {
	b.defaultAlpha = alpha
	b.commit(Change{Prop: PropDefaultAlpha})
}

// Scale returns the uniform scale applied by the owning scene.
func (b *Block) Scale() float32 { return b.scale }

// SetScale sets the uniform scale.
func (b *Block) SetScale(scale float32) {
	b.scale = scale
	b.commit(Change{Prop: PropScale})
}

// Colors returns the per-vertex RGB buffer, or nil when the default color
// applies.
func (b *Block) Colors() []float32 { return b.colors }

// SetColors installs a per-vertex RGB buffer (3 values per vertex), or nil
// to fall back to the default color.
func (b *Block) SetColors(colors []float32) error {
	if colors != nil && len(colors) != b.VertexCount()*3 {
		return ErrDimensionMismatch
	}
	b.colors = colors
	b.commit(Change{Prop: PropColors})
	return nil
}

// BoundingSphere returns the bounding sphere of the current vertices,
// recomputed lazily after geometry changes.
func (b *Block) BoundingSphere() math.Sphere {
	if b.sphereDirty {
		b.sphere = math.BoundingSphere(b.vertices)
		b.sphereDirty = false
	}
	return b.sphere
}

// BoundingSphereRadius returns the bounding sphere radius.
func (b *Block) BoundingSphereRadius() float32 {
	return b.BoundingSphere().Radius
}

// Epoch returns the revision counter renderers use to detect stale GPU
// buffers.
func (b *Block) Epoch() uint64 { return b.epoch }

// AddDependent registers a dependent notified after each committed change.
func (b *Block) AddDependent(dep Dependent) {
	b.deps = append(b.deps, dep)
}

// RemoveDependent unregisters a dependent.
func (b *Block) RemoveDependent(dep Dependent) {
	for i, d := range b.deps {
		if d == dep {
			b.deps = append(b.deps[:i], b.deps[i+1:]...)
			return
		}
	}
}

// OnChange registers a callback invoked after each committed change. This
// is the hook a host binding wires attribute-sync events to.
func (b *Block) OnChange(fn func(Change)) {
	b.observers = append(b.observers, fn)
}

// Publish commits an externally-driven property change: dependents first,
// then observers. Effects use it for their own parameter properties.
func (b *Block) Publish(ch Change) {
	b.commit(ch)
}

// AddEnvironment attaches an environment mesh used for distance queries.
func (b *Block) AddEnvironment(s Shape) {
	b.environment = append(b.environment, s)
}

// Environment returns the attached environment meshes.
func (b *Block) Environment() []Shape { return b.environment }

// EnvironmentDistance returns the distance from p to the nearest vertex of
// any environment mesh, or +Inf when none are attached.
func (b *Block) EnvironmentDistance(p math.Vec3) float32 {
	min := float32(gomath.Inf(1))
	for _, env := range b.environment {
		verts := env.Base().Vertices()
		for i := 0; i+2 < len(verts); i += 3 {
			d := p.Distance(math.Vec3{X: verts[i], Y: verts[i+1], Z: verts[i+2]})
			if d < min {
				min = d
			}
		}
	}
	return min
}

// commit finalizes a mutation: bump the render epoch where the change
// affects uploaded buffers, then notify dependents and observers in order.
func (b *Block) commit(ch Change) {
	switch ch.Prop {
	case PropVertices, PropConnectivity, PropColors, PropDefaultColor:
		b.epoch++
	}
	for _, dep := range b.deps {
		dep.ParentChanged(ch)
	}
	for _, fn := range b.observers {
		fn(ch)
	}
}

// validateIndices checks that every index addresses a valid vertex and the
// index count is a multiple of stride.
func validateIndices(indices []uint32, stride, vertexCount int) error {
	if len(indices)%stride != 0 {
		return ErrDimensionMismatch
	}
	for _, idx := range indices {
		if int(idx) >= vertexCount {
			return ErrIndexOutOfRange
		}
	}
	return nil
}
