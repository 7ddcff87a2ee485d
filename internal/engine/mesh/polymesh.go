package mesh

// PolyMesh is a block with triangle connectivity.
type PolyMesh struct {
	Block
	triangles []uint32
}

// NewPolyMesh creates a triangulated mesh. The index count must be a
// multiple of 3 and every index must address a valid vertex.
func NewPolyMesh(vertices []float32, triangles []uint32, data ...*Data) (*PolyMesh, error) {
	m := &PolyMesh{}
	if err := initBlock(&m.Block, vertices, data...); err != nil {
		return nil, err
	}
	if err := validateIndices(triangles, 3, m.VertexCount()); err != nil {
		return nil, err
	}
	m.triangles = triangles
	return m, nil
}

// Base returns the underlying block.
func (m *PolyMesh) Base() *Block { return &m.Block }

// Triangles returns the triangle index buffer.
func (m *PolyMesh) Triangles() []uint32 { return m.triangles }

// SetTriangles replaces the connectivity.
func (m *PolyMesh) SetTriangles(triangles []uint32) error {
	if err := validateIndices(triangles, 3, m.VertexCount()); err != nil {
		return err
	}
	m.triangles = triangles
	m.commit(Change{Prop: PropConnectivity})
	return nil
}

// SetVertices replaces the geometry. Fails with ErrIndexOutOfRange if an
// existing triangle index would exceed the new vertex count; the prior
// vertices stay intact.
func (m *PolyMesh) SetVertices(vertices []float32) error {
	if len(vertices)%3 != 0 {
		return ErrDimensionMismatch
	}
	if err := validateIndices(m.triangles, 3, len(vertices)/3); err != nil {
		return err
	}
	return m.Block.SetVertices(vertices)
}

// SetGeometry atomically replaces vertices and connectivity together, for
// rebuilds where both change shape at once.
func (m *PolyMesh) SetGeometry(vertices []float32, triangles []uint32) error {
	if len(vertices)%3 != 0 {
		return ErrDimensionMismatch
	}
	if err := validateIndices(triangles, 3, len(vertices)/3); err != nil {
		return err
	}
	count := len(vertices) / 3
	for _, d := range m.data {
		for _, c := range d.components {
			if c.ValueCount() != count {
				return ErrDimensionMismatch
			}
		}
	}

	m.vertices = vertices
	m.triangles = triangles
	m.sphereDirty = true
	m.commit(Change{Prop: PropVertices})
	return nil
}
