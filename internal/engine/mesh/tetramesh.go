package mesh

// TetraMesh is a block with tetrahedral connectivity plus an assigned
// surface triangulation for display. The surface is supplied by the caller
// rather than derived on every change; BoundaryTriangles computes one when
// wanted.
type TetraMesh struct {
	Block
	triangles  []uint32 // visible surface
	tetrahedra []uint32
}

// NewTetraMesh creates a volumetric mesh. The tetrahedron index count must
// be a multiple of 4, the triangle count a multiple of 3, and every index
// must address a valid vertex.
func NewTetraMesh(vertices []float32, triangles, tetrahedra []uint32, data ...*Data) (*TetraMesh, error) {
	m := &TetraMesh{}
	if err := initBlock(&m.Block, vertices, data...); err != nil {
		return nil, err
	}
	if err := validateIndices(triangles, 3, m.VertexCount()); err != nil {
		return nil, err
	}
	if err := validateIndices(tetrahedra, 4, m.VertexCount()); err != nil {
		return nil, err
	}
	m.triangles = triangles
	m.tetrahedra = tetrahedra
	return m, nil
}

// Base returns the underlying block.
func (m *TetraMesh) Base() *Block { return &m.Block }

// Triangles returns the surface triangulation.
func (m *TetraMesh) Triangles() []uint32 { return m.triangles }

// Tetrahedra returns the tetrahedron index buffer.
func (m *TetraMesh) Tetrahedra() []uint32 { return m.tetrahedra }

// SetTriangles replaces the surface triangulation.
func (m *TetraMesh) SetTriangles(triangles []uint32) error {
	if err := validateIndices(triangles, 3, m.VertexCount()); err != nil {
		return err
	}
	m.triangles = triangles
	m.commit(Change{Prop: PropConnectivity})
	return nil
}

// SetTetrahedra replaces the volumetric connectivity.
func (m *TetraMesh) SetTetrahedra(tetrahedra []uint32) error {
	if err := validateIndices(tetrahedra, 4, m.VertexCount()); err != nil {
		return err
	}
	m.tetrahedra = tetrahedra
	m.commit(Change{Prop: PropConnectivity})
	return nil
}

// SetVertices replaces the geometry. Fails with ErrIndexOutOfRange if any
// existing triangle or tetrahedron index would exceed the new vertex count.
func (m *TetraMesh) SetVertices(vertices []float32) error {
	if len(vertices)%3 != 0 {
		return ErrDimensionMismatch
	}
	count := len(vertices) / 3
	if err := validateIndices(m.triangles, 3, count); err != nil {
		return err
	}
	if err := validateIndices(m.tetrahedra, 4, count); err != nil {
		return err
	}
	return m.Block.SetVertices(vertices)
}

// tetFaces lists the four faces of a tetrahedron (a,b,c,d) wound outward
// for a positively oriented cell.
var tetFaces = [4][3]int{
	{0, 2, 1},
	{0, 1, 3},
	{0, 3, 2},
	{1, 2, 3},
}

// BoundaryTriangles extracts the boundary triangulation of a tetrahedron
// set: faces used by exactly one tetrahedron, in first-seen order.
func BoundaryTriangles(tetrahedra []uint32) []uint32 {
	type faceKey [3]uint32

	sortedKey := func(a, b, c uint32) faceKey {
		if a > b {
			a, b = b, a
		}
		if b > c {
			b, c = c, b
		}
		if a > b {
			a, b = b, a
		}
		return faceKey{a, b, c}
	}

	counts := make(map[faceKey]int)
	var order []faceKey
	faces := make(map[faceKey][3]uint32)

	for t := 0; t+3 < len(tetrahedra); t += 4 {
		for _, f := range tetFaces {
			a := tetrahedra[t+f[0]]
			b := tetrahedra[t+f[1]]
			c := tetrahedra[t+f[2]]
			key := sortedKey(a, b, c)
			if counts[key] == 0 {
				order = append(order, key)
				faces[key] = [3]uint32{a, b, c}
			}
			counts[key]++
		}
	}

	var out []uint32
	for _, key := range order {
		if counts[key] == 1 {
			f := faces[key]
			out = append(out, f[0], f[1], f[2])
		}
	}
	return out
}
