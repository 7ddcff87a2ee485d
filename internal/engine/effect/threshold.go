package effect

import "github.com/Faultbox/meshview/internal/engine/mesh"

// Threshold retains only the cells of the parent whose bound scalar lies in
// [min,max] at every cell vertex. Kept vertices are compacted into a new
// buffer with remapped indices, and filtered copies of the parent's Data
// ride along. Tetrahedral parents render the boundary of the retained
// cells. An empty effective range yields an empty mesh.
type Threshold struct {
	Effect
	min, max float32
}

// NewThreshold creates a threshold effect over parent with the given range.
func NewThreshold(parent mesh.Shape, min, max float32) *Threshold {
	t := &Threshold{min: min, max: max}
	t.init(parent, t.recompute)
	return t
}

// Min returns the lower bound.
func (t *Threshold) Min() float32 { return t.min }

// Max returns the upper bound.
func (t *Threshold) Max() float32 { return t.max }

// SetMin updates the lower bound and recomputes.
func (t *Threshold) SetMin(min float32) {
	t.min = min
	t.Base().Publish(mesh.Change{Prop: mesh.PropParam})
	t.invalidate()
}

// SetMax updates the upper bound and recomputes.
func (t *Threshold) SetMax(max float32) {
	t.max = max
	t.Base().Publish(mesh.Change{Prop: mesh.PropParam})
	t.invalidate()
}

// SetRange updates both bounds with a single recompute.
func (t *Threshold) SetRange(min, max float32) {
	Batch(func() {
		t.SetMin(min)
		t.SetMax(max)
	})
}

// recompute filters the parent's cells and rebuilds the output.
func (t *Threshold) recompute() {
	pb := t.parent.Base()
	n := pb.VertexCount()

	inRange := make([]bool, n)
	for i := 0; i < n; i++ {
		s := t.scalarAt(i)
		inRange[i] = s >= t.min && s <= t.max
	}

	// Visible triangles of the retained cell set, still in parent indices.
	var kept []uint32
	if tm, ok := t.parent.(*mesh.TetraMesh); ok {
		tets := tm.Tetrahedra()
		var keptTets []uint32
		for c := 0; c+3 < len(tets); c += 4 {
			if inRange[tets[c]] && inRange[tets[c+1]] && inRange[tets[c+2]] && inRange[tets[c+3]] {
				keptTets = append(keptTets, tets[c], tets[c+1], tets[c+2], tets[c+3])
			}
		}
		kept = mesh.BoundaryTriangles(keptTets)
	} else {
		tris := t.parent.Triangles()
		for c := 0; c+2 < len(tris); c += 3 {
			if inRange[tris[c]] && inRange[tris[c+1]] && inRange[tris[c+2]] {
				kept = append(kept, tris[c], tris[c+1], tris[c+2])
			}
		}
	}

	// Compact the referenced vertices and remap indices in first-use order.
	verts := pb.Vertices()
	remap := make(map[uint32]uint32)
	var order []uint32
	outTris := make([]uint32, len(kept))
	var outVerts []float32

	for i, old := range kept {
		idx, seen := remap[old]
		if !seen {
			idx = uint32(len(order))
			remap[old] = idx
			order = append(order, old)
			outVerts = append(outVerts, verts[old*3], verts[old*3+1], verts[old*3+2])
		}
		outTris[i] = idx
	}

	// Filtered copies of the parent's fields, same names and arities.
	var outData []*mesh.Data
	for _, d := range pb.Data() {
		comps := make([]*mesh.Component, 0, len(d.Components()))
		for _, c := range d.Components() {
			arity := c.Arity()
			src := c.Array()
			dst := make([]float32, 0, len(order)*arity)
			for _, old := range order {
				for k := 0; k < arity; k++ {
					dst = append(dst, src[int(old)*arity+k])
				}
			}
			nc, err := mesh.NewComponent(c.Name(), arity, dst)
			if err != nil {
				continue
			}
			comps = append(comps, nc)
		}
		outData = append(outData, mesh.NewData(d.Name(), comps...))
	}

	_ = t.SetColors(nil)
	_ = t.SetData()
	_ = t.SetGeometry(outVerts, outTris)
	_ = t.SetData(outData...)
}
