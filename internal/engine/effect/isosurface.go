package effect

import "github.com/Faultbox/meshview/internal/engine/mesh"

// IsoSurface extracts the surface where the bound scalar equals value,
// using marching tetrahedra over the parent's volumetric connectivity.
// The output mesh is topologically independent of the parent. A parent
// without tetrahedra, or a value outside the field's range, yields an
// empty mesh.
type IsoSurface struct {
	Effect
	value float32
}

// NewIsoSurface creates an iso-surface effect over parent at the given
// scalar value.
func NewIsoSurface(parent mesh.Shape, value float32) *IsoSurface {
	s := &IsoSurface{value: value}
	s.init(parent, s.recompute)
	return s
}

// Value returns the extraction level.
func (s *IsoSurface) Value() float32 { return s.value }

// SetValue moves the extraction level and recomputes.
func (s *IsoSurface) SetValue(value float32) {
	s.value = value
	s.Base().Publish(mesh.Change{Prop: mesh.PropParam})
	s.invalidate()
}

// tetEdgeCases maps the 4-bit inside mask of a tetrahedron to the edges
// hosting the intersection points, three per emitted triangle. Quads are
// pre-triangulated. Windings of complementary masks are mirrored.
var tetEdgeCases = [16][][2]int{
	1:  {{0, 1}, {0, 2}, {0, 3}},
	2:  {{1, 0}, {1, 3}, {1, 2}},
	4:  {{2, 0}, {2, 1}, {2, 3}},
	8:  {{3, 0}, {3, 2}, {3, 1}},
	14: {{0, 1}, {0, 3}, {0, 2}},
	13: {{1, 0}, {1, 2}, {1, 3}},
	11: {{2, 0}, {2, 3}, {2, 1}},
	7:  {{3, 0}, {3, 1}, {3, 2}},
	3:  {{0, 2}, {0, 3}, {1, 3}, {0, 2}, {1, 3}, {1, 2}},
	12: {{0, 2}, {1, 3}, {0, 3}, {0, 2}, {1, 2}, {1, 3}},
	5:  {{0, 1}, {2, 1}, {2, 3}, {0, 1}, {2, 3}, {0, 3}},
	10: {{0, 1}, {2, 3}, {2, 1}, {0, 1}, {0, 3}, {2, 3}},
	6:  {{1, 0}, {1, 3}, {2, 3}, {1, 0}, {2, 3}, {2, 0}},
	9:  {{1, 0}, {2, 3}, {1, 3}, {1, 0}, {2, 0}, {2, 3}},
}

// recompute runs marching tetrahedra over the parent.
func (s *IsoSurface) recompute() {
	tm, ok := s.parent.(*mesh.TetraMesh)
	if !ok {
		_ = s.SetColors(nil)
		_ = s.SetGeometry(nil, nil)
		return
	}

	verts := tm.Vertices()
	tets := tm.Tetrahedra()

	var outVerts []float32
	var outTris []uint32

	var corner [4]uint32
	var scalar [4]float32

	for t := 0; t+3 < len(tets); t += 4 {
		mask := 0
		for k := 0; k < 4; k++ {
			corner[k] = tets[t+k]
			scalar[k] = s.scalarAt(int(corner[k]))
			if scalar[k] >= s.value {
				mask |= 1 << k
			}
		}

		edges := tetEdgeCases[mask]
		for _, e := range edges {
			a, b := e[0], e[1]
			sa, sb := scalar[a], scalar[b]
			frac := float32(0.5)
			if sa != sb {
				frac = (s.value - sa) / (sb - sa)
			}

			ia, ib := corner[a]*3, corner[b]*3
			outTris = append(outTris, uint32(len(outVerts)/3))
			outVerts = append(outVerts,
				verts[ia]+(verts[ib]-verts[ia])*frac,
				verts[ia+1]+(verts[ib+1]-verts[ia+1])*frac,
				verts[ia+2]+(verts[ib+2]-verts[ia+2])*frac,
			)
		}
	}

	_ = s.SetColors(nil)
	_ = s.SetGeometry(outVerts, outTris)
}
