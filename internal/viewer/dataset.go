package viewer

import (
	gomath "math"

	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/pkg/formats"
)

// cubeTets splits a unit cube into six tetrahedra around the 0-7 diagonal.
// Corner order: x fastest, then y, then z.
var cubeTets = [6][4]int{
	{0, 1, 3, 7},
	{0, 3, 2, 7},
	{0, 2, 6, 7},
	{0, 6, 4, 7},
	{0, 4, 5, 7},
	{0, 5, 1, 7},
}

// DemoDataset builds the built-in sample: an n*n*n tetrahedral grid over
// [-1,1]^3 carrying a "pressure" scalar and a "velocity" vector field.
func DemoDataset(n int) (*mesh.TetraMesh, error) {
	if n < 2 {
		n = 2
	}

	verts := make([]float32, 0, n*n*n*3)
	pressure := make([]float32, 0, n*n*n)
	vx := make([]float32, 0, n*n*n)
	vy := make([]float32, 0, n*n*n)
	vz := make([]float32, 0, n*n*n)

	step := 2.0 / float64(n-1)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				x := -1 + float64(i)*step
				y := -1 + float64(j)*step
				z := -1 + float64(k)*step
				verts = append(verts, float32(x), float32(y), float32(z))

				// Radially symmetric pressure with an angular ripple.
				r := gomath.Sqrt(x*x + y*y + z*z)
				pressure = append(pressure, float32(r+0.2*gomath.Sin(3*x)*gomath.Cos(3*y)))

				// Rotational flow around the z axis.
				vx = append(vx, float32(-y))
				vy = append(vy, float32(x))
				vz = append(vz, float32(0.5*z))
			}
		}
	}

	corner := func(i, j, k int) uint32 {
		return uint32((k*n+j)*n + i)
	}

	var tets []uint32
	for k := 0; k < n-1; k++ {
		for j := 0; j < n-1; j++ {
			for i := 0; i < n-1; i++ {
				var c [8]uint32
				for b := 0; b < 8; b++ {
					c[b] = corner(i+b&1, j+b>>1&1, k+b>>2&1)
				}
				for _, t := range cubeTets {
					tets = append(tets, c[t[0]], c[t[1]], c[t[2]], c[t[3]])
				}
			}
		}
	}

	data := []*mesh.Data{
		mesh.NewData("pressure", mesh.NewScalarComponent("p", pressure)),
		mesh.NewData("velocity",
			mesh.NewScalarComponent("x", vx),
			mesh.NewScalarComponent("y", vy),
			mesh.NewScalarComponent("z", vz),
		),
	}

	return mesh.NewTetraMesh(verts, mesh.BoundaryTriangles(tets), tets, data...)
}

// FromFMS converts a parsed FMS file into a block: a TetraMesh when the
// file carries tetrahedra, otherwise a PolyMesh. Surface connectivity is
// derived from the volume when the file has none.
func FromFMS(f *formats.FMS) (mesh.Shape, error) {
	var data []*mesh.Data
	for _, field := range f.Fields {
		comps := make([]*mesh.Component, 0, len(field.Components))
		for _, fc := range field.Components {
			comps = append(comps, mesh.NewScalarComponent(fc.Name, fc.Values))
		}
		data = append(data, mesh.NewData(field.Name, comps...))
	}

	if len(f.Tetrahedra) > 0 {
		tris := f.Triangles
		if len(tris) == 0 {
			tris = mesh.BoundaryTriangles(f.Tetrahedra)
		}
		return mesh.NewTetraMesh(f.Vertices, tris, f.Tetrahedra, data...)
	}
	return mesh.NewPolyMesh(f.Vertices, f.Triangles, data...)
}
