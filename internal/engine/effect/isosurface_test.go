package effect

import (
	"testing"

	"github.com/Faultbox/meshview/internal/engine/mesh"
)

// buildTetra returns a single unit tetrahedron with a scalar "temp" field
// {0,0,0,3}: only the apex vertex is hot.
func buildTetra(t *testing.T) *mesh.TetraMesh {
	t.Helper()

	temp := mesh.NewData("temp", mesh.NewScalarComponent("t", []float32{0, 0, 0, 3}))
	m, err := mesh.NewTetraMesh(
		[]float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1},
		nil,
		[]uint32{0, 1, 2, 3},
		temp,
	)
	if err != nil {
		t.Fatalf("NewTetraMesh() error = %v", err)
	}
	return m
}

func TestIsoSurfaceSingleTetrahedron(t *testing.T) {
	m := buildTetra(t)
	s := NewIsoSurface(m, 1.5)
	if err := s.BindInput("temp"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}

	if got := s.VertexCount(); got != 3 {
		t.Fatalf("VertexCount() = %d, want 3", got)
	}
	if got := len(s.Triangles()); got != 3 {
		t.Fatalf("len(Triangles()) = %d, want 3", got)
	}

	// The level set at 1.5 crosses each apex edge at its midpoint.
	want := []float32{0, 0, 0.5, 0, 0.5, 0.5, 0.5, 0, 0.5}
	verts := s.Vertices()
	for i, w := range want {
		if !near(verts[i], w) {
			t.Errorf("Vertices()[%d] = %v, want %v", i, verts[i], w)
		}
	}
}

func TestIsoSurfaceIdempotent(t *testing.T) {
	m := buildTetra(t)
	s := NewIsoSurface(m, 1.5)
	if err := s.BindInput("temp"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}
	first := append([]float32(nil), s.Vertices()...)

	s.SetValue(1.5)
	second := s.Vertices()
	if len(first) != len(second) {
		t.Fatalf("vertex count changed on recompute: %d -> %d", len(first)/3, len(second)/3)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Vertices()[%d] changed on recompute: %v -> %v", i, first[i], second[i])
		}
	}
}

func TestIsoSurfaceValueOutsideRange(t *testing.T) {
	m := buildTetra(t)
	s := NewIsoSurface(m, 5)
	if err := s.BindInput("temp"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}

	if got := s.VertexCount(); got != 0 {
		t.Errorf("VertexCount() = %d, want 0", got)
	}
	if got := len(s.Triangles()); got != 0 {
		t.Errorf("len(Triangles()) = %d, want 0", got)
	}
}

func TestIsoSurfaceWithoutTetrahedra(t *testing.T) {
	m := buildQuad(t)
	s := NewIsoSurface(m, 1.5)
	if err := s.BindInput("temp"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}

	if got := s.VertexCount(); got != 0 {
		t.Errorf("VertexCount() for surface parent = %d, want 0", got)
	}
}

func TestIsoSurfaceTracksValue(t *testing.T) {
	m := buildTetra(t)
	s := NewIsoSurface(m, 1.5)
	if err := s.BindInput("temp"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}

	// Moving the level toward the apex pulls the crossing points along the
	// edges: at value 2.25 the fraction from the cold corners is 0.75.
	s.SetValue(2.25)
	verts := s.Vertices()
	if got := s.VertexCount(); got != 3 {
		t.Fatalf("VertexCount() = %d, want 3", got)
	}
	if !near(verts[2], 0.75) {
		t.Errorf("crossing z = %v, want 0.75", verts[2])
	}
}
