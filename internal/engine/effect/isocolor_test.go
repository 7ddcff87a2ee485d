package effect

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestIsoColorGrayscaleMapping(t *testing.T) {
	m := buildQuad(t)
	c := NewIsoColor(m, 0, 3)
	c.SetColormap(Grayscale)
	if err := c.BindInput("temp"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}

	colors := c.Colors()
	if len(colors) != 12 {
		t.Fatalf("len(Colors()) = %d, want 12", len(colors))
	}

	// Scalars {0,1,2,3} over [0,3] map to t = {0, 1/3, 2/3, 1}.
	want := []float32{0, 1.0 / 3, 2.0 / 3, 1}
	for i, w := range want {
		for k := 0; k < 3; k++ {
			if got := colors[i*3+k]; !near(got, w) {
				t.Errorf("Colors()[%d] = %v, want %v", i*3+k, got, w)
			}
		}
	}
}

func TestIsoColorClampsOutOfRange(t *testing.T) {
	m := buildQuad(t)
	c := NewIsoColor(m, 1, 2)
	c.SetColormap(Grayscale)
	if err := c.BindInput("temp"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}

	colors := c.Colors()
	if !near(colors[0], 0) {
		t.Errorf("color below range = %v, want 0", colors[0])
	}
	if !near(colors[9], 1) {
		t.Errorf("color above range = %v, want 1", colors[9])
	}
}

func TestIsoColorDegenerateRange(t *testing.T) {
	m := buildQuad(t)
	c := NewIsoColor(m, 2, 2)
	c.SetColormap(Grayscale)
	if err := c.BindInput("temp"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}

	// A zero span maps every vertex to the ramp midpoint.
	for i, got := range c.Colors() {
		if !near(got, 0.5) {
			t.Errorf("Colors()[%d] = %v, want 0.5", i, got)
		}
	}
}

func TestIsoColorVectorMagnitude(t *testing.T) {
	m := buildQuad(t)
	c := NewIsoColor(m, 0, 3)
	c.SetColormap(Grayscale)
	if err := c.BindInput("velocity.x", "velocity.y", "velocity.z"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}

	// Vertex 3 has velocity (2,2,1), magnitude 3, mapped to t = 1.
	colors := c.Colors()
	if !near(colors[9], 1) {
		t.Errorf("magnitude color = %v, want 1", colors[9])
	}
	// Vertices 0..2 are unit vectors, mapped to t = 1/3.
	if !near(colors[0], 1.0/3) {
		t.Errorf("unit magnitude color = %v, want 1/3", colors[0])
	}
}

func TestIsoColorSharesParentGeometry(t *testing.T) {
	m := buildQuad(t)
	c := NewIsoColor(m, 0, 3)
	if err := c.BindInput("temp"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}

	if got, want := c.VertexCount(), m.VertexCount(); got != want {
		t.Errorf("VertexCount() = %d, want %d", got, want)
	}
	if got, want := len(c.Triangles()), len(m.Triangles()); got != want {
		t.Errorf("len(Triangles()) = %d, want %d", got, want)
	}
}

func TestIsoColorTracksFieldUpdates(t *testing.T) {
	m := buildQuad(t)
	c := NewIsoColor(m, 0, 3)
	c.SetColormap(Grayscale)
	if err := c.BindInput("temp"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}

	comp := m.DataByName("temp").Components()[0]
	if err := comp.ReplaceArray([]float32{3, 3, 3, 3}); err != nil {
		t.Fatalf("ReplaceArray() error = %v", err)
	}

	for i, got := range c.Colors() {
		if !near(got, 1) {
			t.Errorf("Colors()[%d] after field update = %v, want 1", i, got)
		}
	}
}
