package effect

import (
	"errors"
	"testing"

	"github.com/Faultbox/meshview/internal/engine/mesh"
)

// buildQuad returns a unit quad with a scalar "temp" field {0,1,2,3} and a
// per-axis "velocity" field.
func buildQuad(t *testing.T) *mesh.PolyMesh {
	t.Helper()

	temp := mesh.NewData("temp", mesh.NewScalarComponent("t", []float32{0, 1, 2, 3}))
	vel := mesh.NewData("velocity",
		mesh.NewScalarComponent("x", []float32{1, 0, 0, 2}),
		mesh.NewScalarComponent("y", []float32{0, 1, 0, 2}),
		mesh.NewScalarComponent("z", []float32{0, 0, 1, 1}),
	)

	m, err := mesh.NewPolyMesh(
		[]float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0},
		[]uint32{0, 1, 2, 0, 2, 3},
		temp, vel,
	)
	if err != nil {
		t.Fatalf("NewPolyMesh() error = %v", err)
	}
	return m
}

func TestBindInputUnknownField(t *testing.T) {
	m := buildQuad(t)
	c := NewIsoColor(m, 0, 3)

	if err := c.BindInput("pressure"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("BindInput(pressure) error = %v, want ErrUnknownField", err)
	}
	if err := c.BindInput("temp.missing"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("BindInput(temp.missing) error = %v, want ErrUnknownField", err)
	}
	if got := c.InputDimension(); got != 0 {
		t.Errorf("InputDimension() after failed bind = %d, want 0", got)
	}
}

func TestSetInputWhileUnbound(t *testing.T) {
	m := buildQuad(t)
	c := NewIsoColor(m, 0, 3)

	if err := c.SetInput("temp"); err != nil {
		t.Fatalf("SetInput() while unbound error = %v, want nil", err)
	}
	if got := c.InputDimension(); got != 0 {
		t.Errorf("InputDimension() = %d, want 0", got)
	}
	if got := c.VertexCount(); got != 0 {
		t.Errorf("VertexCount() of unbound output = %d, want 0", got)
	}
}

func TestBindInputDimensions(t *testing.T) {
	m := buildQuad(t)
	c := NewIsoColor(m, 0, 3)

	if err := c.BindInput("temp"); err != nil {
		t.Fatalf("BindInput(temp) error = %v", err)
	}
	if got := c.InputDimension(); got != 1 {
		t.Errorf("InputDimension() = %d, want 1", got)
	}

	if err := c.SetInput("velocity.x", "velocity.y", "velocity.z"); err != nil {
		t.Fatalf("SetInput(velocity.*) error = %v", err)
	}
	if got := c.InputDimension(); got != 3 {
		t.Errorf("InputDimension() = %d, want 3", got)
	}
}

func TestBindInputSelectorSyntax(t *testing.T) {
	m := buildQuad(t)
	c := NewIsoColor(m, 0, 3)

	// A bare Data name selects its first component.
	if err := c.BindInput("velocity"); err != nil {
		t.Fatalf("BindInput(velocity) error = %v", err)
	}
	if got := c.InputDimension(); got != 1 {
		t.Errorf("InputDimension() = %d, want 1", got)
	}
}

func TestDetachStopsPropagation(t *testing.T) {
	m := buildQuad(t)
	c := NewIsoColor(m, 0, 3)
	if err := c.BindInput("temp"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}

	var events int
	c.Base().OnChange(func(ch mesh.Change) {
		if ch.Prop == mesh.PropColors {
			events++
		}
	})

	c.Detach()
	if err := m.SetVertices([]float32{0, 0, 0, 2, 0, 0, 2, 2, 0, 0, 2, 0}); err != nil {
		t.Fatalf("SetVertices() error = %v", err)
	}
	if events != 0 {
		t.Errorf("recomputes after Detach() = %d, want 0", events)
	}
}

func TestBatchCoalescesRecomputes(t *testing.T) {
	m := buildQuad(t)
	c := NewIsoColor(m, 0, 3)
	if err := c.BindInput("temp"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}

	var events int
	c.Base().OnChange(func(ch mesh.Change) {
		if ch.Prop == mesh.PropColors {
			events++
		}
	})

	c.SetMin(0.5)
	c.SetMax(2.5)
	if events != 2 {
		t.Fatalf("unbatched recomputes = %d, want 2", events)
	}

	events = 0
	Batch(func() {
		c.SetMin(0)
		c.SetMax(3)
		c.SetColormap(Grayscale)
	})
	if events != 1 {
		t.Errorf("batched recomputes = %d, want 1", events)
	}
}

func TestBatchNesting(t *testing.T) {
	m := buildQuad(t)
	c := NewIsoColor(m, 0, 3)
	if err := c.BindInput("temp"); err != nil {
		t.Fatalf("BindInput() error = %v", err)
	}

	var events int
	c.Base().OnChange(func(ch mesh.Change) {
		if ch.Prop == mesh.PropColors {
			events++
		}
	})

	Batch(func() {
		c.SetMin(1)
		Batch(func() {
			c.SetMax(2)
		})
		c.SetMin(0)
	})
	if events != 1 {
		t.Errorf("nested batch recomputes = %d, want 1", events)
	}
}
