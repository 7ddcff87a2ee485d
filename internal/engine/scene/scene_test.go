package scene

import (
	"math"
	"testing"

	"github.com/Faultbox/meshview/internal/engine/mesh"
)

// ballMesh returns a degenerate block whose bounding sphere has roughly the
// given radius: two vertices 2*radius apart.
func ballMesh(t *testing.T, radius float32) *mesh.PolyMesh {
	t.Helper()
	m, err := mesh.NewPolyMesh([]float32{-radius, 0, 0, radius, 0, 0}, nil)
	if err != nil {
		t.Fatalf("NewPolyMesh() error = %v", err)
	}
	return m
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestSceneScale(t *testing.T) {
	a := ballMesh(t, 2)
	b := ballMesh(t, 4)
	c := ballMesh(t, 1)

	s := New(a, b, c)
	if got := s.Scale(); !near(got, 0.25) {
		t.Errorf("Scale() = %v, want 0.25", got)
	}
	for i, m := range []*mesh.PolyMesh{a, b, c} {
		if got := m.Scale(); !near(got, 0.25) {
			t.Errorf("child %d Scale() = %v, want 0.25", i, got)
		}
	}
}

func TestSceneEmptyScale(t *testing.T) {
	s := New()
	if got := s.Scale(); got != 1 {
		t.Errorf("Scale() of empty scene = %v, want 1", got)
	}
}

func TestSceneAddChildRescales(t *testing.T) {
	a := ballMesh(t, 2)
	s := New(a)
	if got := a.Scale(); !near(got, 0.5) {
		t.Fatalf("Scale() = %v, want 0.5", got)
	}

	b := ballMesh(t, 4)
	s.AddChild(b)
	if got := a.Scale(); !near(got, 0.25) {
		t.Errorf("child scale after AddChild = %v, want 0.25", got)
	}
	if got := len(s.Children()); got != 2 {
		t.Errorf("len(Children()) = %d, want 2", got)
	}
}

func TestSceneRemoveChild(t *testing.T) {
	a := ballMesh(t, 2)
	b := ballMesh(t, 4)
	s := New(a, b)

	s.RemoveChild(b)
	if got := len(s.Children()); got != 1 {
		t.Fatalf("len(Children()) = %d, want 1", got)
	}
	if s.Children()[0] != mesh.Shape(a) {
		t.Error("wrong child removed")
	}
	// The survivors rescale to the new maximum.
	if got := a.Scale(); !near(got, 0.5) {
		t.Errorf("child scale after RemoveChild = %v, want 0.5", got)
	}
	// The removed child keeps its last applied scale.
	if got := b.Scale(); !near(got, 0.25) {
		t.Errorf("removed child Scale() = %v, want 0.25", got)
	}
}

func TestSceneRemoveChildAbsent(t *testing.T) {
	a := ballMesh(t, 2)
	s := New(a)
	s.RemoveChild(ballMesh(t, 1))
	if got := len(s.Children()); got != 1 {
		t.Errorf("len(Children()) = %d, want 1", got)
	}
}

func TestSceneOnChildrenChanged(t *testing.T) {
	s := New()
	var calls int
	s.OnChildrenChanged(func() { calls++ })

	s.AddChild(ballMesh(t, 1))
	s.SetChildren()
	if calls != 2 {
		t.Errorf("OnChildrenChanged calls = %d, want 2", calls)
	}
}
