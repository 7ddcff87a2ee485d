package math

import (
	gomath "math"
	"testing"
)

func TestIdentityTransformPoint(t *testing.T) {
	m := Identity()
	p := [3]float32{1, 2, 3}
	got := m.TransformPoint(p)
	if got != p {
		t.Errorf("Identity().TransformPoint(%v) = %v, want %v", p, got, p)
	}
}

func TestTranslateTransformPoint(t *testing.T) {
	m := Translate(1, 2, 3)
	got := m.TransformPoint([3]float32{1, 1, 1})
	want := [3]float32{2, 3, 4}
	if got != want {
		t.Errorf("Translate.TransformPoint() = %v, want %v", got, want)
	}
}

func TestUniformScaleTransformPoint(t *testing.T) {
	m := UniformScale(0.25)
	got := m.TransformPoint([3]float32{4, 8, -4})
	want := [3]float32{1, 2, -1}
	if got != want {
		t.Errorf("UniformScale.TransformPoint() = %v, want %v", got, want)
	}
}

func TestMulOrder(t *testing.T) {
	// Scaling then translating must differ from translating then scaling.
	a := Translate(1, 0, 0).Mul(UniformScale(2))
	got := a.TransformPoint([3]float32{1, 0, 0})
	want := [3]float32{3, 0, 0}
	if got != want {
		t.Errorf("Translate*Scale point = %v, want %v", got, want)
	}

	b := UniformScale(2).Mul(Translate(1, 0, 0))
	got = b.TransformPoint([3]float32{1, 0, 0})
	want = [3]float32{4, 0, 0}
	if got != want {
		t.Errorf("Scale*Translate point = %v, want %v", got, want)
	}
}

func TestRotateY(t *testing.T) {
	m := RotateY(float32(gomath.Pi / 2))
	got := m.TransformPoint([3]float32{1, 0, 0})
	// Rotating +X by 90 degrees around Y lands on -Z.
	if gomath.Abs(float64(got[0])) > 1e-6 || gomath.Abs(float64(got[2]+1)) > 1e-6 {
		t.Errorf("RotateY(pi/2).TransformPoint(+X) = %v, want ~(0,0,-1)", got)
	}
}

func TestLookAtAtOrigin(t *testing.T) {
	eye := Vec3{0, 0, 5}
	view := LookAt(eye, Vec3{}, Vec3{Y: 1})
	got := view.TransformPoint([3]float32{0, 0, 0})
	// The origin should land on the -Z axis at the eye distance.
	want := [3]float32{0, 0, -5}
	for i := range got {
		if gomath.Abs(float64(got[i]-want[i])) > 1e-5 {
			t.Fatalf("LookAt.TransformPoint(origin) = %v, want %v", got, want)
		}
	}
}
