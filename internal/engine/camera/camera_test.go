package camera

import (
	"math"
	"testing"

	pkgmath "github.com/Faultbox/meshview/pkg/math"
)

func TestOrbitCameraPositionDistance(t *testing.T) {
	c := NewOrbitCamera()
	c.SetCenter(pkgmath.Vec3{X: 1, Y: 2, Z: 3})

	got := c.Position().Distance(c.Center)
	if math.Abs(float64(got-c.Distance)) > 1e-4 {
		t.Errorf("|Position() - Center| = %v, want %v", got, c.Distance)
	}
}

func TestOrbitCameraZoomClamps(t *testing.T) {
	c := NewOrbitCamera()

	for i := 0; i < 100; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("Distance after zooming in = %v, want %v", c.Distance, c.MinDistance)
	}

	for i := 0; i < 200; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("Distance after zooming out = %v, want %v", c.Distance, c.MaxDistance)
	}
}

func TestOrbitCameraDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("RotationX = %v, want %v", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -20000)
	if c.RotationX != c.MinPitch {
		t.Errorf("RotationX = %v, want %v", c.RotationX, c.MinPitch)
	}
}

func TestOrbitCameraForwardIsUnit(t *testing.T) {
	c := NewOrbitCamera()
	f := c.Forward()
	if math.Abs(float64(f.Length()-1)) > 1e-4 {
		t.Errorf("|Forward()| = %v, want 1", f.Length())
	}
}

func TestFitToSphere(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToSphere(pkgmath.Sphere{Center: pkgmath.Vec3{}, Radius: 1})
	if c.Distance != 3 {
		t.Errorf("Distance = %v, want 3", c.Distance)
	}
}
