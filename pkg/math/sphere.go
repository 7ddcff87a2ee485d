package math

import "math"

// Sphere is a bounding sphere.
type Sphere struct {
	Center Vec3
	Radius float32
}

// BoundingSphere computes the bounding sphere of a packed xyz vertex buffer.
// The center is the centroid of the points and the radius the largest
// distance from the center to any point. An empty buffer yields a zero
// sphere at the origin.
func BoundingSphere(vertices []float32) Sphere {
	n := len(vertices) / 3
	if n == 0 {
		return Sphere{}
	}

	var center Vec3
	for i := 0; i < n; i++ {
		center.X += vertices[i*3]
		center.Y += vertices[i*3+1]
		center.Z += vertices[i*3+2]
	}
	inv := 1.0 / float32(n)
	center = center.Scale(inv)

	var maxSq float32
	for i := 0; i < n; i++ {
		dx := vertices[i*3] - center.X
		dy := vertices[i*3+1] - center.Y
		dz := vertices[i*3+2] - center.Z
		if d := dx*dx + dy*dy + dz*dz; d > maxSq {
			maxSq = d
		}
	}

	return Sphere{Center: center, Radius: float32(math.Sqrt(float64(maxSq)))}
}

// Contains reports whether the point lies inside or on the sphere.
func (s Sphere) Contains(p Vec3) bool {
	return s.Center.Distance(p) <= s.Radius
}
