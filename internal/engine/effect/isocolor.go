package effect

import "github.com/Faultbox/meshview/internal/engine/mesh"

// IsoColor maps the bound scalar linearly from [min,max] onto a color
// ramp, producing a per-vertex color buffer. Geometry is shared with the
// parent; only appearance is recomputed.
type IsoColor struct {
	Effect
	min, max float32
	ramp     Colormap
}

// NewIsoColor creates an iso-color effect over parent with the given
// scalar range.
func NewIsoColor(parent mesh.Shape, min, max float32) *IsoColor {
	c := &IsoColor{min: min, max: max, ramp: Viridis}
	c.init(parent, c.recompute)
	return c
}

// Min returns the lower bound of the mapped range.
func (c *IsoColor) Min() float32 { return c.min }

// Max returns the upper bound of the mapped range.
func (c *IsoColor) Max() float32 { return c.max }

// SetMin updates the lower bound. Pure parameter change: the input binding
// is untouched, only the colors are recomputed.
func (c *IsoColor) SetMin(min float32) {
	c.min = min
	c.Base().Publish(mesh.Change{Prop: mesh.PropParam})
	c.invalidate()
}

// SetMax updates the upper bound.
func (c *IsoColor) SetMax(max float32) {
	c.max = max
	c.Base().Publish(mesh.Change{Prop: mesh.PropParam})
	c.invalidate()
}

// SetRange updates both bounds with a single recompute.
func (c *IsoColor) SetRange(min, max float32) {
	Batch(func() {
		c.SetMin(min)
		c.SetMax(max)
	})
}

// Colormap returns the active ramp.
func (c *IsoColor) Colormap() Colormap { return c.ramp }

// SetColormap swaps the ramp.
func (c *IsoColor) SetColormap(ramp Colormap) {
	c.ramp = ramp
	c.Base().Publish(mesh.Change{Prop: mesh.PropParam})
	c.invalidate()
}

// recompute mirrors the parent geometry and rebuilds the color buffer.
func (c *IsoColor) recompute() {
	pb := c.parent.Base()
	n := pb.VertexCount()

	// Positions and connectivity are referenced, not copied; colors layer
	// over identical geometry.
	_ = c.SetGeometry(pb.Vertices(), c.parent.Triangles())

	span := c.max - c.min
	colors := make([]float32, n*3)
	for i := 0; i < n; i++ {
		t := float32(0.5)
		if span != 0 {
			t = (c.scalarAt(i) - c.min) / span
		}
		rgb := c.ramp.Sample(t)
		colors[i*3] = rgb[0]
		colors[i*3+1] = rgb[1]
		colors[i*3+2] = rgb[2]
	}
	_ = c.SetColors(colors)
}
