package effect

// Colormap is a color ramp sampled over [0,1]. Out-of-range values clamp to
// the ramp ends.
type Colormap struct {
	Name  string
	Stops [][3]float32
}

// Sample returns the interpolated color at t, clamped to [0,1].
func (c Colormap) Sample(t float32) [3]float32 {
	n := len(c.Stops)
	if n == 0 {
		return [3]float32{}
	}
	if t <= 0 || n == 1 {
		return c.Stops[0]
	}
	if t >= 1 {
		return c.Stops[n-1]
	}

	pos := t * float32(n-1)
	i := int(pos)
	if i >= n-1 {
		i = n - 2
	}
	f := pos - float32(i)

	a, b := c.Stops[i], c.Stops[i+1]
	return [3]float32{
		a[0] + (b[0]-a[0])*f,
		a[1] + (b[1]-a[1])*f,
		a[2] + (b[2]-a[2])*f,
	}
}

// Viridis is the default perceptually uniform ramp.
var Viridis = Colormap{
	Name: "viridis",
	Stops: [][3]float32{
		{0.267, 0.005, 0.329},
		{0.283, 0.141, 0.458},
		{0.254, 0.265, 0.530},
		{0.207, 0.372, 0.553},
		{0.164, 0.471, 0.558},
		{0.128, 0.567, 0.551},
		{0.135, 0.659, 0.518},
		{0.267, 0.749, 0.441},
		{0.478, 0.821, 0.318},
		{0.741, 0.873, 0.150},
		{0.993, 0.906, 0.144},
	},
}

// CoolWarm is a diverging blue-to-red ramp.
var CoolWarm = Colormap{
	Name: "coolwarm",
	Stops: [][3]float32{
		{0.230, 0.299, 0.754},
		{0.552, 0.690, 0.996},
		{0.865, 0.865, 0.865},
		{0.958, 0.603, 0.482},
		{0.706, 0.016, 0.150},
	},
}

// Grayscale ramps linearly from black to white.
var Grayscale = Colormap{
	Name: "grayscale",
	Stops: [][3]float32{
		{0, 0, 0},
		{1, 1, 1},
	},
}

// ColormapByName returns a predefined ramp by name, or Viridis when the
// name is unknown.
func ColormapByName(name string) Colormap {
	switch name {
	case CoolWarm.Name:
		return CoolWarm
	case Grayscale.Name:
		return Grayscale
	default:
		return Viridis
	}
}
