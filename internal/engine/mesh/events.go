package mesh

// Prop identifies a mutable property on a block or effect.
type Prop int

// Mutable properties.
const (
	PropVertices Prop = iota
	PropConnectivity
	PropData
	PropColors
	PropDefaultColor
	PropDefaultAlpha
	PropScale
	PropParam
	PropInput
)

// String returns a short property name for logging.
func (p Prop) String() string {
	switch p {
	case PropVertices:
		return "vertices"
	case PropConnectivity:
		return "connectivity"
	case PropData:
		return "data"
	case PropColors:
		return "colors"
	case PropDefaultColor:
		return "default_color"
	case PropDefaultAlpha:
		return "default_alpha"
	case PropScale:
		return "scale"
	case PropParam:
		return "param"
	case PropInput:
		return "input"
	default:
		return "unknown"
	}
}

// Change describes a committed property mutation. For PropData changes,
// Data carries the name of the affected Data group.
type Change struct {
	Prop Prop
	Data string
}

// Dependent observes a block it derives from. Effects register themselves
// on their parent; invalidation propagates exactly one level.
type Dependent interface {
	ParentChanged(Change)
}
