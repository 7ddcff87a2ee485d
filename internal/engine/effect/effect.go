// Package effect implements blocks whose geometry or appearance is derived
// from a parent block's field data: iso-coloring, iso-surface extraction,
// and threshold filtering. An effect observes its parent and recomputes its
// output whenever the parent's geometry, the bound field, or its own
// parameters change.
package effect

import (
	"errors"
	"fmt"
	gomath "math"
	"strings"

	"github.com/Faultbox/meshview/internal/engine/mesh"
)

// ErrUnknownField is returned when an input selector names a Data group or
// component not present on the parent.
var ErrUnknownField = errors.New("input selector names an unknown field")

// Effect is the shared base of all derived blocks. The embedded PolyMesh
// holds the effect's output geometry and appearance. The parent reference
// is non-owning; effects observe exactly one level and their output is not
// usable as another effect's parent.
//
// An effect is Unbound until BindInput succeeds. While Unbound, parameter
// and input setters are tolerated no-ops so construction order does not
// matter.
type Effect struct {
	*mesh.PolyMesh

	parent   mesh.Shape
	selector []string
	comps    []*mesh.Component
	dim      int // 0 unset, 1 scalar, 3 vector

	rec func()
}

// init wires the effect to its parent and installs the concrete recompute.
func (e *Effect) init(parent mesh.Shape, rec func()) {
	out, _ := mesh.NewPolyMesh(nil, nil)
	e.PolyMesh = out
	e.parent = parent
	e.rec = rec

	pb := parent.Base()
	e.SetDefaultColor(pb.DefaultColor())
	e.SetDefaultAlpha(pb.DefaultAlpha())
	pb.AddDependent(e)
}

// Parent returns the parent block.
func (e *Effect) Parent() mesh.Shape { return e.parent }

// InputDimension returns 0 while unbound, 1 for a scalar input, 3 for a
// vector input.
func (e *Effect) InputDimension() int { return e.dim }

// Input returns the currently bound selector names.
func (e *Effect) Input() []string { return e.selector }

// Detach unregisters the effect from its parent. The effect keeps its last
// output but no longer reacts to parent changes.
func (e *Effect) Detach() {
	e.parent.Base().RemoveDependent(e)
}

// BindInput resolves a selector against the parent's data and transitions
// the effect to Bound, triggering the first recompute. A single name binds
// a scalar input; three names assemble a vector input. Each name is either
// a Data name (first component) or "data.component". Fails with
// ErrUnknownField and leaves prior state untouched if any name is absent.
func (e *Effect) BindInput(names ...string) error {
	comps, dim, err := e.resolve(names)
	if err != nil {
		return err
	}

	e.selector = append([]string(nil), names...)
	e.comps = comps
	e.dim = dim
	e.Base().Publish(mesh.Change{Prop: mesh.PropInput})
	e.rec()
	return nil
}

// SetInput re-resolves the input while Bound. Calling it while Unbound is a
// documented no-op, not an error.
func (e *Effect) SetInput(names ...string) error {
	if e.dim == 0 {
		return nil
	}
	return e.BindInput(names...)
}

// ParentChanged reacts to committed parent mutations: geometry changes and
// changes to the bound Data invalidate the output.
func (e *Effect) ParentChanged(ch mesh.Change) {
	switch ch.Prop {
	case mesh.PropVertices, mesh.PropConnectivity:
		e.invalidate()
	case mesh.PropData:
		if ch.Data == "" || e.usesData(ch.Data) {
			e.invalidate()
		}
	}
}

// invalidate schedules one recompute: immediately, or once at batch flush.
// Unbound effects have nothing to recompute.
func (e *Effect) invalidate() {
	if e.dim == 0 {
		return
	}
	if batchDepth > 0 {
		if !pendingSet[e] {
			pendingSet[e] = true
			pending = append(pending, e)
		}
		return
	}
	e.refresh()
}

// refresh re-resolves the bound selector and recomputes. If the bound field
// vanished from the parent, the previous output is kept.
func (e *Effect) refresh() {
	comps, dim, err := e.resolve(e.selector)
	if err != nil {
		return
	}
	e.comps = comps
	e.dim = dim
	e.rec()
}

// resolve maps selector names to parent components and an input dimension.
func (e *Effect) resolve(names []string) ([]*mesh.Component, int, error) {
	if len(names) != 1 && len(names) != 3 {
		return nil, 0, fmt.Errorf("selector must name 1 or 3 fields, got %d", len(names))
	}

	pb := e.parent.Base()
	comps := make([]*mesh.Component, 0, len(names))
	for _, name := range names {
		dataName, compName, _ := strings.Cut(name, ".")
		d := pb.DataByName(dataName)
		if d == nil {
			return nil, 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}

		var c *mesh.Component
		if compName == "" {
			if len(d.Components()) > 0 {
				c = d.Components()[0]
			}
		} else {
			c = d.Component(compName)
		}
		if c == nil {
			return nil, 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		comps = append(comps, c)
	}

	dim := 3
	if len(comps) == 1 {
		dim = comps[0].Arity()
	}
	return comps, dim, nil
}

// usesData reports whether any selector name refers to the given Data.
func (e *Effect) usesData(name string) bool {
	for _, sel := range e.selector {
		dataName, _, _ := strings.Cut(sel, ".")
		if dataName == name {
			return true
		}
	}
	return false
}

// scalarAt returns the bound scalar at vertex i; vector inputs contribute
// their magnitude.
func (e *Effect) scalarAt(i int) float32 {
	if e.dim == 1 {
		return e.comps[0].Array()[i]
	}

	var x, y, z float32
	if len(e.comps) == 3 {
		x = e.comps[0].Array()[i]
		y = e.comps[1].Array()[i]
		z = e.comps[2].Array()[i]
	} else {
		a := e.comps[0].Array()
		x, y, z = a[i*3], a[i*3+1], a[i*3+2]
	}
	return float32(gomath.Sqrt(float64(x*x + y*y + z*z)))
}

// scalarRange returns the min and max of the bound scalar over the
// parent's vertices.
func (e *Effect) scalarRange() (float32, float32) {
	n := e.parent.Base().VertexCount()
	if n == 0 {
		return 0, 0
	}
	lo := e.scalarAt(0)
	hi := lo
	for i := 1; i < n; i++ {
		s := e.scalarAt(i)
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return lo, hi
}

// Batching state. The engine is single-threaded and event-driven; these are
// only touched from the notification thread.
var (
	batchDepth int
	pending    []*Effect
	pendingSet map[*Effect]bool
)

// Batch coalesces recomputes: every effect invalidated while fn runs is
// recomputed exactly once when the outermost batch ends, observing the
// final state of all changes.
func Batch(fn func()) {
	if batchDepth == 0 {
		pendingSet = make(map[*Effect]bool)
	}
	batchDepth++
	fn()
	batchDepth--

	if batchDepth > 0 {
		return
	}
	flush := pending
	pending = nil
	pendingSet = nil
	for _, e := range flush {
		e.refresh()
	}
}
