// Package scene groups blocks for display and keeps them normalized to a
// shared coordinate frame: every child is scaled so the largest bounding
// sphere fits the unit sphere.
package scene

import "github.com/Faultbox/meshview/internal/engine/mesh"

// Scene is an ordered collection of displayed blocks.
type Scene struct {
	children  []mesh.Shape
	onChanged []func()
}

// New creates a scene over the given children.
func New(children ...mesh.Shape) *Scene {
	s := &Scene{}
	s.SetChildren(children...)
	return s
}

// Children returns the displayed blocks in order.
func (s *Scene) Children() []mesh.Shape { return s.children }

// AddChild appends a block and rescales the scene.
func (s *Scene) AddChild(child mesh.Shape) {
	s.children = append(s.children, child)
	s.updateChildren()
}

// RemoveChild removes the first occurrence of child. Removing a block not
// present is a no-op. The removed block keeps its last applied scale.
func (s *Scene) RemoveChild(child mesh.Shape) {
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			s.updateChildren()
			return
		}
	}
}

// SetChildren replaces the whole child list.
func (s *Scene) SetChildren(children ...mesh.Shape) {
	s.children = append([]mesh.Shape(nil), children...)
	s.updateChildren()
}

// OnChildrenChanged registers a callback fired after every child list
// mutation, once rescaling is done.
func (s *Scene) OnChildrenChanged(fn func()) {
	s.onChanged = append(s.onChanged, fn)
}

// Scale returns the factor applied to every child: the reciprocal of the
// largest child bounding sphere radius, or 1 for an empty scene.
func (s *Scene) Scale() float32 {
	var maxRadius float32
	for _, c := range s.children {
		if r := c.Base().BoundingSphereRadius(); r > maxRadius {
			maxRadius = r
		}
	}
	if maxRadius == 0 {
		return 1
	}
	return 1 / maxRadius
}

// updateChildren reapplies the shared scale to every child.
func (s *Scene) updateChildren() {
	scale := s.Scale()
	for _, c := range s.children {
		c.Base().SetScale(scale)
	}
	for _, fn := range s.onChanged {
		fn()
	}
}
