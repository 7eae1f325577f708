package geometry

import "github.com/df07/go-phong-raytracer/pkg/core"

// Shapes is an ordered collection of shapes queried by closest hit.
// Shapes are shared, not owned: the same shape may be referenced elsewhere.
type Shapes struct {
	shapes []Shape
}

// NewShapes creates a collection holding the given shapes in order
func NewShapes(shapes ...Shape) *Shapes {
	return &Shapes{shapes: append([]Shape(nil), shapes...)}
}

// Add appends a shape
func (s *Shapes) Add(shape Shape) {
	s.shapes = append(s.shapes, shape)
}

// All returns the shapes in insertion order. The slice must not be modified.
func (s *Shapes) All() []Shape {
	return s.shapes
}

// Len returns the number of shapes
func (s *Shapes) Len() int {
	return len(s.shapes)
}

// ClosestHit returns the hit nearest the ray origin together with the shape that produced it.
// On equal distances the shape added first wins.
func (s *Shapes) ClosestHit(ray core.Ray) (Hit, Shape, bool) {
	var closest Shape
	closestSoFar := 0.0

	for _, shape := range s.shapes {
		t, ok := shape.Intersect(ray)
		if !ok {
			continue
		}
		if closest == nil || t < closestSoFar {
			closest = shape
			closestSoFar = t
		}
	}

	if closest == nil {
		return Hit{}, nil, false
	}
	return closest.DetailAt(ray, closestSoFar), closest, true
}

// Occluded reports whether any shape other than exclude is hit strictly between tMin and tMax.
// exclude is compared by identity, so a distinct shape with identical geometry is still tested.
func (s *Shapes) Occluded(ray core.Ray, exclude Shape, tMin, tMax float64) bool {
	for _, shape := range s.shapes {
		if shape == exclude {
			continue
		}
		if t, ok := shape.Intersect(ray); ok && t > tMin && t < tMax {
			return true
		}
	}
	return false
}
