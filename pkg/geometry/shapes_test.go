package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// countingShape wraps a shape and counts intersection queries
type countingShape struct {
	Shape
	calls int
}

func (c *countingShape) Intersect(ray core.Ray) (float64, bool) {
	c.calls++
	return c.Shape.Intersect(ray)
}

func TestShapes_ClosestHit_IgnoresInsertionOrder(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, 3), 1, core.NewVec3(1, 0, 0), testMaterial())
	far := NewSphere(core.NewVec3(0, 0, 10), 1, core.NewVec3(0, 1, 0), testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	orders := map[string][]Shape{
		"near first": {near, far},
		"far first":  {far, near},
	}

	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			shapes := NewShapes(order...)
			hit, shape, isHit := shapes.ClosestHit(ray)
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if shape != near {
				t.Errorf("Expected nearest sphere, got %+v", shape)
			}
			if math.Abs(hit.Distance-2) > 1e-9 {
				t.Errorf("Expected distance 2, got %f", hit.Distance)
			}
			if hit.Color != near.Color {
				t.Errorf("Expected color %v, got %v", near.Color, hit.Color)
			}
		})
	}
}

func TestShapes_ClosestHit_Miss(t *testing.T) {
	shapes := NewShapes(NewSphere(core.NewVec3(0, 0, 3), 1, core.Vec3{}, testMaterial()))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	if _, shape, isHit := shapes.ClosestHit(ray); isHit || shape != nil {
		t.Errorf("Expected miss, got hit on %+v", shape)
	}

	empty := NewShapes()
	if _, _, isHit := empty.ClosestHit(ray); isHit {
		t.Error("Expected empty collection to miss")
	}
}

func TestShapes_ClosestHit_TieGoesToFirst(t *testing.T) {
	first := NewSphere(core.NewVec3(0, 0, 3), 1, core.NewVec3(1, 0, 0), testMaterial())
	twin := NewSphere(core.NewVec3(0, 0, 3), 1, core.NewVec3(0, 0, 1), testMaterial())
	shapes := NewShapes(first, twin)

	_, shape, isHit := shapes.ClosestHit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if shape != first {
		t.Error("Expected the first added shape to win a tie")
	}
}

func TestShapes_ClosestHit_QueriesEveryShape(t *testing.T) {
	a := &countingShape{Shape: NewSphere(core.NewVec3(0, 0, 3), 1, core.Vec3{}, testMaterial())}
	b := &countingShape{Shape: NewSphere(core.NewVec3(5, 0, 3), 1, core.Vec3{}, testMaterial())}
	shapes := NewShapes()
	shapes.Add(a)
	shapes.Add(b)

	shapes.ClosestHit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)))
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("Expected one query per shape, got %d and %d", a.calls, b.calls)
	}
	if shapes.Len() != 2 {
		t.Errorf("Expected 2 shapes, got %d", shapes.Len())
	}
}

func TestShapes_Occluded_ExcludesByIdentity(t *testing.T) {
	self := NewSphere(core.NewVec3(0, 0, 3), 1, core.Vec3{}, testMaterial())
	twin := NewSphere(core.NewVec3(0, 0, 3), 1, core.Vec3{}, testMaterial())
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 10))

	if NewShapes(self).Occluded(ray, self, 0, 1) {
		t.Error("Excluded shape should not occlude")
	}
	if !NewShapes(self, twin).Occluded(ray, self, 0, 1) {
		t.Error("A distinct shape with identical geometry must still occlude")
	}
}

func TestShapes_Occluded_OpenInterval(t *testing.T) {
	blocker := NewSphere(core.NewVec3(0, 0, 5), 1, core.Vec3{}, testMaterial())
	shapes := NewShapes(blocker)

	tests := []struct {
		name     string
		toLight  core.Vec3
		occluded bool
	}{
		{"blocker between point and light", core.NewVec3(0, 0, 10), true},
		{"light in front of blocker", core.NewVec3(0, 0, 3), false},
		{"blocker off to the side", core.NewVec3(0, 10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.Vec3{}, tt.toLight)
			if got := shapes.Occluded(ray, nil, 0, 1); got != tt.occluded {
				t.Errorf("Expected occluded=%t, got %t", tt.occluded, got)
			}
		})
	}
}
