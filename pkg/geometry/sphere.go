package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Color    core.Vec3 // Emissive tint added on top of lighting
	Material *material.Phong
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, color core.Vec3, mat *material.Phong) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Color:    color,
		Material: mat,
	}
}

// Intersect solves |O + tD - C|² = r² and returns the nearest non-negative root.
// When the origin is inside the sphere only the exit root is non-negative and it is returned.
func (s *Sphere) Intersect(ray core.Ray) (float64, bool) {
	// A zero-length direction would divide by zero below
	if ray.IsDegenerate() {
		return 0, false
	}

	oc := ray.Origin.Sub(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.LenSqr()
	b := 2 * oc.Dot(ray.Direction)
	c := oc.LenSqr() - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b + sqrtD) / (2 * a)
	t2 := (-b - sqrtD) / (2 * a)

	switch {
	case t1 < 0 && t2 < 0:
		return 0, false
	case t1 < 0:
		return t2, true
	case t2 < 0:
		return t1, true
	default:
		return math.Min(t1, t2), true
	}
}

// DetailAt builds the hit record at distance t without re-solving the quadratic
func (s *Sphere) DetailAt(ray core.Ray, t float64) Hit {
	point := ray.At(t)
	return Hit{
		Distance: t,
		Point:    point,
		Normal:   core.SafeNormalize(point.Sub(s.Center)),
		Material: s.Material,
		Color:    s.Color,
	}
}
