package geometry

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Hit describes where and how a ray met a surface. It is built per query and not stored.
type Hit struct {
	Distance float64         // Parameter t along the ray
	Point    core.Vec3       // Point of intersection
	Normal   core.Vec3       // Outward unit surface normal
	Material *material.Phong // Shared surface material
	Color    core.Vec3       // Base tint added to every hit on the surface
}

// Shape interface for objects that can be hit by rays.
// Implementations must be pointer types: shapes are compared by identity
// when a surface is excluded from its own shadow test.
type Shape interface {
	// Intersect returns the smallest admissible distance along the ray, if any
	Intersect(ray core.Ray) (float64, bool)
	// DetailAt builds the hit record for a distance already returned by Intersect
	DetailAt(ray core.Ray, distance float64) Hit
}
