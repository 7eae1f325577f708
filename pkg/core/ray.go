package core

// Ray represents a ray with an origin and direction.
// The direction is not normalized by the constructor.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IsDegenerate reports whether the direction is too short to define a half-line
func (r Ray) IsDegenerate() bool {
	return r.Direction.LenSqr() < degenerateEpsilon
}
