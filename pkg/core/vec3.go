package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is the vector type used for points, directions and linear RGB colors.
type Vec3 = mgl64.Vec3

// degenerateEpsilon is the squared length below which a direction is treated as zero
const degenerateEpsilon = 1e-18

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// MulVec returns component-wise multiplication of two vectors
func MulVec(a, b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Lerp linearly interpolates from a (t=0) to b (t=1)
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Clamp returns a vector with components clamped to [lo, hi]
func Clamp(v Vec3, lo, hi float64) Vec3 {
	return Vec3{
		mgl64.Clamp(v[0], lo, hi),
		mgl64.Clamp(v[1], lo, hi),
		mgl64.Clamp(v[2], lo, hi),
	}
}

// Clamp01 clamps every channel of a color to the displayable [0, 1] range
func Clamp01(v Vec3) Vec3 {
	return Clamp(v, 0, 1)
}

// SafeNormalize returns a unit vector in the same direction.
// Unlike mgl64's Normalize, the zero vector stays zero instead of turning into NaN.
func SafeNormalize(v Vec3) Vec3 {
	if v.LenSqr() < degenerateEpsilon {
		return Vec3{}
	}
	return v.Normalize()
}

// IsFinite reports whether no component is NaN or infinite
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Luminance returns the perceptual luminance of an RGB color
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func Luminance(v Vec3) float64 {
	return 0.299*v[0] + 0.587*v[1] + 0.114*v[2]
}
