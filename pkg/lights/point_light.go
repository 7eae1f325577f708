package lights

import "github.com/df07/go-phong-raytracer/pkg/core"

// PointLight is an infinitely small light with no distance attenuation
type PointLight struct {
	Position          core.Vec3
	DiffuseIntensity  core.Vec3 // RGB intensity feeding the diffuse term
	SpecularIntensity core.Vec3 // RGB intensity feeding the specular term
}

// NewPointLight creates a new point light
func NewPointLight(position, diffuseIntensity, specularIntensity core.Vec3) PointLight {
	return PointLight{
		Position:          position,
		DiffuseIntensity:  diffuseIntensity,
		SpecularIntensity: specularIntensity,
	}
}

// ToLight returns the unnormalized vector from point to the light.
// Parameter t = 1 along this vector lands exactly on the light.
func (l PointLight) ToLight(point core.Vec3) core.Vec3 {
	return l.Position.Sub(point)
}

// DirectionFrom returns the unit direction from point toward the light
func (l PointLight) DirectionFrom(point core.Vec3) core.Vec3 {
	return core.SafeNormalize(l.ToLight(point))
}
