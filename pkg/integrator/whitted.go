package integrator

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// ReflectionBias offsets reflected rays along the normal so they do not re-hit their own surface
const ReflectionBias = 0.01

// noMaterial shades surfaces whose material is missing as black, non-reflective
var noMaterial = &material.Phong{}

// Tracer is a recursive Whitted-style ray tracer: Phong direct lighting with binary shadows,
// plus mirror reflection bounded by a caller-supplied depth.
// It holds no mutable state, so one Tracer may serve every worker.
type Tracer struct {
	observer Observer
}

// NewTracer creates a tracer reporting to observer, which may be nil
func NewTracer(observer Observer) *Tracer {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Tracer{observer: observer}
}

// Trace returns the clamped color seen along ray.
// A ray that hits nothing, or has no direction, gets the scene's miss color.
func (t *Tracer) Trace(ray core.Ray, cameraPosition core.Vec3, s *scene.Scene, remainingDepth int) core.Vec3 {
	if ray.IsDegenerate() {
		t.observer.Miss(ray, remainingDepth)
		return s.MissColor()
	}

	hit, shape, isHit := s.Shapes.ClosestHit(ray)
	if !isHit {
		t.observer.Miss(ray, remainingDepth)
		return s.MissColor()
	}
	t.observer.Hit(ray, remainingDepth, hit)

	mat := hit.Material
	if mat == nil {
		mat = noMaterial
	}

	diffuse, specular := t.directLighting(hit, mat, shape, cameraPosition, s)
	reflected := t.reflectedColor(ray, hit, mat, cameraPosition, s, remainingDepth)
	ambient := core.MulVec(s.AmbientLight, mat.Ambient)

	return core.Clamp01(reflected.Add(hit.Color).Add(diffuse).Add(specular).Add(ambient))
}

// directLighting sums the diffuse and specular response to every unoccluded light
func (t *Tracer) directLighting(hit geometry.Hit, mat *material.Phong, self geometry.Shape, cameraPosition core.Vec3, s *scene.Scene) (core.Vec3, core.Vec3) {
	var diffuse, specular core.Vec3

	for i, light := range s.Lights {
		// t = 1 along the unnormalized shadow direction lands on the light
		toLight := light.ToLight(hit.Point)
		shadowRay := core.NewRay(hit.Point, toLight)
		occluded := s.Shapes.Occluded(shadowRay, self, 0, 1)
		t.observer.Shadow(shadowRay, i, occluded)
		if occluded {
			continue
		}

		lightDir := core.SafeNormalize(toLight)
		nDotL := hit.Normal.Dot(lightDir)
		if nDotL < 0 {
			continue
		}

		diffuse = diffuse.Add(core.MulVec(mat.Diffuse, light.DiffuseIntensity).Mul(nDotL))

		// view is not normalized and the base is not clamped, so odd exponents can darken.
		// A negative base with a fractional exponent yields NaN, which the renderer replaces per pixel.
		reflectance := hit.Normal.Mul(2 * nDotL).Sub(lightDir)
		view := cameraPosition.Sub(hit.Point)
		specular = specular.Add(core.MulVec(mat.Specular, light.SpecularIntensity).Mul(math.Pow(view.Dot(reflectance), mat.Shininess)))
	}

	return diffuse, specular
}

// reflectedColor traces the mirror bounce weighted by the material reflectivity
func (t *Tracer) reflectedColor(ray core.Ray, hit geometry.Hit, mat *material.Phong, cameraPosition core.Vec3, s *scene.Scene, remainingDepth int) core.Vec3 {
	if remainingDepth <= 0 || !mat.IsReflective() {
		return core.Vec3{}
	}

	toViewer := core.SafeNormalize(ray.Direction.Mul(-1))
	direction := hit.Normal.Mul(2 * hit.Normal.Dot(toViewer)).Sub(toViewer)
	reflectedRay := core.NewRay(hit.Point.Add(hit.Normal.Mul(ReflectionBias)), direction)
	t.observer.Reflect(reflectedRay, remainingDepth-1)

	return core.MulVec(t.Trace(reflectedRay, cameraPosition, s, remainingDepth-1), mat.Reflectivity)
}
