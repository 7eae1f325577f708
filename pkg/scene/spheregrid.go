package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b
	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	// LMS to linear RGB
	return core.Clamp01(core.NewVec3(
		+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc,
		-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc,
		-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc,
	))
}

// NewSphereGridScene creates a floor of colored spheres receding from the camera.
// Hue varies across X, chroma with distance, and every third sphere is more mirror-like.
func NewSphereGridScene() *Scene {
	s := New(core.NewVec3(0.1, 0.1, 0.15))
	s.Miss = MissBlack
	s.SamplingConfig.MaxDepth = 4

	gridSize := 6
	spacing := 1.2
	radius := spacing * 0.35

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - spacing*float64(gridSize-1)/2
			z := 4 + float64(j)*spacing
			position := core.NewVec3(x, -1, z)

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			reflectivity := 0.1 + 0.15*float64((i+j)%3)
			mat := material.NewPhong(
				color.Mul(0.3),
				color,
				core.NewVec3(0.05, 0.05, 0.05),
				1.0,
				core.NewVec3(reflectivity, reflectivity, reflectivity),
			)
			s.AddShape(geometry.NewSphere(position, radius, color.Mul(0.1), mat))
		}
	}

	s.AddLight(lights.NewPointLight(
		core.NewVec3(2, 4, 0),
		core.NewVec3(0.9, 0.9, 0.85),
		core.NewVec3(0.5, 0.5, 0.5),
	))
	s.AddLight(lights.NewPointLight(
		core.NewVec3(-3, 2, 2),
		core.NewVec3(0.1, 0.1, 0.3),
		core.Vec3{},
	))

	return s
}
