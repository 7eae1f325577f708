package renderer

import (
	"math/rand"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/integrator"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(s *scene.Scene, integratorInst integrator.Integrator) *TileRenderer {
	return &TileRenderer{
		scene:      s,
		integrator: integratorInst,
	}
}

// RenderTile renders every pixel of tile into frame
func (tr *TileRenderer) RenderTile(tile *Tile, frame *Frame) RenderStats {
	bounds := tile.Bounds
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color, samples := tr.samplePixel(x, y, tile.Random)
			if !core.IsFinite(color) {
				color = core.Vec3{}
				stats.InvalidPixels++
			}
			frame.Set(x, y, color)
			stats.TotalSamples += samples
		}
	}

	stats.PrimaryRays = int64(stats.TotalSamples)
	stats.finalize()
	return stats
}

// samplePixel returns the pixel color and the number of camera rays traced.
// A single sample is taken at the pixel's top-left corner; more samples are jittered
// across the pixel and averaged.
func (tr *TileRenderer) samplePixel(x, y int, random *rand.Rand) (core.Vec3, int) {
	config := tr.scene.SamplingConfig
	width, height := float64(config.Width), float64(config.Height)
	camera := tr.scene.Camera

	if config.SamplesPerPixel <= 1 {
		ray := camera.GetRay(float64(x)/width, float64(y)/height)
		return tr.integrator.Trace(ray, camera.Position(), tr.scene, config.MaxDepth), 1
	}

	var colorAccum core.Vec3
	for sample := 0; sample < config.SamplesPerPixel; sample++ {
		u := (float64(x) + random.Float64()) / width
		v := (float64(y) + random.Float64()) / height
		ray := camera.GetRay(u, v)
		colorAccum = colorAccum.Add(tr.integrator.Trace(ray, camera.Position(), tr.scene, config.MaxDepth))
	}

	return colorAccum.Mul(1.0 / float64(config.SamplesPerPixel)), config.SamplesPerPixel
}
