package renderer

import (
	"time"

	"github.com/df07/go-phong-raytracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	InvalidPixels  int           // Pixels whose color was NaN or infinite and was replaced by black
	PrimaryRays    int64         // Camera rays traced
	ShadowRays     int64         // Shadow rays cast, filled by AddTraceCounts
	ReflectionRays int64         // Reflection rays cast, filled by AddTraceCounts
	Duration       time.Duration // Wall time of the render
}

// Merge adds the counts of a tile into the totals
func (s *RenderStats) Merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.InvalidPixels += other.InvalidPixels
	s.PrimaryRays += other.PrimaryRays
	s.ShadowRays += other.ShadowRays
	s.ReflectionRays += other.ReflectionRays
	s.finalize()
}

// AddTraceCounts copies secondary ray counts gathered by a counting observer
func (s *RenderStats) AddTraceCounts(counter *integrator.CountingObserver) {
	s.ShadowRays = counter.ShadowRays.Load()
	s.ReflectionRays = counter.Reflections.Load()
}

// finalize calculates derived statistics
func (s *RenderStats) finalize() {
	if s.TotalPixels == 0 {
		s.AverageSamples = 0
		return
	}
	s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
}
