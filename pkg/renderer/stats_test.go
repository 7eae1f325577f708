package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/integrator"
)

func TestRenderStats_Merge(t *testing.T) {
	var stats RenderStats
	stats.Merge(RenderStats{TotalPixels: 4, TotalSamples: 4, PrimaryRays: 4})
	stats.Merge(RenderStats{TotalPixels: 2, TotalSamples: 8, PrimaryRays: 8, InvalidPixels: 1})

	if stats.TotalPixels != 6 || stats.TotalSamples != 12 || stats.PrimaryRays != 12 || stats.InvalidPixels != 1 {
		t.Errorf("Unexpected merged stats: %+v", stats)
	}
	if math.Abs(stats.AverageSamples-2.0) > 1e-9 {
		t.Errorf("Expected average samples 2, got %f", stats.AverageSamples)
	}
}

func TestRenderStats_AddTraceCounts(t *testing.T) {
	counter := &integrator.CountingObserver{}
	counter.ShadowRays.Add(7)
	counter.Reflections.Add(3)

	var stats RenderStats
	stats.AddTraceCounts(counter)
	if stats.ShadowRays != 7 || stats.ReflectionRays != 3 {
		t.Errorf("Expected 7 shadow and 3 reflection rays, got %+v", stats)
	}
}

func TestFrame_AverageLuminance(t *testing.T) {
	// Red, green, blue and black average to (0.299 + 0.587 + 0.114) / 4
	frame := NewFrame(2, 2)
	frame.Set(0, 0, core.NewVec3(1, 0, 0))
	frame.Set(1, 0, core.NewVec3(0, 1, 0))
	frame.Set(0, 1, core.NewVec3(0, 0, 1))

	avgLum := frame.AverageLuminance()
	expected := 0.25
	tolerance := 0.0001

	if avgLum < expected-tolerance || avgLum > expected+tolerance {
		t.Errorf("Expected average luminance %f, got %f", expected, avgLum)
	}

	if NewFrame(0, 0).AverageLuminance() != 0 {
		t.Error("Expected zero luminance for empty frame")
	}
}
