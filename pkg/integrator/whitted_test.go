package integrator

import (
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

const tolerance = 1e-9

func assertColor(t *testing.T, got, want core.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > tolerance {
			t.Errorf("Expected color %v, got %v", want, got)
			return
		}
	}
}

// forward is a ray starting between the test spheres and looking down +Z
var forward = core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, 1))

func flatMaterial(diffuse, specular float64, shininess float64, reflectivity float64) *material.Phong {
	return material.NewPhong(
		core.Vec3{},
		core.NewVec3(diffuse, diffuse, diffuse),
		core.NewVec3(specular, specular, specular),
		shininess,
		core.NewVec3(reflectivity, reflectivity, reflectivity),
	)
}

func TestTrace_SingleSphereAmbientOnly(t *testing.T) {
	sc := scene.NewSingleSphereScene()
	tracer := NewTracer(nil)

	ray := core.NewRay(sc.Camera.Position(), core.NewVec3(0, 0, 1))
	got := tracer.Trace(ray, sc.Camera.Position(), sc, 0)

	// sphere tint (0.3, 0.1, 0.1) plus ambient light (0.2, 0.2, 0.3) scaled by material ambient 0.1
	assertColor(t, got, core.NewVec3(0.32, 0.12, 0.13))
}

func TestTrace_MissPolicy(t *testing.T) {
	tests := []struct {
		name     string
		policy   scene.MissPolicy
		ambient  core.Vec3
		expected core.Vec3
	}{
		{"ambient", scene.MissAmbient, core.NewVec3(0.2, 0.2, 0.3), core.NewVec3(0.2, 0.2, 0.3)},
		{"ambient is clamped", scene.MissAmbient, core.NewVec3(1.5, 0.5, -1), core.NewVec3(1, 0.5, 0)},
		{"black", scene.MissBlack, core.NewVec3(0.2, 0.2, 0.3), core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := scene.New(tt.ambient)
			sc.Miss = tt.policy
			sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, core.NewVec3(1, 1, 1), flatMaterial(0, 0, 1, 0)))

			// Looking away from the only sphere
			ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))
			got := NewTracer(nil).Trace(ray, core.Vec3{}, sc, 3)
			assertColor(t, got, tt.expected)
		})
	}
}

func TestTrace_DegenerateRayMisses(t *testing.T) {
	sc := scene.New(core.NewVec3(0.2, 0.2, 0.3))
	sc.AddShape(geometry.NewSphere(core.Vec3{}, 1, core.NewVec3(1, 0, 0), flatMaterial(0, 0, 1, 0)))

	observer := &CountingObserver{}
	got := NewTracer(observer).Trace(core.NewRay(core.NewVec3(0, 0, -5), core.Vec3{}), core.Vec3{}, sc, 2)

	assertColor(t, got, core.NewVec3(0.2, 0.2, 0.3))
	if observer.Misses.Load() != 1 || observer.Hits.Load() != 0 {
		t.Errorf("Expected a single miss, got hits=%d misses=%d", observer.Hits.Load(), observer.Misses.Load())
	}
}

func TestTrace_ShadowOcclusion(t *testing.T) {
	tests := []struct {
		name     string
		occluder bool
		expected core.Vec3
	}{
		{"unoccluded light contributes diffuse", false, core.NewVec3(0.5, 0.5, 0.5)},
		{"occluded light contributes nothing", true, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := scene.New(core.Vec3{})
			sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, core.Vec3{}, flatMaterial(0.5, 0, 1, 0)))
			if tt.occluder {
				// Behind the ray origin but between the lit point and the light
				sc.AddShape(geometry.NewSphere(core.Vec3{}, 0.5, core.Vec3{}, flatMaterial(0, 0, 1, 0)))
			}
			sc.AddLight(lights.NewPointLight(core.NewVec3(0, 0, -10), core.NewVec3(1, 1, 1), core.Vec3{}))

			observer := &CountingObserver{}
			got := NewTracer(observer).Trace(forward, forward.Origin, sc, 0)

			assertColor(t, got, tt.expected)
			if observer.ShadowRays.Load() != 1 {
				t.Errorf("Expected 1 shadow ray, got %d", observer.ShadowRays.Load())
			}
			wantOccluded := int64(0)
			if tt.occluder {
				wantOccluded = 1
			}
			if observer.Occluded.Load() != wantOccluded {
				t.Errorf("Expected %d occluded shadow rays, got %d", wantOccluded, observer.Occluded.Load())
			}
		})
	}
}

func TestTrace_LightBehindSurface(t *testing.T) {
	sc := scene.New(core.Vec3{})
	sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, core.Vec3{}, flatMaterial(0.5, 0.5, 1, 0)))
	sc.AddLight(lights.NewPointLight(core.NewVec3(0, 0, 10), core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1)))

	got := NewTracer(nil).Trace(forward, forward.Origin, sc, 0)
	assertColor(t, got, core.Vec3{})
}

func TestTrace_SpecularUsesUnnormalizedView(t *testing.T) {
	sc := scene.New(core.Vec3{})
	sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, core.Vec3{}, flatMaterial(0, 0.1, 1, 0)))
	sc.AddLight(lights.NewPointLight(core.NewVec3(0, 0, -10), core.Vec3{}, core.NewVec3(1, 1, 1)))

	// Hit at (0, 0, 4), camera at (0, 0, -1): view = (0, 0, -5), reflectance = (0, 0, -1)
	got := NewTracer(nil).Trace(forward, core.NewVec3(0, 0, -1), sc, 0)
	assertColor(t, got, core.NewVec3(0.5, 0.5, 0.5))
}

func TestTrace_SpecularBaseNotClamped(t *testing.T) {
	tests := []struct {
		name      string
		shininess float64
		expected  core.Vec3
	}{
		// view·reflectance = -6: 0.7 + 0.1*(-6)
		{"odd exponent darkens", 1, core.NewVec3(0.1, 0.1, 0.1)},
		// 0.7 + 0.1*36, clamped
		{"even exponent brightens", 2, core.NewVec3(1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := scene.New(core.Vec3{})
			sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, core.NewVec3(0.7, 0.7, 0.7), flatMaterial(0, 0.1, tt.shininess, 0)))
			sc.AddLight(lights.NewPointLight(core.NewVec3(3, 0, 0), core.Vec3{}, core.NewVec3(1, 1, 1)))

			// Hit at (0, 0, 4): reflectance = (-0.6, 0, -0.8), view = (10, 0, 0)
			got := NewTracer(nil).Trace(forward, core.NewVec3(10, 0, 4), sc, 0)
			assertColor(t, got, tt.expected)
		})
	}
}

func TestTrace_FractionalShininessNegativeBaseIsNaN(t *testing.T) {
	sc := scene.New(core.Vec3{})
	sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, core.Vec3{}, flatMaterial(0, 0.1, 0.5, 0)))
	sc.AddLight(lights.NewPointLight(core.NewVec3(3, 0, 0), core.Vec3{}, core.NewVec3(1, 1, 1)))

	got := NewTracer(nil).Trace(forward, core.NewVec3(10, 0, 4), sc, 0)
	if core.IsFinite(got) {
		t.Errorf("Expected non-finite color for negative base with fractional exponent, got %v", got)
	}
}

func TestTrace_ColorIsClamped(t *testing.T) {
	sc := scene.New(core.NewVec3(1, 1, 1))
	mat := material.NewPhong(core.NewVec3(1, 1, 1), core.Vec3{}, core.Vec3{}, 1, core.Vec3{})
	sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, core.NewVec3(2, 0.5, 0), mat))

	got := NewTracer(nil).Trace(forward, forward.Origin, sc, 0)
	assertColor(t, got, core.NewVec3(1, 1, 1))
}

func TestTrace_NilMaterialShowsTintOnly(t *testing.T) {
	sc := scene.New(core.NewVec3(0.5, 0.5, 0.5))
	sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, core.NewVec3(0.25, 0.5, 0.75), nil))
	sc.AddLight(lights.NewPointLight(core.NewVec3(0, 0, -10), core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1)))

	got := NewTracer(nil).Trace(forward, forward.Origin, sc, 4)
	assertColor(t, got, core.NewVec3(0.25, 0.5, 0.75))
}

func TestTrace_Reflection(t *testing.T) {
	tests := []struct {
		name         string
		depth        int
		policy       scene.MissPolicy
		withTarget   bool
		reflectivity float64
		expected     core.Vec3
	}{
		{"depth 0 never reflects", 0, scene.MissAmbient, false, 1, core.Vec3{}},
		{"reflected miss returns ambient", 1, scene.MissAmbient, false, 1, core.NewVec3(0.2, 0.2, 0.3)},
		{"reflected miss returns black", 1, scene.MissBlack, false, 1, core.Vec3{}},
		{"reflection weighted by reflectivity", 1, scene.MissBlack, true, 0.5, core.NewVec3(0, 0.5, 0)},
		{"non-reflective mirror stays dark", 3, scene.MissBlack, true, 0, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := scene.New(core.NewVec3(0.2, 0.2, 0.3))
			sc.Miss = tt.policy
			sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, core.Vec3{}, flatMaterial(0, 0, 1, tt.reflectivity)))
			if tt.withTarget {
				// Seen only through the mirror, straight back down -Z
				sc.AddShape(geometry.NewSphere(core.Vec3{}, 0.5, core.NewVec3(0, 1, 0), flatMaterial(0, 0, 1, 0)))
			}

			got := NewTracer(nil).Trace(forward, forward.Origin, sc, tt.depth)
			assertColor(t, got, tt.expected)
		})
	}
}

func TestTrace_RecursionBoundedByDepth(t *testing.T) {
	// Two facing mirrors bounce the ray back and forth until depth runs out
	sc := scene.New(core.Vec3{})
	sc.Miss = scene.MissBlack
	sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, core.Vec3{}, flatMaterial(0, 0, 1, 1)))
	sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, core.Vec3{}, flatMaterial(0, 0, 1, 1)))

	for _, depth := range []int{0, 1, 3, 8} {
		observer := &CountingObserver{}
		NewTracer(observer).Trace(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1)), core.Vec3{}, sc, depth)

		if got := observer.Reflections.Load(); got != int64(depth) {
			t.Errorf("depth %d: expected %d reflections, got %d", depth, depth, got)
		}
		if got := observer.Hits.Load(); got != int64(depth+1) {
			t.Errorf("depth %d: expected %d hits, got %d", depth, depth+1, got)
		}
		if got := observer.Misses.Load(); got != 0 {
			t.Errorf("depth %d: expected no misses, got %d", depth, got)
		}
	}
}

func TestTrace_Deterministic(t *testing.T) {
	sc := scene.NewDefaultScene()
	tracer := NewTracer(nil)
	camera := sc.Camera

	for _, uv := range [][2]float64{{0, 0}, {0.5, 0.5}, {0.25, 0.7}, {0.9, 0.1}, {0.6, 0.35}} {
		ray := camera.GetRay(uv[0], uv[1])
		first := tracer.Trace(ray, camera.Position(), sc, sc.SamplingConfig.MaxDepth)
		second := tracer.Trace(ray, camera.Position(), sc, sc.SamplingConfig.MaxDepth)
		if first != second {
			t.Errorf("uv %v: expected identical colors, got %v and %v", uv, first, second)
		}
		for i := 0; i < 3; i++ {
			if first[i] < 0 || first[i] > 1 {
				t.Errorf("uv %v: component %d out of [0,1]: %v", uv, i, first)
			}
		}
	}
}

func TestObservers(t *testing.T) {
	sc := scene.New(core.Vec3{})
	sc.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1, core.Vec3{}, flatMaterial(0.5, 0, 1, 1)))
	sc.AddLight(lights.NewPointLight(core.NewVec3(0, 0, -10), core.NewVec3(1, 1, 1), core.Vec3{}))

	a, b := &CountingObserver{}, &CountingObserver{}
	multi := MultiObserver{a, b, NewLogObserver(zap.NewNop()), NopObserver{}}
	NewTracer(multi).Trace(forward, forward.Origin, sc, 2)

	for name, o := range map[string]*CountingObserver{"first": a, "second": b} {
		// Primary hit, then the reflection escapes
		if o.Hits.Load() != 1 || o.Misses.Load() != 1 || o.Reflections.Load() != 1 || o.ShadowRays.Load() != 1 {
			t.Errorf("%s observer: unexpected counts hits=%d misses=%d reflections=%d shadows=%d",
				name, o.Hits.Load(), o.Misses.Load(), o.Reflections.Load(), o.ShadowRays.Load())
		}
	}
}
