package integrator

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe to call from several goroutines on the same read-only scene.
type Integrator interface {
	// Trace returns the linear RGB color seen along ray, spending at most remainingDepth bounces
	Trace(ray core.Ray, cameraPosition core.Vec3, s *scene.Scene, remainingDepth int) core.Vec3
}
