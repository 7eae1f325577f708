package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// NewDefaultScene creates the reference scene: four spheres sharing two materials, lit by a
// red-dominant light and a dim green one, seen from (0, 0, -1) through a 16:9 viewport
func NewDefaultScene() *Scene {
	s := New(core.NewVec3(0.2, 0.2, 0.3))

	// Create materials
	glossy := material.NewPhong(
		core.NewVec3(0.8, 0.8, 0.8),
		core.NewVec3(0.5, 1.0, 1.0),
		core.NewVec3(0.0, 0.0, 0.0),
		1.0,
		core.NewVec3(0.5, 0.5, 0.5),
	)
	matte := material.NewPhong(
		core.NewVec3(0.8, 0.8, 0.8),
		core.NewVec3(0.88, 0.88, 0.88),
		core.NewVec3(0.0, 0.0, 0.0),
		1.0,
		core.NewVec3(0.22, 0.22, 0.22),
	)

	s.AddShape(geometry.NewSphere(core.NewVec3(-1, 0, 2), 1.0, core.NewVec3(1, 0, 1), matte))
	s.AddShape(geometry.NewSphere(core.NewVec3(1, -1, 3), 1.0, core.NewVec3(0.2, 0.2, 0.5), glossy))
	s.AddShape(geometry.NewSphere(core.NewVec3(-1, 2, 10), 4.5, core.NewVec3(0.2, 0.2, 0.5), glossy))
	s.AddShape(geometry.NewSphere(core.NewVec3(0.5, 0.5, 1.5), 0.5, core.NewVec3(0, 0.5, 0.5), glossy))

	s.AddLight(lights.NewPointLight(
		core.NewVec3(1, 1, 1.5),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0.5, 0.5, 0.5),
	))
	s.AddLight(lights.NewPointLight(
		core.NewVec3(1, 0, -1),
		core.NewVec3(0, 0.1, 0),
		core.NewVec3(1, 1, 1),
	))

	return s
}

// NewSingleSphereScene creates an unlit sphere straight ahead of the camera.
// With no lights every hit shows only the sphere tint plus ambient response.
func NewSingleSphereScene() *Scene {
	s := New(core.NewVec3(0.2, 0.2, 0.3))

	mat := material.NewPhong(
		core.NewVec3(0.1, 0.1, 0.1),
		core.NewVec3(0.7, 0.7, 0.7),
		core.NewVec3(0.3, 0.3, 0.3),
		8.0,
		core.Vec3{},
	)
	s.AddShape(geometry.NewSphere(core.NewVec3(0, 0, 5), 1.0, core.NewVec3(0.3, 0.1, 0.1), mat))

	cameraConfig := geometry.NewViewportCameraConfig(core.NewVec3(0, 0, -1), 1.0)
	s.SetCameraConfig(cameraConfig)
	s.SamplingConfig.Width = 400
	s.SamplingConfig.Height = 400
	s.SamplingConfig.MaxDepth = 0

	return s
}
