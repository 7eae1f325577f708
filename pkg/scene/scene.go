package scene

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// DefaultAspectRatio is the 16:9 frame used when a scene does not specify one
const DefaultAspectRatio = 16.0 / 9.0

// Scene contains all the elements needed for rendering.
// It is built once before rendering and only read afterwards, so workers may share it.
type Scene struct {
	Shapes         *geometry.Shapes    // Objects in the scene
	Lights         []lights.PointLight // Lights in the scene
	AmbientLight   core.Vec3           // Constant fill light
	Miss           MissPolicy          // Color returned by rays that hit nothing
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int `yaml:"width"`             // Image width
	Height          int `yaml:"height"`            // Image height
	SamplesPerPixel int `yaml:"samples_per_pixel"` // Rays per pixel, jittered when above 1
	MaxDepth        int `yaml:"max_depth"`         // Maximum reflection bounces
}

// DefaultSamplingConfig returns the settings of the reference render
func DefaultSamplingConfig() SamplingConfig {
	width := 800
	return SamplingConfig{
		Width:           width,
		Height:          int(float64(width) / DefaultAspectRatio),
		SamplesPerPixel: 1,
		MaxDepth:        6,
	}
}

// New creates an empty scene with the given ambient light and a default camera
func New(ambientLight core.Vec3) *Scene {
	cameraConfig := geometry.NewViewportCameraConfig(core.NewVec3(0, 0, -1), DefaultAspectRatio)
	return &Scene{
		Shapes:         geometry.NewShapes(),
		Lights:         make([]lights.PointLight, 0),
		AmbientLight:   ambientLight,
		Miss:           MissAmbient,
		Camera:         geometry.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		SamplingConfig: DefaultSamplingConfig(),
	}
}

// AddShape appends a shape to the scene
func (s *Scene) AddShape(shape geometry.Shape) {
	s.Shapes.Add(shape)
}

// AddLight appends a point light to the scene
func (s *Scene) AddLight(light lights.PointLight) {
	s.Lights = append(s.Lights, light)
}

// MissColor returns the color of a ray that leaves the scene without hitting anything
func (s *Scene) MissColor() core.Vec3 {
	if s.Miss == MissBlack {
		return core.Vec3{}
	}
	return core.Clamp01(s.AmbientLight)
}

// SetCameraConfig replaces the camera
func (s *Scene) SetCameraConfig(config geometry.CameraConfig) {
	s.CameraConfig = config
	s.Camera = geometry.NewCamera(config)
}

// SetWidth changes the image width and scales the height to keep the aspect ratio
func (s *Scene) SetWidth(width int) {
	old := s.SamplingConfig
	if old.Width > 0 && old.Height > 0 {
		s.SamplingConfig.Height = max(1, int(math.Round(float64(width)*float64(old.Height)/float64(old.Width))))
	}
	s.SamplingConfig.Width = width
}

// Preprocess validates the scene and prepares it for rendering
func (s *Scene) Preprocess() error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("invalid scene: %w", err)
	}
	if s.Camera == nil {
		s.Camera = geometry.NewCamera(s.CameraConfig)
	}
	return nil
}

// Validate reports every problem with the scene at once
func (s *Scene) Validate() error {
	var err error

	if s.Shapes == nil {
		err = multierr.Append(err, errors.New("scene has no shape collection"))
	} else {
		for i, shape := range s.Shapes.All() {
			err = multierr.Append(err, validateShape(i, shape))
		}
	}

	for i, light := range s.Lights {
		if !core.IsFinite(light.Position) || !core.IsFinite(light.DiffuseIntensity) || !core.IsFinite(light.SpecularIntensity) {
			err = multierr.Append(err, fmt.Errorf("light %d has non-finite values", i))
		}
	}

	if !core.IsFinite(s.AmbientLight) {
		err = multierr.Append(err, fmt.Errorf("ambient light is not finite: %v", s.AmbientLight))
	}

	err = multierr.Append(err, s.SamplingConfig.Validate())
	return err
}

// validateShape checks the shape kinds the scene knows about
func validateShape(index int, shape geometry.Shape) error {
	sphere, ok := shape.(*geometry.Sphere)
	if !ok {
		return nil
	}

	var err error
	if !(sphere.Radius > 0) {
		err = multierr.Append(err, fmt.Errorf("sphere %d: radius must be positive, got %g", index, sphere.Radius))
	}
	if !core.IsFinite(sphere.Center) {
		err = multierr.Append(err, fmt.Errorf("sphere %d: center is not finite", index))
	}
	if sphere.Material == nil {
		err = multierr.Append(err, fmt.Errorf("sphere %d: missing material", index))
	} else if matErr := sphere.Material.Validate(); matErr != nil {
		err = multierr.Append(err, fmt.Errorf("sphere %d: %w", index, matErr))
	}
	return err
}

// Validate checks the image and bounce settings
func (c SamplingConfig) Validate() error {
	var err error
	if c.Width <= 0 || c.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.SamplesPerPixel < 1 {
		err = multierr.Append(err, fmt.Errorf("samples per pixel must be at least 1, got %d", c.SamplesPerPixel))
	}
	if c.MaxDepth < 0 {
		err = multierr.Append(err, fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth))
	}
	return err
}
