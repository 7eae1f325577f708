package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// SceneFile is the YAML description of a scene.
// Spheres refer to materials by name so one material can be shared by many spheres.
type SceneFile struct {
	AmbientLight core.Vec3               `yaml:"ambient_light"`
	Miss         MissPolicy              `yaml:"miss"`
	Camera       CameraFile              `yaml:"camera"`
	Sampling     SamplingConfig          `yaml:"sampling"`
	Materials    map[string]MaterialFile `yaml:"materials"`
	Spheres      []SphereFile            `yaml:"spheres"`
	Lights       []LightFile             `yaml:"lights"`
}

// CameraFile places the camera either by explicit viewport corners or by aspect ratio
type CameraFile struct {
	Position    core.Vec3  `yaml:"position"`
	AspectRatio float64    `yaml:"aspect_ratio"`
	TopLeft     *core.Vec3 `yaml:"top_left"`
	TopRight    *core.Vec3 `yaml:"top_right"`
	BottomLeft  *core.Vec3 `yaml:"bottom_left"`
	BottomRight *core.Vec3 `yaml:"bottom_right"`
}

// MaterialFile describes a Phong material
type MaterialFile struct {
	Ambient      core.Vec3 `yaml:"ambient"`
	Diffuse      core.Vec3 `yaml:"diffuse"`
	Specular     core.Vec3 `yaml:"specular"`
	Shininess    float64   `yaml:"shininess"`
	Reflectivity core.Vec3 `yaml:"reflectivity"`
}

// SphereFile describes a sphere
type SphereFile struct {
	Center   core.Vec3 `yaml:"center"`
	Radius   float64   `yaml:"radius"`
	Color    core.Vec3 `yaml:"color"`
	Material string    `yaml:"material"`
}

// LightFile describes a point light
type LightFile struct {
	Position          core.Vec3 `yaml:"position"`
	DiffuseIntensity  core.Vec3 `yaml:"diffuse_intensity"`
	SpecularIntensity core.Vec3 `yaml:"specular_intensity"`
}

// LoadSceneFile reads and builds a scene from a YAML file
func LoadSceneFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes a YAML scene description and builds the scene.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func ParseScene(data []byte) (*Scene, error) {
	// Height stays zero unless given so it can follow the camera aspect ratio
	defaults := DefaultSamplingConfig()
	file := SceneFile{Sampling: SamplingConfig{
		Width:           defaults.Width,
		SamplesPerPixel: defaults.SamplesPerPixel,
		MaxDepth:        defaults.MaxDepth,
	}}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	return file.Build()
}

// Build turns the description into a validated scene
func (f *SceneFile) Build() (*Scene, error) {
	var err error

	materials := make(map[string]*material.Phong, len(f.Materials))
	for name, m := range f.Materials {
		materials[name] = material.NewPhong(m.Ambient, m.Diffuse, m.Specular, m.Shininess, m.Reflectivity)
	}

	s := New(f.AmbientLight)
	s.Miss = f.Miss

	for i, sf := range f.Spheres {
		mat, ok := materials[sf.Material]
		if !ok {
			err = multierr.Append(err, fmt.Errorf("sphere %d: unknown material %q", i, sf.Material))
			continue
		}
		s.AddShape(geometry.NewSphere(sf.Center, sf.Radius, sf.Color, mat))
	}

	for _, lf := range f.Lights {
		s.AddLight(lights.NewPointLight(lf.Position, lf.DiffuseIntensity, lf.SpecularIntensity))
	}

	aspectRatio := f.Camera.AspectRatio
	if aspectRatio <= 0 {
		aspectRatio = DefaultAspectRatio
	}
	s.SamplingConfig = f.Sampling
	if s.SamplingConfig.Height == 0 && s.SamplingConfig.Width > 0 {
		s.SamplingConfig.Height = int(float64(s.SamplingConfig.Width) / aspectRatio)
	}
	if s.SamplingConfig.SamplesPerPixel == 0 {
		s.SamplingConfig.SamplesPerPixel = 1
	}

	cameraConfig, camErr := f.Camera.config(aspectRatio)
	err = multierr.Append(err, camErr)
	s.SetCameraConfig(cameraConfig)

	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// config resolves the viewport corners, deriving them from the aspect ratio when none are given
func (c CameraFile) config(aspectRatio float64) (geometry.CameraConfig, error) {
	corners := []*core.Vec3{c.TopLeft, c.TopRight, c.BottomLeft, c.BottomRight}
	given := 0
	for _, corner := range corners {
		if corner != nil {
			given++
		}
	}

	switch given {
	case 0:
		return geometry.NewViewportCameraConfig(c.Position, aspectRatio), nil
	case len(corners):
		return geometry.CameraConfig{
			Position:    c.Position,
			TopLeft:     *c.TopLeft,
			TopRight:    *c.TopRight,
			BottomLeft:  *c.BottomLeft,
			BottomRight: *c.BottomRight,
		}, nil
	default:
		return geometry.NewViewportCameraConfig(c.Position, aspectRatio),
			fmt.Errorf("camera: either all four viewport corners or none must be given, got %d", given)
	}
}
