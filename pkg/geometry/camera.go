package geometry

import "github.com/df07/go-phong-raytracer/pkg/core"

// CameraConfig places the eye and the four corners of the viewport rectangle
type CameraConfig struct {
	Position    core.Vec3 `yaml:"position"`
	TopLeft     core.Vec3 `yaml:"top_left"`
	TopRight    core.Vec3 `yaml:"top_right"`
	BottomLeft  core.Vec3 `yaml:"bottom_left"`
	BottomRight core.Vec3 `yaml:"bottom_right"`
}

// NewViewportCameraConfig returns a camera at position looking through a 2-unit wide viewport
// on the z=0 plane. The horizontal axis runs from +x on the left to -x on the right.
func NewViewportCameraConfig(position core.Vec3, aspectRatio float64) CameraConfig {
	halfHeight := 1.0 / aspectRatio
	return CameraConfig{
		Position:    position,
		TopLeft:     core.NewVec3(1, halfHeight, 0),
		TopRight:    core.NewVec3(-1, halfHeight, 0),
		BottomLeft:  core.NewVec3(1, -halfHeight, 0),
		BottomRight: core.NewVec3(-1, -halfHeight, 0),
	}
}

// Camera maps image-plane coordinates to primary rays
type Camera struct {
	config CameraConfig
}

// NewCamera creates a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	return &Camera{config: config}
}

// Position returns the eye position used for specular shading
func (c *Camera) Position() core.Vec3 {
	return c.config.Position
}

// ViewportPoint bilinearly interpolates the viewport corners.
// u runs left to right and v top to bottom, both in [0, 1].
func (c *Camera) ViewportPoint(u, v float64) core.Vec3 {
	top := core.Lerp(c.config.TopLeft, c.config.TopRight, u)
	bottom := core.Lerp(c.config.BottomLeft, c.config.BottomRight, u)
	return core.Lerp(top, bottom, v)
}

// GetRay returns the ray starting on the viewport at (u, v) and pointing away from the eye
func (c *Camera) GetRay(u, v float64) core.Ray {
	pixel := c.ViewportPoint(u, v)
	return core.NewRay(pixel, core.SafeNormalize(pixel.Sub(c.config.Position)))
}
