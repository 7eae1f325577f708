package material

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Phong holds the per-surface reflectance coefficients of the Phong lighting model.
// Every coefficient is an RGB vector so each channel can be weighted independently.
// A Phong material is shared by pointer between shapes and must not be mutated once rendering starts.
type Phong struct {
	Ambient      core.Vec3 // Response to the scene's ambient light
	Diffuse      core.Vec3 // Matte response to each light
	Specular     core.Vec3 // Glossy highlight response to each light
	Shininess    float64   // Exponent of the specular highlight
	Reflectivity core.Vec3 // Weight applied to the mirror-reflected color
}

// NewPhong creates a new Phong material
func NewPhong(ambient, diffuse, specular core.Vec3, shininess float64, reflectivity core.Vec3) *Phong {
	return &Phong{
		Ambient:      ambient,
		Diffuse:      diffuse,
		Specular:     specular,
		Shininess:    shininess,
		Reflectivity: reflectivity,
	}
}

// IsReflective reports whether any channel reflects light
func (p *Phong) IsReflective() bool {
	return p.Reflectivity != (core.Vec3{})
}

// Validate checks that all coefficients are usable, reporting every problem found
func (p *Phong) Validate() error {
	var err error
	coefficients := []struct {
		name  string
		value core.Vec3
	}{
		{"ambient", p.Ambient},
		{"diffuse", p.Diffuse},
		{"specular", p.Specular},
		{"reflectivity", p.Reflectivity},
	}
	for _, c := range coefficients {
		if !core.IsFinite(c.value) {
			err = multierr.Append(err, fmt.Errorf("%s coefficient is not finite: %v", c.name, c.value))
		}
	}
	if p.Shininess < 0 {
		err = multierr.Append(err, fmt.Errorf("shininess must be non-negative, got %g", p.Shininess))
	}
	return err
}
