package imageio

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Pixels is a finished frame of linear colors in [0,1]
type Pixels interface {
	Size() (width, height int)
	Pixel(x, y int) core.Vec3
}

// Quantize maps a channel in [0,1] to a byte, rounding to nearest.
// Out-of-range and NaN values are clamped.
func Quantize(channel float64) uint8 {
	if math.IsNaN(channel) {
		return 0
	}
	v := math.Round(channel * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// QuantizeColor quantizes all three channels
func QuantizeColor(c core.Vec3) (r, g, b uint8) {
	return Quantize(c.X()), Quantize(c.Y()), Quantize(c.Z())
}

// WritePPM writes pixels as a plain-text P3 image, one "R G B" triple per line,
// top row first, left to right
func WritePPM(w io.Writer, pixels Pixels) error {
	width, height := pixels.Size()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b := QuantizeColor(pixels.Pixel(x, y))
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return fmt.Errorf("failed to write pixel (%d, %d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush PPM: %w", err)
	}
	return nil
}
