package renderer

import "github.com/df07/go-phong-raytracer/pkg/core"

// Frame holds the rendered linear color of every pixel, row-major with the top row first.
// Workers write disjoint tiles, so no locking is needed while rendering.
type Frame struct {
	width, height int
	pixels        []core.Vec3
}

// NewFrame creates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Size returns the frame dimensions
func (f *Frame) Size() (int, int) {
	return f.width, f.height
}

// Pixel returns the color at column x, row y
func (f *Frame) Pixel(x, y int) core.Vec3 {
	return f.pixels[y*f.width+x]
}

// Set stores the color at column x, row y
func (f *Frame) Set(x, y int, color core.Vec3) {
	f.pixels[y*f.width+x] = color
}

// AverageLuminance returns the mean perceptual luminance over all pixels
func (f *Frame) AverageLuminance() float64 {
	if len(f.pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range f.pixels {
		total += core.Luminance(c)
	}
	return total / float64(len(f.pixels))
}
