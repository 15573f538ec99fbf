// Package oracle verifies symbols end to end: it rasterizes a matrix to a
// grayscale image and round-trips it through an independent decoder,
// checking that the original payload comes back byte-exact.
package oracle

import (
	"image"
	"image/color"

	"qrconform/internal/matrix"
)

// DefaultScale is the per-module upscale factor used when rendering.
// One module becomes a scale x scale block of uniform pixels.
const DefaultScale = 10

// Render rasterizes a matrix to a single-channel image. Dark modules are
// black (0), light modules white (255). No quiet-zone border is added
// beyond what the matrix itself encodes.
func Render(m *matrix.Matrix, scale int) *image.Gray {
	if scale <= 0 {
		scale = DefaultScale
	}
	dim := m.Size() * scale
	img := image.NewGray(image.Rect(0, 0, dim, dim))

	for r := 0; r < m.Size(); r++ {
		for c := 0; c < m.Size(); c++ {
			v := color.Gray{Y: 255}
			if m.At(r, c) {
				v = color.Gray{Y: 0}
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetGray(c*scale+dx, r*scale+dy, v)
				}
			}
		}
	}
	return img
}
