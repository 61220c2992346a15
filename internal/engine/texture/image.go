// Package texture provides image decoding and OpenGL texture management.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"

	// Register the decoders for every texture format the meshes reference.
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
)

// DecodeImage reads and decodes an image file into RGBA. The format is
// sniffed from the contents, not the extension.
func DecodeImage(path string) (*image.RGBA, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", path, err)
	}

	return ImageToRGBA(img), nil
}

// ImageToRGBA converts any image.Image to *image.RGBA.
func ImageToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.At(x, y)
			r16, g16, b16, a16 := c.RGBA()
			rgba.SetRGBA(x, y, color.RGBA{
				R: uint8(r16 >> 8),
				G: uint8(g16 >> 8),
				B: uint8(b16 >> 8),
				A: uint8(a16 >> 8),
			})
		}
	}
	return rgba
}

// Checkerboard builds the missing-texture pattern: a purple and black
// checker of cells*cells squares, size pixels on a side.
func Checkerboard(size, cells int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := size / cells
	if cell < 1 {
		cell = 1
	}

	purple := color.RGBA{R: 200, G: 0, B: 200, A: 255}
	black := color.RGBA{A: 255}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, purple)
			} else {
				img.SetRGBA(x, y, black)
			}
		}
	}
	return img
}
