package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// ToImage converts the linear framebuffer to an 8-bit RGB image by
// clamping each channel to [0, 1] and scaling to 255.
func (r *Renderer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.config.Width, r.config.Height))

	for j := 0; j < r.config.Height; j++ {
		for i := 0; i < r.config.Width; i++ {
			c := r.frame[j*r.config.Width+i].Clamp(0, 1)
			offset := img.PixOffset(i, j)
			img.Pix[offset] = floorByte(c.X)
			img.Pix[offset+1] = floorByte(c.Y)
			img.Pix[offset+2] = floorByte(c.Z)
			img.Pix[offset+3] = 255
		}
	}
	return img
}

func floorByte(c float64) uint8 {
	v := int(c * 255)
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

// WritePNG encodes the framebuffer as a PNG file.
func (r *Renderer) WritePNG(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, r.ToImage()); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
