// Package texture holds the immutable image store shared by all actors and
// the pigments that turn UV coordinates into surface colors.
package texture

import (
	"math"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
	"github.com/jmkw/go-scene-raytracer/pkg/loaders"
)

// Pigment answers the surface color and reflection coefficient at a UV
// coordinate. Image-backed and flat-color pigments both satisfy it.
type Pigment interface {
	At(u, v float64) (core.Vec3, float64)
}

// Image is an immutable width × height grid of 8-bit RGB samples. One Image
// is shared by every actor that references the same texture file.
type Image struct {
	width  int
	height int
	pix    []uint8 // 3 bytes per sample, row-major
}

// NewImage quantizes decoded image data into an 8-bit sample grid.
func NewImage(data *loaders.ImageData) *Image {
	pix := make([]uint8, 0, len(data.Pixels)*3)
	for _, p := range data.Pixels {
		c := p.Clamp(0, 1)
		pix = append(pix, uint8(c.X*255), uint8(c.Y*255), uint8(c.Z*255))
	}
	return &Image{width: data.Width, height: data.Height, pix: pix}
}

// Width returns the image width in samples.
func (im *Image) Width() int { return im.width }

// Height returns the image height in samples.
func (im *Image) Height() int { return im.height }

// Pick samples the image at fractional coordinates (u, v) scaled by scale.
// Tiling is periodic in both directions.
func (im *Image) Pick(u, v, scale float64) core.Vec3 {
	x := wrap(int(math.Floor(u*float64(im.width)*scale)), im.width)
	y := wrap(int(math.Floor(v*float64(im.height)*scale)), im.height)

	i := (y*im.width + x) * 3
	return core.NewVec3(
		float64(im.pix[i])/255,
		float64(im.pix[i+1])/255,
		float64(im.pix[i+2])/255,
	)
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// Store loads and deduplicates texture images by file name. A scene that
// references the same file from N actors holds one Image.
type Store struct {
	images map[string]*Image
}

// NewStore creates an empty texture store.
func NewStore() *Store {
	return &Store{images: make(map[string]*Image)}
}

// Load returns the image for filename, reading and decoding it on first use.
func (s *Store) Load(filename string) (*Image, error) {
	if img, ok := s.images[filename]; ok {
		return img, nil
	}

	data, err := loaders.LoadImage(filename)
	if err != nil {
		return nil, err
	}

	img := NewImage(data)
	s.images[filename] = img
	return img, nil
}

// Len returns the number of distinct images held by the store.
func (s *Store) Len() int { return len(s.images) }

// Mapped is a per-actor binding of a shared image with reflection and
// scale coefficients.
type Mapped struct {
	Image   *Image
	Reflect float64
	Scale   float64
}

// At samples the bound image at (u, v).
func (m *Mapped) At(u, v float64) (core.Vec3, float64) {
	return m.Image.Pick(u, v, m.Scale), m.Reflect
}

// Flat is a uniform color with a reflection coefficient. UV is ignored.
type Flat struct {
	Color   core.Vec3
	Reflect float64
}

// At returns the flat color regardless of UV.
func (f *Flat) At(u, v float64) (core.Vec3, float64) {
	return f.Color, f.Reflect
}
