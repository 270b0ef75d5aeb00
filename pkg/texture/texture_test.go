package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
	"github.com/jmkw/go-scene-raytracer/pkg/loaders"
)

// checkerData builds a 2x2 image with distinct corner colors.
func checkerData() *loaders.ImageData {
	return &loaders.ImageData{
		Width:  2,
		Height: 2,
		Pixels: []core.Vec3{
			core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
			core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1),
		},
	}
}

func TestImage_Pick(t *testing.T) {
	img := NewImage(checkerData())

	tests := []struct {
		name     string
		u, v     float64
		scale    float64
		expected core.Vec3
	}{
		{"top left", 0, 0, 1, core.NewVec3(1, 0, 0)},
		{"top right", 0.5, 0, 1, core.NewVec3(0, 1, 0)},
		{"bottom left", 0, 0.5, 1, core.NewVec3(0, 0, 1)},
		{"scale doubles tiling", 0.25, 0, 2, core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := img.Pick(tt.u, tt.v, tt.scale)
			if got.Subtract(tt.expected).Length() > 0.01 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestImage_Pick_TilesPeriodically(t *testing.T) {
	img := NewImage(checkerData())

	// Offsetting UV by a full tile period samples the same pixel
	scales := []float64{0.5, 1, 2}
	coords := []struct{ u, v float64 }{{0.1, 0.3}, {0.7, 0.9}, {0.4, 0.2}}

	for _, s := range scales {
		period := 1 / s
		for _, c := range coords {
			base := img.Pick(c.u, c.v, s)
			overU := img.Pick(c.u+period, c.v, s)
			overV := img.Pick(c.u, c.v+period, s)
			if base != overU || base != overV {
				t.Errorf("Expected periodic tiling at scale %g uv (%g, %g): got %v, %v, %v",
					s, c.u, c.v, base, overU, overV)
			}
		}
	}
}

func TestImage_Pick_NegativeCoordinatesWrap(t *testing.T) {
	img := NewImage(checkerData())

	// Plane tangent coordinates go negative; sampling must still land
	// inside the image.
	got := img.Pick(-0.3, -1.7, 1)
	sum := got.X + got.Y + got.Z
	if sum == 0 {
		t.Error("Expected a valid sample for negative UV")
	}
}

func TestStore_DeduplicatesByFilename(t *testing.T) {
	path := writeTestPNG(t)

	store := NewStore()
	first, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	second, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if first != second {
		t.Error("Expected the same image instance for the same filename")
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 stored image, got %d", store.Len())
	}
}

func TestStore_MissingFile(t *testing.T) {
	store := NewStore()
	if _, err := store.Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected an error for a missing texture file")
	}
}

func TestMapped_And_Flat(t *testing.T) {
	img := NewImage(checkerData())

	mapped := &Mapped{Image: img, Reflect: 0.3, Scale: 1}
	color, reflect := mapped.At(0, 0)
	if color.Subtract(core.NewVec3(1, 0, 0)).Length() > 0.01 {
		t.Errorf("Expected red at origin, got %v", color)
	}
	if reflect != 0.3 {
		t.Errorf("Expected reflect 0.3, got %f", reflect)
	}

	flat := &Flat{Color: core.NewVec3(0, 1, 0), Reflect: 0.7}
	color, reflect = flat.At(0.42, 0.37)
	if color != core.NewVec3(0, 1, 0) || reflect != 0.7 {
		t.Errorf("Expected flat green with reflect 0.7, got %v %f", color, reflect)
	}
}

func writeTestPNG(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	img.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	path := filepath.Join(t.TempDir(), "texture.png")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test texture: %v", err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatalf("Failed to encode test texture: %v", err)
	}
	return path
}
