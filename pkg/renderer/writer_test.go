package renderer

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
	"github.com/jmkw/go-scene-raytracer/pkg/scene"
)

func TestFloorByte(t *testing.T) {
	tests := []struct {
		name     string
		in       float64
		expected uint8
	}{
		{"zero", 0, 0},
		{"one", 1, 255},
		{"half floors", 0.5, 127},
		{"fraction floors", 0.996, 253},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := floorByte(tt.in); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestToImage_ClampsChannels(t *testing.T) {
	world := scene.NewWorld(
		scene.Camera{Eye: core.Vec3{}, Target: core.NewVec3(1, 0, 0)},
		scene.Light{Position: core.Vec3{}},
		nil,
	)
	config := testConfig(320, 240)
	r := New(world, config, &core.SilentLogger{})

	fb := r.Framebuffer()
	fb[0] = core.NewVec3(2, -1, 0.5)

	img := r.ToImage()
	offset := img.PixOffset(0, 0)
	if img.Pix[offset] != 255 || img.Pix[offset+1] != 0 || img.Pix[offset+2] != 127 {
		t.Errorf("Expected (255, 0, 127), got (%d, %d, %d)",
			img.Pix[offset], img.Pix[offset+1], img.Pix[offset+2])
	}
	if img.Pix[offset+3] != 255 {
		t.Errorf("Expected opaque alpha, got %d", img.Pix[offset+3])
	}
}

func TestWritePNG(t *testing.T) {
	world := scene.NewWorld(
		scene.Camera{Eye: core.Vec3{}, Target: core.NewVec3(1, 0, 0)},
		scene.Light{Position: core.Vec3{}},
		nil,
	)
	config := testConfig(320, 240)
	r := New(world, config, &core.SilentLogger{})
	if err := r.Render(context.Background()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := r.WritePNG(path); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 240 {
		t.Errorf("Expected 320x240 output, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestWritePNG_BadPath(t *testing.T) {
	world := scene.NewWorld(
		scene.Camera{Eye: core.Vec3{}, Target: core.NewVec3(1, 0, 0)},
		scene.Light{Position: core.Vec3{}},
		nil,
	)
	r := New(world, testConfig(320, 240), &core.SilentLogger{})

	if err := r.WritePNG(filepath.Join(t.TempDir(), "no", "such", "dir.png")); err == nil {
		t.Error("Expected an error for an unwritable path")
	}
}
