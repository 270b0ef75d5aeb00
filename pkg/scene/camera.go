package scene

import (
	"math"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
)

// Camera holds the eye placement read from the scene file. Resolution and
// field of vision are render-time settings, so the window vectors are
// derived on demand.
type Camera struct {
	Eye    core.Vec3
	Target core.Vec3
	Roll   float64 // radians
}

// WindowVectors derives the per-column step vw, the per-row step vh, and
// the top-left window origin vo for the given resolution and horizontal
// field of vision (degrees). Pixel (i, j) emits a primary ray from
// origin = vo + i*vw + j*vh along normalize(origin - eye).
func (c *Camera) WindowVectors(width, height int, fovDeg float64) (vw, vh, vo core.Vec3) {
	look := c.Target.Subtract(c.Eye).Normalize()

	basis := core.NewBasis(c.Eye, look)
	if c.Roll != 0 {
		basis = basis.RotateAround(look, c.Roll)
	}

	// The window spans ratio x 1 at the distance that makes the horizontal
	// angle across it equal to the field of vision.
	ratio := float64(width) / float64(height)
	perspective := ratio / (2 * math.Tan(fovDeg/2*math.Pi/180))

	center := c.Eye.Add(look.Multiply(perspective))

	vw = basis.I.Multiply(ratio / float64(width))
	vh = basis.J.Multiply(-1.0 / float64(height))
	vo = center.
		Subtract(basis.I.Multiply(ratio / 2)).
		Add(basis.J.Multiply(0.5))
	return vw, vh, vo
}
