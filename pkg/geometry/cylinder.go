package geometry

import (
	"math"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
	"github.com/jmkw/go-scene-raytracer/pkg/texture"
)

// Cylinder is an open cylinder around the frame's K axis. A negative span
// makes it infinite; otherwise it extends span units to both sides of the
// origin.
type Cylinder struct {
	basis   core.Basis
	radius  float64
	span    float64
	pigment texture.Pigment
}

// NewCylinder creates a cylinder at center along direction with the given
// radius and half-length span.
func NewCylinder(center, direction core.Vec3, radius, span float64, pigment texture.Pigment) *Cylinder {
	return &Cylinder{
		basis:   core.NewBasis(center, direction),
		radius:  radius,
		span:    span,
		pigment: pigment,
	}
}

// NewBondCylinder creates a finite cylinder spanning the segment from a to b,
// as used for molecule bonds.
func NewBondCylinder(a, b core.Vec3, radius float64, pigment texture.Pigment) *Cylinder {
	axis := b.Subtract(a)
	center := a.Add(b).Multiply(0.5)
	return NewCylinder(center, axis, radius, axis.Length()/2, pigment)
}

// CastsShadow is true for cylinders.
func (c *Cylinder) CastsShadow() bool {
	return true
}

// Intersect tests the ray against the cylinder surface.
//
// With v = O - o, a = D·v, b = D·k, d = v·k, f = r² - v·v the hit distance
// solves (1-b²)t² + 2(a-b·d)t - (d² + f) = 0, and the axial offset of the
// hit is d + t·b.
func (c *Cylinder) Intersect(origin, dir core.Vec3, tMin, tMax float64) float64 {
	v := origin.Subtract(c.basis.O)

	a := dir.Dot(v)
	b := dir.Dot(c.basis.K)
	d := v.Dot(c.basis.K)
	f := c.radius*c.radius - v.Dot(v)

	// A ray parallel to the axis never crosses the lateral surface
	aa := 1 - b*b
	if math.Abs(aa) < 1e-12 {
		return -1
	}

	t := core.SolveQuadratic(aa, 2*(a-b*d), -(d*d)-f)
	if t <= tMin || t >= tMax {
		return -1
	}

	if c.span >= 0 {
		alpha := d + t*b
		if alpha < -c.span || alpha > c.span {
			return -1
		}
	}
	return t
}

// NormalAt returns the radial normal at a hit point.
func (c *Cylinder) NormalAt(hit core.Vec3) core.Vec3 {
	v := hit.Subtract(c.basis.O)
	alpha := c.basis.K.Dot(v)
	axisPoint := c.basis.O.Add(c.basis.K.Multiply(alpha))
	return hit.Subtract(axisPoint).Normalize()
}

// SurfaceAt maps the hit to cylindrical UV coordinates: azimuth around the
// axis and distance along it.
func (c *Cylinder) SurfaceAt(hit, normal core.Vec3) (core.Vec3, float64) {
	alpha := hit.Subtract(c.basis.O).Dot(c.basis.K)

	dot := math.Max(-1, math.Min(1, normal.Dot(c.basis.I)))
	u := math.Acos(dot) / math.Pi
	v := alpha / (2 * math.Pi * c.radius)

	return c.pigment.At(u, v)
}
