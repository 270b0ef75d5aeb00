package geometry

import (
	"math"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
	"github.com/jmkw/go-scene-raytracer/pkg/texture"
)

// Plane is an infinite plane through the frame origin with normal K.
// Planes do not cast shadows.
type Plane struct {
	basis   core.Basis
	pigment texture.Pigment
}

// NewPlane creates a plane at center with the given normal.
func NewPlane(center, normal core.Vec3, pigment texture.Pigment) *Plane {
	return &Plane{
		basis:   core.NewBasis(center, normal),
		pigment: pigment,
	}
}

// CastsShadow is false for planes.
func (p *Plane) CastsShadow() bool {
	return false
}

// Intersect tests the ray against the plane.
func (p *Plane) Intersect(origin, dir core.Vec3, tMin, tMax float64) float64 {
	denom := dir.Dot(p.basis.K)
	if math.Abs(denom) < core.Epsilon {
		// Ray parallel to the plane
		return -1
	}

	t := -origin.Subtract(p.basis.O).Dot(p.basis.K) / denom
	if t > tMin && t < tMax {
		return t
	}
	return -1
}

// NormalAt returns the plane normal.
func (p *Plane) NormalAt(hit core.Vec3) core.Vec3 {
	return p.basis.K
}

// SurfaceAt maps the hit point onto the tangent plane coordinates.
func (p *Plane) SurfaceAt(hit, normal core.Vec3) (core.Vec3, float64) {
	v := hit.Subtract(p.basis.O)
	return p.pigment.At(v.Dot(p.basis.I), v.Dot(p.basis.J))
}
