package geometry

import (
	"math"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
	"github.com/jmkw/go-scene-raytracer/pkg/texture"
)

// Sphere is a sphere with a local frame that orients the texture mapping;
// the texture poles lie along the frame's J axis.
type Sphere struct {
	basis   core.Basis
	radius  float64
	pigment texture.Pigment
}

// NewSphere creates a sphere at center. The axis orients the spherical
// texture mapping.
func NewSphere(center, axis core.Vec3, radius float64, pigment texture.Pigment) *Sphere {
	return &Sphere{
		basis:   core.NewBasis(center, axis),
		radius:  radius,
		pigment: pigment,
	}
}

// CastsShadow is true for spheres.
func (s *Sphere) CastsShadow() bool {
	return true
}

// Intersect tests the ray against the sphere.
func (s *Sphere) Intersect(origin, dir core.Vec3, tMin, tMax float64) float64 {
	oc := origin.Subtract(s.basis.O)

	a := dir.Dot(dir)
	b := 2 * dir.Dot(oc)
	c := oc.Dot(oc) - s.radius*s.radius

	t := core.SolveQuadratic(a, b, c)
	if t > tMin && t < tMax {
		return t
	}
	return -1
}

// NormalAt returns the outward normal at a hit point.
func (s *Sphere) NormalAt(hit core.Vec3) core.Vec3 {
	return hit.Subtract(s.basis.O).Normalize()
}

// SurfaceAt maps the normal to spherical UV coordinates.
// Mapping from https://www.cs.unc.edu/~rademach/xroads-RT/RTarticle.html
func (s *Sphere) SurfaceAt(hit, normal core.Vec3) (core.Vec3, float64) {
	dotI := normal.Dot(s.basis.I)
	dotJ := normal.Dot(s.basis.J)
	dotK := normal.Dot(s.basis.K)

	phi := math.Acos(-dotJ)
	v := phi / math.Pi

	sinPhi := math.Sin(phi)
	if sinPhi < core.Epsilon {
		// Pole hit, the azimuth is undefined
		return core.Vec3{}, reflectionOf(s.pigment)
	}

	u := math.Acos(math.Max(-1, math.Min(1, dotI/sinPhi))) / (2 * math.Pi)
	if dotK <= 0 {
		u = 1 - u
	}
	return s.pigment.At(u, v)
}

// reflectionOf samples a pigment only for its reflection coefficient.
func reflectionOf(p texture.Pigment) float64 {
	_, reflect := p.At(0, 0)
	return reflect
}
