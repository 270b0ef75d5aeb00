package geometry

import (
	"math"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
	"github.com/jmkw/go-scene-raytracer/pkg/texture"
)

// Triangle is a single triangle with a precomputed inward-edge basis for
// the point-in-triangle test.
type Triangle struct {
	basis   core.Basis
	a, b, c core.Vec3
	// Inward edge vectors: the hit lies inside iff its offset from each
	// vertex has a positive dot with the matching edge vector.
	ta, tb, tc core.Vec3
	pigment    texture.Pigment
}

// NewTriangle creates a triangle from three vertices.
func NewTriangle(a, b, c core.Vec3, pigment texture.Pigment) *Triangle {
	basis := core.NewTriangleBasis(a, b, c)
	return &Triangle{
		basis:   basis,
		a:       a,
		b:       b,
		c:       c,
		ta:      basis.K.Cross(a.Subtract(c)),
		tb:      basis.K.Cross(b.Subtract(a)),
		tc:      basis.K.Cross(c.Subtract(b)),
		pigment: pigment,
	}
}

// CastsShadow is true for triangles.
func (t *Triangle) CastsShadow() bool {
	return true
}

// Intersect tests the ray against the supporting plane, then the hit point
// against the three inward edge vectors.
func (t *Triangle) Intersect(origin, dir core.Vec3, tMin, tMax float64) float64 {
	denom := dir.Dot(t.basis.K)
	if math.Abs(denom) < core.Epsilon {
		return -1
	}

	dist := -origin.Subtract(t.basis.O).Dot(t.basis.K) / denom
	if dist <= tMin || dist >= tMax {
		return -1
	}

	hit := origin.Add(dir.Multiply(dist))
	if hit.Subtract(t.a).Dot(t.ta) > 0 &&
		hit.Subtract(t.b).Dot(t.tb) > 0 &&
		hit.Subtract(t.c).Dot(t.tc) > 0 {
		return dist
	}
	return -1
}

// NormalAt returns the face normal.
func (t *Triangle) NormalAt(hit core.Vec3) core.Vec3 {
	return t.basis.K
}

// SurfaceAt returns the flat surface color; triangles are not UV-mapped.
func (t *Triangle) SurfaceAt(hit, normal core.Vec3) (core.Vec3, float64) {
	return t.pigment.At(0, 0)
}
