// Package geometry implements the actor set the renderer traces against:
// planes, spheres, finite cylinders, triangles, and the composite builders
// that decompose cubes, molecules, and meshes into those primitives.
package geometry

import (
	"github.com/jmkw/go-scene-raytracer/pkg/core"
)

// Actor is a primitive with a local frame and a surface pigment.
//
// Intersect returns the hit distance along a ray, or -1 on a miss. The
// direction is not required to be unit length; the renderer normalizes
// primary and secondary rays before tracing.
type Actor interface {
	// CastsShadow reports whether the actor occludes light rays.
	CastsShadow() bool

	// Intersect returns the distance to the nearest surface crossing when it
	// lies in (tMin, tMax), or -1 otherwise. A farther crossing is not
	// searched, so a ray whose nearest crossing falls outside the window
	// (e.g. from inside a sphere) is a miss.
	Intersect(origin, dir core.Vec3, tMin, tMax float64) float64

	// NormalAt returns the surface normal at a hit point.
	NormalAt(hit core.Vec3) core.Vec3

	// SurfaceAt returns the surface color and reflection coefficient at a
	// hit point with the given normal.
	SurfaceAt(hit, normal core.Vec3) (core.Vec3, float64)
}
