package geometry

import (
	"github.com/jmkw/go-scene-raytracer/pkg/core"
	"github.com/jmkw/go-scene-raytracer/pkg/texture"
)

// Orientation is the shared placement of composite actors: a pivot point and
// rotation angles (radians) applied about the global X, Y, Z axes, in that
// order.
type Orientation struct {
	Center core.Vec3
	AngleX float64
	AngleY float64
	AngleZ float64
}

// apply rotates a pivot-relative offset and translates it to the center.
func (o Orientation) apply(offset core.Vec3) core.Vec3 {
	v := offset.
		RotateAround(core.NewVec3(1, 0, 0), o.AngleX).
		RotateAround(core.NewVec3(0, 1, 0), o.AngleY).
		RotateAround(core.NewVec3(0, 0, 1), o.AngleZ)
	return o.Center.Add(v)
}

// Corner offsets of a cube with half-edge 1: the -z square counterclockwise
// from (-1, -1), then the +z square in the same order.
var cubeCorners = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// Corner index triples per face, wound counterclockwise seen from outside
// so every face normal points outward.
var cubeFaces = [12][3]int{
	{0, 3, 2}, {0, 2, 1}, // -z
	{4, 5, 6}, {4, 6, 7}, // +z
	{0, 1, 5}, {0, 5, 4}, // -y
	{3, 7, 6}, {3, 6, 2}, // +y
	{0, 4, 7}, {0, 7, 3}, // -x
	{1, 2, 6}, {1, 6, 5}, // +x
}

// BuildCube decomposes a cube into 12 triangles. The cube's K axis follows
// direction, edge is the edge length, and the orientation angles rotate the
// finished cube about its center.
func BuildCube(orient Orientation, direction core.Vec3, edge float64, pigment texture.Pigment) []Actor {
	basis := core.NewBasis(core.Vec3{}, direction)

	half := edge / 2
	var corners [8]core.Vec3
	for n, c := range cubeCorners {
		offset := basis.I.Multiply(c[0] * half).
			Add(basis.J.Multiply(c[1] * half)).
			Add(basis.K.Multiply(c[2] * half))
		corners[n] = orient.apply(offset)
	}

	actors := make([]Actor, 0, len(cubeFaces))
	for _, face := range cubeFaces {
		actors = append(actors, NewTriangle(
			corners[face[0]], corners[face[1]], corners[face[2]], pigment))
	}
	return actors
}
