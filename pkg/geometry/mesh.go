package geometry

import (
	"github.com/jmkw/go-scene-raytracer/pkg/core"
	"github.com/jmkw/go-scene-raytracer/pkg/loaders"
	"github.com/jmkw/go-scene-raytracer/pkg/texture"
)

// MeshConfig controls how triangle mesh data is placed in the scene.
type MeshConfig struct {
	Orientation
	Scale   float64
	Pigment texture.Pigment
}

// BuildMesh decomposes mesh data into triangle actors. Vertices are centered
// on the mesh centroid, scaled, rotated, and translated to the configured
// center. Degenerate faces are dropped.
func BuildMesh(mesh *loaders.MeshData, cfg MeshConfig) []Actor {
	centroid := core.Vec3{}
	for _, v := range mesh.Vertices {
		centroid = centroid.Add(v)
	}
	if len(mesh.Vertices) > 0 {
		centroid = centroid.Multiply(1 / float64(len(mesh.Vertices)))
	}

	placed := make([]core.Vec3, len(mesh.Vertices))
	for n, v := range mesh.Vertices {
		placed[n] = cfg.apply(v.Subtract(centroid).Multiply(cfg.Scale))
	}

	actors := make([]Actor, 0, len(mesh.Faces)/3)
	for f := 0; f+2 < len(mesh.Faces); f += 3 {
		if !validFace(mesh.Faces[f:f+3], len(placed)) {
			continue
		}
		a := placed[mesh.Faces[f]]
		b := placed[mesh.Faces[f+1]]
		c := placed[mesh.Faces[f+2]]

		edge := b.Subtract(a).Cross(c.Subtract(a))
		if edge.LengthSquared() < core.Epsilon*core.Epsilon {
			continue
		}
		actors = append(actors, NewTriangle(a, b, c, cfg.Pigment))
	}
	return actors
}

func validFace(indices []int, vertexCount int) bool {
	for _, i := range indices {
		if i < 0 || i >= vertexCount {
			return false
		}
	}
	return true
}
