// Package scene holds the immutable world model the renderer traces: one
// camera, one point light, and an ordered actor list, plus the loader that
// builds it from a declarative scene file.
package scene

import (
	"github.com/jmkw/go-scene-raytracer/pkg/geometry"
	"github.com/jmkw/go-scene-raytracer/pkg/texture"
)

// World is the complete scene model. It is read-only during a render and
// shared by reference across all workers.
type World struct {
	Camera   Camera
	Light    Light
	Actors   []geometry.Actor
	Textures *texture.Store
}

// NewWorld creates a world with an empty texture store.
func NewWorld(camera Camera, light Light, actors []geometry.Actor) *World {
	return &World{
		Camera:   camera,
		Light:    light,
		Actors:   actors,
		Textures: texture.NewStore(),
	}
}
