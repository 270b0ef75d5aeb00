package scene

import "github.com/jmkw/go-scene-raytracer/pkg/core"

// Light is a point light with uniform radiance.
type Light struct {
	Position core.Vec3
}

// ToLight returns the unnormalized vector from a hit point to the light.
func (l *Light) ToLight(hit core.Vec3) core.Vec3 {
	return l.Position.Subtract(hit)
}
