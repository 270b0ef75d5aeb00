// Package renderer traces a scene into a linear framebuffer. Primary rays
// are distributed over row-bands rendered by parallel workers; shading adds
// shadow occlusion, distance attenuation, and bounded specular reflection.
package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
	"github.com/jmkw/go-scene-raytracer/pkg/geometry"
	"github.com/jmkw/go-scene-raytracer/pkg/scene"
)

// Renderer owns a framebuffer and traces one world into it. The world is
// shared read-only across workers; every framebuffer cell is written by
// exactly one worker.
type Renderer struct {
	world  *scene.World
	config Config
	logger core.Logger
	frame  []core.Vec3
}

// New creates a renderer with a zeroed framebuffer.
func New(world *scene.World, config Config, logger core.Logger) *Renderer {
	if logger == nil {
		logger = core.NewDefaultLogger()
	}
	return &Renderer{
		world:  world,
		config: config,
		logger: logger,
		frame:  make([]core.Vec3, config.Width*config.Height),
	}
}

// Framebuffer returns the linear pixel buffer, row-major.
func (r *Renderer) Framebuffer() []core.Vec3 {
	return r.frame
}

// At returns the linear pixel at column i, row j.
func (r *Renderer) At(i, j int) core.Vec3 {
	return r.frame[j*r.config.Width+i]
}

// Render traces every pixel. The framebuffer is partitioned into row-bands,
// one per worker; band k covers rows [k*H/T, (k+1)*H/T). Workers share no
// mutable state, so output is bit-identical for any worker count.
func (r *Renderer) Render(ctx context.Context) error {
	workers := r.config.NumThreads
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > r.config.Height {
		workers = r.config.Height
	}

	vw, vh, vo := r.world.Camera.WindowVectors(
		r.config.Width, r.config.Height, r.config.FieldOfVision)

	r.logger.Printf("Rendering %dx%d with %d workers...\n",
		r.config.Width, r.config.Height, workers)

	g, _ := errgroup.WithContext(ctx)
	for k := 0; k < workers; k++ {
		rowStart := k * r.config.Height / workers
		rowEnd := (k + 1) * r.config.Height / workers
		g.Go(func() error {
			r.renderBand(rowStart, rowEnd, vw, vh, vo)
			return nil
		})
	}
	// Wait is the release barrier before the writer reads the framebuffer.
	return g.Wait()
}

// renderBand traces rows [rowStart, rowEnd) in row-major order.
func (r *Renderer) renderBand(rowStart, rowEnd int, vw, vh, vo core.Vec3) {
	eye := r.world.Camera.Eye

	for j := rowStart; j < rowEnd; j++ {
		for i := 0; i < r.config.Width; i++ {
			origin := vo.
				Add(vw.Multiply(float64(i))).
				Add(vh.Multiply(float64(j)))
			direction := origin.Subtract(eye).Normalize()

			r.frame[j*r.config.Width+i] = r.traceRay(origin, direction, 0)
		}
	}
}

// traceRay returns the color seen along a ray. Missed rays are black.
func (r *Renderer) traceRay(origin, dir core.Vec3, depth int) core.Vec3 {
	actor, dist := r.closestHit(origin, dir)
	if actor == nil {
		return core.Vec3{}
	}

	hit := origin.Add(dir.Multiply(dist))
	normal := actor.NormalAt(hit)
	surface, reflect := actor.SurfaceAt(hit, normal)

	var color core.Vec3

	toLight := r.world.Light.ToLight(hit)
	lightDist := toLight.Length()
	if lightDist <= r.config.MaxDistance {
		lightDir := toLight.Multiply(1 / lightDist)

		intensity := normal.Dot(lightDir)
		if intensity < 0 {
			intensity = 0
		}
		if intensity > 0 && r.inShadow(hit, lightDir, lightDist, actor) {
			intensity *= r.config.ShadowBias
		}
		intensity *= r.fade(lightDist)

		color = surface.Multiply(intensity)
	}

	if reflect > 0 && depth < r.config.MaxRayDepth {
		reflectDir := dir.Reflect(normal)
		reflectOrigin := hit.Add(reflectDir.Multiply(r.config.RayBias))
		reflected := r.traceRay(reflectOrigin, reflectDir, depth+1)

		color = color.Multiply(1 - reflect).Add(reflected.Multiply(reflect))
	}

	return color
}

// closestHit finds the nearest actor along a ray. Ties within epsilon keep
// the first actor in scene order.
func (r *Renderer) closestHit(origin, dir core.Vec3) (geometry.Actor, float64) {
	var closest geometry.Actor
	closestDist := r.config.MaxDistance

	for _, actor := range r.world.Actors {
		dist := actor.Intersect(origin, dir, r.config.RayBias, r.config.MaxDistance)
		if dist <= 0 {
			continue
		}
		// A later actor must be closer by more than Epsilon to displace an earlier one
		if (closest == nil && dist < closestDist) || dist < closestDist-core.Epsilon {
			closest = actor
			closestDist = dist
		}
	}
	return closest, closestDist
}

// inShadow reports whether any shadow-casting actor other than self blocks
// the segment from the hit point to the light.
func (r *Renderer) inShadow(hit, lightDir core.Vec3, lightDist float64, self geometry.Actor) bool {
	origin := hit.Add(lightDir.Multiply(r.config.RayBias))

	for _, actor := range r.world.Actors {
		if actor == self || !actor.CastsShadow() {
			continue
		}
		if actor.Intersect(origin, lightDir, r.config.RayBias, lightDist) > 0 {
			return true
		}
	}
	return false
}

// fade returns the distance attenuation factor, clamped to [0, 1].
func (r *Renderer) fade(dist float64) float64 {
	ratio := dist / r.config.MaxDistance

	var fade float64
	switch r.config.LightModel {
	case LightModelLinear:
		fade = 1 - ratio
	case LightModelQuadratic:
		fade = 1 - ratio*ratio
	default:
		fade = 1
	}
	return max(0, min(1, fade))
}
