package geometry

import (
	"math"
	"testing"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
)

func TestBuildCube_TwelveTriangles(t *testing.T) {
	actors := BuildCube(Orientation{Center: core.NewVec3(1, 2, 3)},
		core.NewVec3(0, 0, 1), 2, red)

	if len(actors) != 12 {
		t.Fatalf("Expected 12 triangles, got %d", len(actors))
	}
	for n, actor := range actors {
		if _, ok := actor.(*Triangle); !ok {
			t.Errorf("Expected actor %d to be a triangle, got %T", n, actor)
		}
	}
}

func TestBuildCube_HitDistance(t *testing.T) {
	actors := BuildCube(Orientation{Center: core.NewVec3(5, 0, 0)},
		core.NewVec3(0, 0, 1), 2, red)

	// The near face of an edge-2 cube at x=5 sits at x=4. The ray stays off
	// the face diagonal, where the face's two triangles meet and the strict
	// inside test counts neither of them.
	origin := core.NewVec3(0, 0.3, 0.1)
	dir := core.NewVec3(1, 0, 0)

	closest := math.Inf(1)
	for _, actor := range actors {
		if dist := actor.Intersect(origin, dir, 0.001, 100); dist > 0 && dist < closest {
			closest = dist
		}
	}
	if math.Abs(closest-4) > 1e-6 {
		t.Errorf("Expected hit at t=4, got %f", closest)
	}
}

func TestBuildCube_NormalsPointOutward(t *testing.T) {
	center := core.NewVec3(0, 0, 0)
	actors := BuildCube(Orientation{Center: center}, core.NewVec3(0, 0, 1), 2, red)

	for n, actor := range actors {
		tri := actor.(*Triangle)
		// Centroid offset from the cube center must align with the normal
		toFace := tri.basis.O.Subtract(center)
		if toFace.Dot(tri.basis.K) <= 0 {
			t.Errorf("Triangle %d normal %v points inward", n, tri.basis.K)
		}
	}
}

func TestBuildCube_Rotation(t *testing.T) {
	// A quarter turn around z maps the +x face to +y
	actors := BuildCube(Orientation{AngleZ: math.Pi / 2},
		core.NewVec3(0, 0, 1), 2, red)

	// Off the face diagonal, as in TestBuildCube_HitDistance
	origin := core.NewVec3(0.3, 5, 0.1)
	dir := core.NewVec3(0, -1, 0)

	closest := math.Inf(1)
	for _, actor := range actors {
		if dist := actor.Intersect(origin, dir, 0.001, 100); dist > 0 && dist < closest {
			closest = dist
		}
	}
	if math.Abs(closest-4) > 1e-6 {
		t.Errorf("Expected rotated face hit at t=4, got %f", closest)
	}
}
