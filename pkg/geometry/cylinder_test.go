package geometry

import (
	"math"
	"testing"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
)

func TestCylinder_Intersect(t *testing.T) {
	// Infinite cylinder along z through the origin
	infinite := NewCylinder(core.Vec3{}, core.NewVec3(0, 0, 1), 1, -1, red)
	// Finite cylinder spanning z in [-2, 2]
	finite := NewCylinder(core.Vec3{}, core.NewVec3(0, 0, 1), 1, 2, red)

	tests := []struct {
		name     string
		cylinder *Cylinder
		origin   core.Vec3
		dir      core.Vec3
		expected float64
	}{
		{"infinite head on", infinite, core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0), 4},
		{"infinite far along axis", infinite, core.NewVec3(5, 0, 100), core.NewVec3(-1, 0, 0), 4},
		{"finite inside span", finite, core.NewVec3(5, 0, 1), core.NewVec3(-1, 0, 0), 4},
		{"finite beyond span", finite, core.NewVec3(5, 0, 3), core.NewVec3(-1, 0, 0), -1},
		{"parallel to axis", finite, core.NewVec3(5, 0, -10), core.NewVec3(0, 0, 1), -1},
		{"offset miss", infinite, core.NewVec3(5, 2, 0), core.NewVec3(-1, 0, 0), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cylinder.Intersect(tt.origin, tt.dir, 0.001, 1000)
			if math.Abs(got-tt.expected) > 1e-6 {
				t.Errorf("Expected t=%f, got t=%f", tt.expected, got)
			}
		})
	}
}

func TestCylinder_Intersect_HitDistanceEqualsEuclidean(t *testing.T) {
	cylinder := NewCylinder(core.NewVec3(1, 1, 0), core.NewVec3(0, 0, 1), 2, -1, red)

	surface := core.NewVec3(3, 1, 5)
	origin := core.NewVec3(9, 1, 2)
	dir := surface.Subtract(origin).Normalize()

	got := cylinder.Intersect(origin, dir, 0.001, 1000)
	expected := surface.Subtract(origin).Length()
	if math.Abs(got-expected) > 1e-6 {
		t.Errorf("Expected t=%f, got t=%f", expected, got)
	}
}

func TestCylinder_NormalAt(t *testing.T) {
	cylinder := NewCylinder(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1), 1, -1, red)

	// The normal is radial, independent of the axial offset
	normal := cylinder.NormalAt(core.NewVec3(1, 0, 42))
	expected := core.NewVec3(1, 0, 0)
	if normal.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expected, normal)
	}
}

func TestNewBondCylinder_SpansSegment(t *testing.T) {
	a := core.NewVec3(0, 0, 0)
	b := core.NewVec3(0, 0, 4)
	bond := NewBondCylinder(a, b, 0.2, red)

	// Hits inside the segment, misses past the endpoints
	if got := bond.Intersect(core.NewVec3(5, 0, 2), core.NewVec3(-1, 0, 0), 0.001, 100); math.Abs(got-4.8) > 1e-6 {
		t.Errorf("Expected hit at t=4.8 inside segment, got %f", got)
	}
	if got := bond.Intersect(core.NewVec3(5, 0, 4.5), core.NewVec3(-1, 0, 0), 0.001, 100); got != -1 {
		t.Errorf("Expected miss past endpoint, got t=%f", got)
	}
}
