package geometry

import (
	"math"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
	"github.com/jmkw/go-scene-raytracer/pkg/loaders"
	"github.com/jmkw/go-scene-raytracer/pkg/texture"
)

// MoleculeConfig controls how atom/bond tables decompose into primitives.
type MoleculeConfig struct {
	Orientation
	Scale       float64 // multiplier on interatomic distances
	AtomScale   float64 // multiplier on atom sphere radii
	BondScale   float64 // multiplier on bond cylinder radii
	AtomPigment texture.Pigment
	BondPigment texture.Pigment
}

// Covalent radii in angstroms, used to size atom spheres. Elements not
// listed fall back to defaultAtomRadius.
var atomRadii = map[string]float64{
	"H": 0.31, "He": 0.28,
	"Li": 1.28, "Be": 0.96, "B": 0.84, "C": 0.76, "N": 0.71, "O": 0.66,
	"F": 0.57, "Ne": 0.58,
	"Na": 1.66, "Mg": 1.41, "Al": 1.21, "Si": 1.11, "P": 1.07, "S": 1.05,
	"Cl": 1.02, "Ar": 1.06,
	"K": 2.03, "Ca": 1.76, "Fe": 1.32, "Zn": 1.22, "Br": 1.20, "I": 1.39,
}

const defaultAtomRadius = 0.70

// BuildMolecule decomposes atom/bond tables into spheres and finite
// cylinders. Atom positions are centered on the molecule centroid, scaled,
// rotated, and translated to the configured center. Bonds run between the
// sphere surfaces so they do not poke through the atoms.
func BuildMolecule(mol *loaders.Molecule, cfg MoleculeConfig) []Actor {
	centroid := mol.Center()

	positions := make([]core.Vec3, len(mol.Positions))
	radii := make([]float64, len(mol.Positions))

	actors := make([]Actor, 0, len(mol.Positions)+len(mol.Bonds))
	for n, p := range mol.Positions {
		positions[n] = cfg.apply(p.Subtract(centroid).Multiply(cfg.Scale))

		radius, ok := atomRadii[mol.Elements[n]]
		if !ok {
			radius = defaultAtomRadius
		}
		radii[n] = radius * cfg.Scale * cfg.AtomScale

		actors = append(actors, NewSphere(
			positions[n], core.NewVec3(0, 0, 1), radii[n], cfg.AtomPigment))
	}

	for _, bond := range mol.Bonds {
		a, b := bond[0], bond[1]
		axis := positions[b].Subtract(positions[a])
		length := axis.Length()
		if length < core.Epsilon {
			continue
		}
		dir := axis.Multiply(1 / length)

		// Trim the bond to the gap between the two atom surfaces
		start := positions[a].Add(dir.Multiply(radii[a]))
		end := positions[b].Subtract(dir.Multiply(radii[b]))
		if end.Subtract(start).Dot(dir) < core.Epsilon {
			continue
		}

		radius := 0.45 * cfg.BondScale * math.Min(radii[a], radii[b])
		actors = append(actors, NewBondCylinder(start, end, radius, cfg.BondPigment))
	}

	return actors
}
