package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
)

// Molecule contains atom and bond tables read from a mol2 file.
type Molecule struct {
	Elements  []string    // element symbol per atom, e.g. "C", "O"
	Positions []core.Vec3 // atom coordinates per atom
	Bonds     [][2]int    // zero-based atom index pairs
}

// LoadMol2 reads a molecule from a TRIPOS mol2 file. Only the ATOM and BOND
// sections are consumed; everything else is skipped.
func LoadMol2(filename string) (*Molecule, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open mol2 file: %w", err)
	}
	defer file.Close()

	mol := &Molecule{}

	const (
		sectionNone = iota
		sectionAtom
		sectionBond
	)
	section := sectionNone

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "@<TRIPOS>") {
			switch line {
			case "@<TRIPOS>ATOM":
				section = sectionAtom
			case "@<TRIPOS>BOND":
				section = sectionBond
			default:
				section = sectionNone
			}
			continue
		}

		switch section {
		case sectionAtom:
			// id name x y z sybyl_type [subst_id subst_name charge]
			fields := strings.Fields(line)
			if len(fields) < 6 {
				return nil, fmt.Errorf("malformed atom record %q in %s", line, filename)
			}
			x, err1 := strconv.ParseFloat(fields[2], 64)
			y, err2 := strconv.ParseFloat(fields[3], 64)
			z, err3 := strconv.ParseFloat(fields[4], 64)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("malformed atom coordinates %q in %s", line, filename)
			}
			// SYBYL atom types are "element" or "element.subtype"
			element, _, _ := strings.Cut(fields[5], ".")
			mol.Elements = append(mol.Elements, element)
			mol.Positions = append(mol.Positions, core.NewVec3(x, y, z))

		case sectionBond:
			// id origin_atom target_atom type
			fields := strings.Fields(line)
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed bond record %q in %s", line, filename)
			}
			a, err1 := strconv.Atoi(fields[1])
			b, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("malformed bond indices %q in %s", line, filename)
			}
			// mol2 atom ids are one-based
			mol.Bonds = append(mol.Bonds, [2]int{a - 1, b - 1})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mol2 file: %w", err)
	}

	if len(mol.Positions) == 0 {
		return nil, fmt.Errorf("no atoms found in %s", filename)
	}
	for _, bond := range mol.Bonds {
		if bond[0] < 0 || bond[0] >= len(mol.Positions) ||
			bond[1] < 0 || bond[1] >= len(mol.Positions) {
			return nil, fmt.Errorf("bond references missing atom in %s", filename)
		}
	}

	return mol, nil
}

// Center returns the centroid of the atom positions.
func (m *Molecule) Center() core.Vec3 {
	sum := core.Vec3{}
	for _, p := range m.Positions {
		sum = sum.Add(p)
	}
	return sum.Multiply(1.0 / float64(len(m.Positions)))
}
