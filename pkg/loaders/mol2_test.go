package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
)

const waterMol2 = `@<TRIPOS>MOLECULE
water
 3 2 1 0 0
SMALL
NO_CHARGES

@<TRIPOS>ATOM
      1 O          0.0000    0.0000    0.0000 O.3     1  WAT1        0.0000
      2 H1         0.9572    0.0000    0.0000 H       1  WAT1        0.0000
      3 H2        -0.2400    0.9266    0.0000 H       1  WAT1        0.0000
@<TRIPOS>BOND
     1    1    2 1
     2    1    3 1
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadMol2(t *testing.T) {
	mol, err := LoadMol2(writeTempFile(t, "water.mol2", waterMol2))
	if err != nil {
		t.Fatalf("LoadMol2 failed: %v", err)
	}

	expectedElements := []string{"O", "H", "H"}
	if diff := cmp.Diff(expectedElements, mol.Elements); diff != "" {
		t.Errorf("Elements mismatch (-want +got):\n%s", diff)
	}

	expectedBonds := [][2]int{{0, 1}, {0, 2}}
	if diff := cmp.Diff(expectedBonds, mol.Bonds); diff != "" {
		t.Errorf("Bonds mismatch (-want +got):\n%s", diff)
	}

	if len(mol.Positions) != 3 {
		t.Fatalf("Expected 3 positions, got %d", len(mol.Positions))
	}
	expected := core.NewVec3(0.9572, 0, 0)
	if mol.Positions[1].Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected position %v, got %v", expected, mol.Positions[1])
	}
}

func TestLoadMol2_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"no atoms", "@<TRIPOS>MOLECULE\nempty\n"},
		{"bad coordinates", "@<TRIPOS>ATOM\n1 O a b c O.3\n"},
		{"bond out of range", "@<TRIPOS>ATOM\n1 O 0 0 0 O.3\n@<TRIPOS>BOND\n1 1 9 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMol2(writeTempFile(t, "bad.mol2", tt.content))
			if err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadMol2_MissingFile(t *testing.T) {
	if _, err := LoadMol2(filepath.Join(t.TempDir(), "missing.mol2")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestMolecule_Center(t *testing.T) {
	mol := &Molecule{
		Positions: []core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(3, 2, -4)},
	}
	center := mol.Center()
	expected := core.NewVec3(2, 1, -2)
	if center.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected center %v, got %v", expected, center)
	}
}
