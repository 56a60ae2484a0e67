package docking

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// atomLine renders a wwPDB fixed-column ATOM record.
func atomLine(serial int, name, element string, x, y, z float64) string {
	return fmt.Sprintf("ATOM  %5d %-4s %-3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s",
		serial, name, "LIG", "A", 1, x, y, z, 1.00, 0.00, element)
}

func TestParseStructure_ModelMarkers(t *testing.T) {
	var b strings.Builder
	b.WriteString("MODEL 1\n")
	b.WriteString(atomLine(1, "C1", "C", 0, 0, 0) + "\n")
	b.WriteString(atomLine(2, "O1", "O", 1.4, 0, 0) + "\n")
	b.WriteString("ENDMDL\n")
	b.WriteString("MODEL 2\n")
	b.WriteString(atomLine(1, "C1", "C", 5, 5, 5) + "\n")
	b.WriteString("ENDMDL\n")

	poses := ParseStructure(b.String(), DefaultStructureOptions())
	require.Len(t, poses, 2)
	assert.Equal(t, 1, poses[0].ModelID)
	assert.Equal(t, 2, poses[1].ModelID)
	assert.Len(t, poses[0].Atoms, 2)
	assert.Len(t, poses[1].Atoms, 1)
}

func TestParseStructure_ImplicitSinglePose(t *testing.T) {
	// Scenario B: no MODEL markers, 4 atom lines → one implicit pose, id 1.
	var b strings.Builder
	for i := 1; i <= 4; i++ {
		b.WriteString(atomLine(i, "C1", "C", float64(i)*10, 0, 0) + "\n")
	}

	poses := ParseStructure(b.String(), DefaultStructureOptions())
	require.Len(t, poses, 1)
	assert.Equal(t, 1, poses[0].ModelID)
	assert.Len(t, poses[0].Atoms, 4)
}

func TestParseStructure_EmptyInput(t *testing.T) {
	assert.Nil(t, ParseStructure("", DefaultStructureOptions()))
	assert.Nil(t, ParseStructure("REMARK nothing here\n", DefaultStructureOptions()))
}

func TestParseStructure_NoncontiguousModelIDs(t *testing.T) {
	text := "MODEL 7\n" + atomLine(1, "C1", "C", 0, 0, 0) + "\nENDMDL\n" +
		"MODEL 12\n" + atomLine(1, "C1", "C", 1, 1, 1) + "\nENDMDL\n"

	poses := ParseStructure(text, DefaultStructureOptions())
	require.Len(t, poses, 2)
	assert.Equal(t, 7, poses[0].ModelID)
	assert.Equal(t, 12, poses[1].ModelID)
}

func TestParseStructure_MalformedAtomSkipped(t *testing.T) {
	bad := "ATOM      2  C2  LIG A   1      xx.xxx   0.000   0.000  1.00  0.00           C"
	text := atomLine(1, "C1", "C", 0, 0, 0) + "\n" + bad + "\n" + atomLine(3, "C3", "C", 9, 9, 9) + "\n"

	poses := ParseStructure(text, DefaultStructureOptions())
	require.Len(t, poses, 1)
	require.Len(t, poses[0].Atoms, 2)
	assert.Equal(t, 1, poses[0].Atoms[0].ID)
	assert.Equal(t, 3, poses[0].Atoms[1].ID)
}

func TestParseStructure_LooseShortLines(t *testing.T) {
	// Truncated records: columns cannot be trusted, whitespace split instead.
	text := "ATOM 1 C1 LIG 1 1.000 2.000 3.000\nHETATM 2 O1 HOH 2 4.500 5.500 6.500\n"

	poses := ParseStructure(text, DefaultStructureOptions())
	require.Len(t, poses, 1)
	require.Len(t, poses[0].Atoms, 2)
	assert.Equal(t, Atom{ID: 1, Element: "C", X: 1, Y: 2, Z: 3}, poses[0].Atoms[0])
	assert.Equal(t, Atom{ID: 2, Element: "O", X: 4.5, Y: 5.5, Z: 6.5}, poses[0].Atoms[1])
}

func TestParseStructure_ExplicitConectBonds(t *testing.T) {
	text := atomLine(1, "C1", "C", 0, 0, 0) + "\n" +
		atomLine(2, "C2", "C", 10, 0, 0) + "\n" +
		atomLine(3, "O1", "O", 20, 0, 0) + "\n" +
		"CONECT    1    2    3\n"

	poses := ParseStructure(text, DefaultStructureOptions())
	require.Len(t, poses, 1)
	// Declared bonds suppress inference even though atoms are far apart.
	assert.Equal(t, []Bond{{Atom1: 1, Atom2: 2}, {Atom1: 1, Atom2: 3}}, poses[0].Bonds)
}

func TestInferBonds_DistanceWindow(t *testing.T) {
	opts := DefaultStructureOptions()
	atoms := []Atom{
		{ID: 1, Element: "C", X: 0, Y: 0, Z: 0},
		{ID: 2, Element: "C", X: 1.5, Y: 0, Z: 0}, // inside window
		{ID: 3, Element: "C", X: 4.5, Y: 0, Z: 0}, // 3.0 from atom 2: outside
	}
	bonds := inferBonds(atoms, opts)
	assert.Equal(t, []Bond{{Atom1: 1, Atom2: 2}}, bonds)
}

func TestInferBonds_WindowBoundaries(t *testing.T) {
	opts := StructureOptions{BondMinDistance: 0.4, BondMaxDistance: 1.9}

	// Exactly at the maximum: bonded (inclusive upper bound).
	atMax := []Atom{
		{ID: 1, Element: "C"},
		{ID: 2, Element: "C", X: 1.9},
	}
	assert.Len(t, inferBonds(atMax, opts), 1)

	// Exactly at the minimum: not bonded (exclusive lower bound).
	atMin := []Atom{
		{ID: 1, Element: "C"},
		{ID: 2, Element: "C", X: 0.4},
	}
	assert.Empty(t, inferBonds(atMin, opts))
}

func TestInferBonds_SkipsHydrogenPairs(t *testing.T) {
	opts := DefaultStructureOptions()
	atoms := []Atom{
		{ID: 1, Element: "H", X: 0, Y: 0, Z: 0},
		{ID: 2, Element: "H", X: 1.0, Y: 0, Z: 0},
		{ID: 3, Element: "O", X: 0, Y: 1.0, Z: 0},
	}
	bonds := inferBonds(atoms, opts)
	// H-H is excluded; both H-O pairs are within range.
	assert.Equal(t, []Bond{{Atom1: 1, Atom2: 3}, {Atom1: 2, Atom2: 3}}, bonds)
}

func TestDeriveElement(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		want     string
	}{
		{"C1", "", "C"},
		{"N1", "", "N"},
		{"CA", "", "C"},   // position name, not calcium
		{"Cl1", "", "Cl"}, // genuine two-letter symbol
		{"1HB", "", "H"},  // leading digit skipped
		{"OXT", "", "O"},
		{"C1", "N", "N"},   // explicit column wins
		{"X", "FE", "Fe"},  // explicit symbol normalized
		{"123", "", ""},    // no letters at all
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, deriveElement(tt.name, tt.explicit), "name=%s explicit=%s", tt.name, tt.explicit)
	}
}
