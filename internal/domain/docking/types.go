// Package docking provides the core domain model and parsers for
// AutoDock-Vina-style docking output: a score report and a PDBQT/PDB
// structure file are normalized into an immutable ModelData value ready for
// rendering.
//
// The package is pure: no I/O, no ambient state.  Callers hand it the full
// text of both files and receive a value they exclusively own.
package docking

import (
	"math"

	dtypes "github.com/piyushjha0409/DockAI/pkg/types/docking"
)

// Atom is a single atom of a docking pose.  Coordinates are in Angstrom.
// Atoms are immutable once parsed.
type Atom struct {
	// ID is the atom serial from the source file, unique within one Model.
	ID      int
	Element string
	X, Y, Z float64
}

// Bond references two Atom.ID values within the same Model.  Both endpoints
// are expected to exist in that Model's atom list; a bond whose endpoint is
// missing is dropped by consuming logic (the scene builder), not treated as
// an error, since rendering tolerates partial data.
type Bond struct {
	Atom1 int
	Atom2 int
}

// Model is one docking pose: a candidate ligand placement with its
// binding-affinity score.
type Model struct {
	// ModelID is the stable pose identifier from the source log.  It is not
	// necessarily 0-based or contiguous.
	ModelID int

	// BindingAffinity is the pose score in kcal/mol; lower is better.
	// NaN marks a pose the score report did not cover ("unscored").
	BindingAffinity float64

	Atoms []Atom
	Bonds []Bond
}

// Unscored reports whether the pose carries no binding affinity.
func (m *Model) Unscored() bool {
	return math.IsNaN(m.BindingAffinity)
}

// Summary is the dataset-level aggregate exposed verbatim for display.
type Summary struct {
	// BestBindingAffinity is the minimum affinity among scored models.
	BestBindingAffinity float64

	// ModelCount is the number of models in the dataset.
	ModelCount int
}

// ModelData is a whole parsed dataset.  Models appear in source-file order;
// that order is preserved, never re-sorted by affinity, so single-pose and
// grid consumers index identically.
//
// ModelData is constructed once per successful parse of a (score, structure)
// pair and is immutable thereafter.
type ModelData struct {
	Models  []Model
	Summary Summary
}

// AffinityRange returns the minimum and maximum defined affinity across the
// dataset, for use by the affinity color mapper.  Unscored models are
// excluded.  ok is false when no model is scored.
func (d *ModelData) AffinityRange() (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for i := range d.Models {
		a := d.Models[i].BindingAffinity
		if math.IsNaN(a) {
			continue
		}
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
		ok = true
	}
	return min, max, ok
}

// ToDTO converts the dataset to its wire representation.  The NaN "unscored"
// sentinel becomes a nil pointer because JSON cannot carry NaN.
func (d *ModelData) ToDTO() dtypes.ModelDataDTO {
	out := dtypes.ModelDataDTO{
		Models: make([]dtypes.ModelDTO, 0, len(d.Models)),
		Summary: dtypes.SummaryDTO{
			BestBindingAffinity: d.Summary.BestBindingAffinity,
			ModelCount:          d.Summary.ModelCount,
		},
	}
	for i := range d.Models {
		m := &d.Models[i]
		dto := dtypes.ModelDTO{
			ModelID: m.ModelID,
			Atoms:   make([]dtypes.AtomDTO, 0, len(m.Atoms)),
			Bonds:   make([]dtypes.BondDTO, 0, len(m.Bonds)),
		}
		if !m.Unscored() {
			a := m.BindingAffinity
			dto.BindingAffinity = &a
		}
		for _, at := range m.Atoms {
			dto.Atoms = append(dto.Atoms, dtypes.AtomDTO{
				ID: at.ID, Element: at.Element, X: at.X, Y: at.Y, Z: at.Z,
			})
		}
		for _, b := range m.Bonds {
			dto.Bonds = append(dto.Bonds, dtypes.BondDTO{Atom1: b.Atom1, Atom2: b.Atom2})
		}
		out.Models = append(out.Models, dto)
	}
	return out
}

// FromDTO reconstructs a domain ModelData from its wire representation.
// Used when serving cached datasets.
func FromDTO(dto dtypes.ModelDataDTO) *ModelData {
	d := &ModelData{
		Models: make([]Model, 0, len(dto.Models)),
		Summary: Summary{
			BestBindingAffinity: dto.Summary.BestBindingAffinity,
			ModelCount:          dto.Summary.ModelCount,
		},
	}
	for _, m := range dto.Models {
		model := Model{
			ModelID:         m.ModelID,
			BindingAffinity: math.NaN(),
			Atoms:           make([]Atom, 0, len(m.Atoms)),
			Bonds:           make([]Bond, 0, len(m.Bonds)),
		}
		if m.BindingAffinity != nil {
			model.BindingAffinity = *m.BindingAffinity
		}
		for _, at := range m.Atoms {
			model.Atoms = append(model.Atoms, Atom{
				ID: at.ID, Element: at.Element, X: at.X, Y: at.Y, Z: at.Z,
			})
		}
		for _, b := range m.Bonds {
			model.Bonds = append(model.Bonds, Bond{Atom1: b.Atom1, Atom2: b.Atom2})
		}
		d.Models = append(d.Models, model)
	}
	return d
}

// distance returns the Euclidean distance between two atoms.
func distance(a, b *Atom) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
