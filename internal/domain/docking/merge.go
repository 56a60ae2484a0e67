package docking

import (
	"math"

	"github.com/piyushjha0409/DockAI/pkg/errors"
)

// Merge joins the independently parsed score map and structure poses into one
// immutable ModelData.  The join is by pose index, never by positional
// lock-step, because score logs and structure files are not guaranteed to
// enumerate poses in the same order or completeness.
//
// A pose with structure but no score entry is kept with the NaN "unscored"
// sentinel and excluded from the best-affinity computation.  A score entry
// with no structure is dropped — rendering needs atoms.  Models preserve the
// structure file's order of appearance.
//
// Merge is pure: it never mutates its inputs.  It fails with the
// empty-dataset condition ("no valid poses") when zero poses carry both a
// score and a structure.
func Merge(scores map[int]float64, poses []Pose) (*ModelData, error) {
	models := make([]Model, 0, len(poses))
	best := math.Inf(1)
	scored := 0

	for _, p := range poses {
		affinity := math.NaN()
		if a, ok := scores[p.ModelID]; ok {
			affinity = a
			scored++
			if a < best {
				best = a
			}
		}

		atoms := make([]Atom, len(p.Atoms))
		copy(atoms, p.Atoms)
		bonds := make([]Bond, len(p.Bonds))
		copy(bonds, p.Bonds)

		models = append(models, Model{
			ModelID:         p.ModelID,
			BindingAffinity: affinity,
			Atoms:           atoms,
			Bonds:           bonds,
		})
	}

	if scored == 0 {
		return nil, errors.EmptyDataset("no valid poses")
	}

	return &ModelData{
		Models: models,
		Summary: Summary{
			BestBindingAffinity: best,
			ModelCount:          len(models),
		},
	}, nil
}

// Parse is the whole-pipeline convenience: both leaf parsers followed by the
// merge, for callers holding the raw text of the two files.
func Parse(scoreText, structureText string, opts StructureOptions) (*ModelData, error) {
	return Merge(ParseScores(scoreText), ParseStructure(structureText, opts))
}
