// Package docking defines the data-transfer representation of a parsed
// docking dataset.  These are the wire types handed to API consumers and to
// the external 3D renderer; the richer domain model lives in
// internal/domain/docking.
package docking

// AtomDTO is one atom of a docking pose.  Coordinates are in Angstrom.
type AtomDTO struct {
	ID      int     `json:"id"`
	Element string  `json:"element"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Z       float64 `json:"z"`
}

// BondDTO references two AtomDTO ids within the same model.
type BondDTO struct {
	Atom1 int `json:"atom1"`
	Atom2 int `json:"atom2"`
}

// ModelDTO is one docking pose.  BindingAffinity is nil for poses the score
// report did not cover ("unscored"); the domain model represents the same
// condition as NaN, which JSON cannot carry.
type ModelDTO struct {
	ModelID         int       `json:"model_id"`
	BindingAffinity *float64  `json:"binding_affinity,omitempty"`
	Atoms           []AtomDTO `json:"atoms"`
	Bonds           []BondDTO `json:"bonds"`
}

// SummaryDTO exposes the dataset summary verbatim for display; UI layers must
// not re-derive these values.
type SummaryDTO struct {
	BestBindingAffinity float64 `json:"best_binding_affinity"`
	ModelCount          int     `json:"model_count"`
}

// ModelDataDTO is the whole parsed dataset.  Models appear in source-file
// order; callers must not assume the order is sorted by affinity.
type ModelDataDTO struct {
	Models  []ModelDTO `json:"models"`
	Summary SummaryDTO `json:"summary"`
}

// AnalysisDTO is one stored analysis: the upload metadata plus the parsed
// dataset summary.  ModelData is omitted in list responses.
type AnalysisDTO struct {
	ID                    string        `json:"id"`
	ScoreFilename         string        `json:"score_filename"`
	StructureFilename     string        `json:"structure_filename"`
	ScoreObjectKey        string        `json:"score_object_key,omitempty"`
	StructureObjectKey    string        `json:"structure_object_key,omitempty"`
	ScoreDigestSHA256     string        `json:"score_digest_sha256"`
	StructureDigestSHA256 string        `json:"structure_digest_sha256"`
	BestBindingAffinity   float64       `json:"best_binding_affinity"`
	ModelCount            int           `json:"model_count"`
	CreatedAt             string        `json:"created_at"`
	ModelData             *ModelDataDTO `json:"model_data,omitempty"`
}
