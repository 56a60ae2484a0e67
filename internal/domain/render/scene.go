package render

import (
	"math"

	"github.com/piyushjha0409/DockAI/internal/domain/docking"
	"github.com/piyushjha0409/DockAI/internal/infrastructure/monitoring/logging"
)

// Sphere is one atom placement: a sphere at the atom coordinates, radius
// fixed per scene, color from the element table.
type Sphere struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Radius float64 `json:"radius"`
	Color  RGB     `json:"color"`
}

// Cylinder is one bond placement between two atom positions, with a fixed
// radius and color.
type Cylinder struct {
	X1     float64 `json:"x1"`
	Y1     float64 `json:"y1"`
	Z1     float64 `json:"z1"`
	X2     float64 `json:"x2"`
	Y2     float64 `json:"y2"`
	Z2     float64 `json:"z2"`
	Radius float64 `json:"radius"`
	Color  RGB     `json:"color"`
}

// Vec3 is a point in Angstrom space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Scene is the render-instruction set for one pose, consumed by the external
// 3D renderer: spheres, cylinders, and a bounding sphere for fit-to-view.
// SeverityColor encodes the pose's affinity relative to the dataset range.
type Scene struct {
	ModelID       int        `json:"model_id"`
	Spheres       []Sphere   `json:"spheres"`
	Cylinders     []Cylinder `json:"cylinders"`
	Center        Vec3       `json:"center"`
	FitRadius     float64    `json:"fit_radius"`
	SeverityColor RGB        `json:"severity_color"`
}

// SceneOptions carries the scene-builder tunables.
type SceneOptions struct {
	SphereRadius float64
	BondRadius   float64
	BondColor    RGB
}

// DefaultSceneOptions returns the documented defaults used when a caller
// passes the zero value.
func DefaultSceneOptions() SceneOptions {
	return SceneOptions{
		SphereRadius: 0.4,
		BondRadius:   0.12,
		BondColor:    RGB{0xbd, 0xc3, 0xc7},
	}
}

// SceneBuilder converts docking models into Scenes.  It is stateless apart
// from its options and logger, so one builder serves single-pose and grid
// rendering alike.
type SceneBuilder struct {
	opts   SceneOptions
	logger logging.Logger
}

// NewSceneBuilder constructs a SceneBuilder.  Zero-valued option fields are
// replaced with the defaults; a nil logger falls back to the nop logger.
func NewSceneBuilder(opts SceneOptions, log logging.Logger) *SceneBuilder {
	def := DefaultSceneOptions()
	if opts.SphereRadius <= 0 {
		opts.SphereRadius = def.SphereRadius
	}
	if opts.BondRadius <= 0 {
		opts.BondRadius = def.BondRadius
	}
	if opts.BondColor == (RGB{}) {
		opts.BondColor = def.BondColor
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &SceneBuilder{opts: opts, logger: log}
}

// Build produces the Scene for one model.  minAffinity/maxAffinity are the
// dataset's defined-affinity range (see ModelData.AffinityRange), so the
// severity color is comparable across every pose of the dataset.
//
// Bonds whose endpoints are missing from the model's atom list are dropped
// here, logged as a data-quality note, never surfaced as an error: rendering
// tolerates partial data.
func (b *SceneBuilder) Build(m *docking.Model, minAffinity, maxAffinity float64) Scene {
	scene := Scene{
		ModelID:       m.ModelID,
		Spheres:       make([]Sphere, 0, len(m.Atoms)),
		Cylinders:     make([]Cylinder, 0, len(m.Bonds)),
		SeverityColor: BestAffinityColor,
	}
	if !m.Unscored() {
		scene.SeverityColor = ColorForAffinity(m.BindingAffinity, minAffinity, maxAffinity)
	}

	byID := make(map[int]*docking.Atom, len(m.Atoms))
	for i := range m.Atoms {
		a := &m.Atoms[i]
		byID[a.ID] = a
		scene.Spheres = append(scene.Spheres, Sphere{
			X: a.X, Y: a.Y, Z: a.Z,
			Radius: b.opts.SphereRadius,
			Color:  ColorForElement(a.Element),
		})
	}

	dropped := 0
	for _, bond := range m.Bonds {
		a1, ok1 := byID[bond.Atom1]
		a2, ok2 := byID[bond.Atom2]
		if !ok1 || !ok2 {
			dropped++
			continue
		}
		scene.Cylinders = append(scene.Cylinders, Cylinder{
			X1: a1.X, Y1: a1.Y, Z1: a1.Z,
			X2: a2.X, Y2: a2.Y, Z2: a2.Z,
			Radius: b.opts.BondRadius,
			Color:  b.opts.BondColor,
		})
	}
	if dropped > 0 {
		b.logger.Warn("dropped bonds referencing missing atoms",
			logging.Int("model_id", m.ModelID),
			logging.Int("dropped", dropped),
		)
	}

	scene.Center, scene.FitRadius = fitToView(m.Atoms, b.opts.SphereRadius)
	return scene
}

// BuildAll produces one Scene per model for grid rendering, using the same
// dataset-wide affinity range for every pose.
func (b *SceneBuilder) BuildAll(data *docking.ModelData) []Scene {
	minA, maxA, ok := data.AffinityRange()
	if !ok {
		minA, maxA = 0, 0
	}
	scenes := make([]Scene, 0, len(data.Models))
	for i := range data.Models {
		scenes = append(scenes, b.Build(&data.Models[i], minA, maxA))
	}
	return scenes
}

// fitToView returns the centroid of the atoms and the radius of the bounding
// sphere around it, padded by the sphere radius so no atom clips the view.
func fitToView(atoms []docking.Atom, pad float64) (Vec3, float64) {
	if len(atoms) == 0 {
		return Vec3{}, pad
	}

	var c Vec3
	for _, a := range atoms {
		c.X += a.X
		c.Y += a.Y
		c.Z += a.Z
	}
	n := float64(len(atoms))
	c.X /= n
	c.Y /= n
	c.Z /= n

	var r float64
	for _, a := range atoms {
		dx, dy, dz := a.X-c.X, a.Y-c.Y, a.Z-c.Z
		if d := math.Sqrt(dx*dx + dy*dy + dz*dz); d > r {
			r = d
		}
	}
	return c, r + pad
}
