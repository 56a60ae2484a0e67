// Package render turns parsed docking models into render-ready instructions:
// deterministic color encodings, sphere/cylinder scene graphs, and the thin
// view state the UI collaborator drives.  Everything here is pure data and
// pure functions; no pixels are produced.
package render

import "fmt"

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex returns the CSS hex form, e.g. "#2ecc71".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Affinity severity endpoints.  The exact channel values are a design
// choice; consumers rely on consistency and monotonicity, not on these
// specific constants.
var (
	// BestAffinityColor marks the lowest (best) affinity in a dataset.
	BestAffinityColor = RGB{R: 0x2e, G: 0xcc, B: 0x71}

	// WorstAffinityColor marks the highest (worst) affinity in a dataset.
	WorstAffinityColor = RGB{R: 0xe7, G: 0x4c, B: 0x3c}
)

// ColorForAffinity maps an affinity onto the best→worst gradient relative to
// the dataset's affinity range.  Affinity is lower-is-better, so t=0 (the
// minimum) is best and t=1 (the maximum) is worst.
//
// The function is pure: identical inputs always produce identical output,
// so single-pose and grid views encode severity identically.  A degenerate
// range (min == max, e.g. a single pose) returns the fixed best color rather
// than dividing by zero.
func ColorForAffinity(affinity, minAffinity, maxAffinity float64) RGB {
	if minAffinity == maxAffinity {
		return BestAffinityColor
	}

	t := (affinity - minAffinity) / (maxAffinity - minAffinity)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return lerpRGB(BestAffinityColor, WorstAffinityColor, t)
}

func lerpRGB(a, b RGB, t float64) RGB {
	return RGB{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// elementColors is a CPK-style element→color table.
var elementColors = map[string]RGB{
	"H":  {0xec, 0xf0, 0xf1},
	"C":  {0x55, 0x5b, 0x61},
	"N":  {0x34, 0x98, 0xdb},
	"O":  {0xe7, 0x4c, 0x3c},
	"S":  {0xf1, 0xc4, 0x0f},
	"P":  {0xe6, 0x7e, 0x22},
	"F":  {0x27, 0xae, 0x60},
	"Cl": {0x16, 0xa0, 0x85},
	"Br": {0xa0, 0x52, 0x2d},
	"I":  {0x8e, 0x44, 0xad},
	"Fe": {0xc0, 0x88, 0x3e},
	"Zn": {0x95, 0xa5, 0xa6},
}

// UnknownElementColor is the explicit fallback for elements missing from the
// table.
var UnknownElementColor = RGB{R: 0xd9, G: 0x7c, B: 0xbd}

// ColorForElement returns the display color for a chemical symbol.  The
// lookup is case-sensitive ("C" and "Cl" are distinct symbols); unknown
// elements fall back to UnknownElementColor.
func ColorForElement(element string) RGB {
	if c, ok := elementColors[element]; ok {
		return c
	}
	return UnknownElementColor
}
