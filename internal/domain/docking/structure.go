package docking

import (
	"bufio"
	"strconv"
	"strings"
	"unicode"
)

// Pose is the structural half of one docking model: the atoms and bonds
// found between one MODEL/ENDMDL pair in the structure file.  Atoms and
// bonds preserve file order.
type Pose struct {
	ModelID int
	Atoms   []Atom
	Bonds   []Bond
}

// StructureOptions carries the structure-parser tunables.
//
// The bond window is an empirically chosen covalent-bond heuristic, not a
// physical law: when the file declares no CONECT records, two atoms whose
// Euclidean distance falls inside (BondMinDistance, BondMaxDistance] Angstrom
// are treated as bonded, except hydrogen-hydrogen pairs, which at that range
// are van-der-Waals contacts rather than bonds.  Treat the thresholds as
// tunable, not sacred.
type StructureOptions struct {
	BondMinDistance float64
	BondMaxDistance float64
}

// DefaultStructureOptions returns the documented default bond window
// (0.4–1.9 Å).
func DefaultStructureOptions() StructureOptions {
	return StructureOptions{BondMinDistance: 0.4, BondMaxDistance: 1.9}
}

// ParseStructure extracts the per-pose atoms and bonds from the full text of
// a PDBQT/PDB-like structure file.
//
// Pose boundaries are the explicit MODEL / ENDMDL records; everything between
// a pair belongs to one pose.  A file with no markers is treated as a single
// implicit pose with id 1.  Malformed atom lines are skipped individually and
// never abort the pose.  Poses are returned in order of appearance.
func ParseStructure(text string, opts StructureOptions) []Pose {
	if opts.BondMaxDistance <= opts.BondMinDistance {
		opts = DefaultStructureOptions()
	}

	var (
		poses   []Pose
		current *Pose
		// implicit collects records seen outside any MODEL/ENDMDL pair.
		implicit Pose
		sawModel bool
	)

	target := func() *Pose {
		if current != nil {
			return current
		}
		return &implicit
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "MODEL"):
			sawModel = true
			id := len(poses) + 1
			if f := strings.Fields(line); len(f) >= 2 {
				if n, err := strconv.Atoi(f[1]); err == nil {
					id = n
				}
			}
			poses = append(poses, Pose{ModelID: id})
			current = &poses[len(poses)-1]

		case strings.HasPrefix(line, "ENDMDL"):
			current = nil

		case strings.HasPrefix(line, "ATOM") || strings.HasPrefix(line, "HETATM"):
			if atom, ok := parseAtomLine(line); ok {
				p := target()
				p.Atoms = append(p.Atoms, atom)
			}

		case strings.HasPrefix(line, "CONECT"):
			p := target()
			p.Bonds = append(p.Bonds, parseConectLine(line)...)
		}
	}

	if !sawModel {
		if len(implicit.Atoms) == 0 {
			return nil
		}
		implicit.ModelID = 1
		poses = []Pose{implicit}
	}

	for i := range poses {
		if len(poses[i].Bonds) == 0 {
			poses[i].Bonds = inferBonds(poses[i].Atoms, opts)
		}
	}

	return poses
}

// parseAtomLine extracts one atom from an ATOM or HETATM record.  Lines long
// enough for the wwPDB fixed layout are sliced by column; shorter lines fall
// back to whitespace splitting.  A line whose coordinate fields do not parse
// is rejected, which skips that single atom only.
func parseAtomLine(line string) (Atom, bool) {
	if len(line) >= 54 {
		return parseFixedAtomLine(line)
	}
	return parseLooseAtomLine(line)
}

// parseFixedAtomLine slices the wwPDB ATOM columns: serial 7-11, atom name
// 13-16, x/y/z 31-54, element 77-78 (1-based, inclusive).
func parseFixedAtomLine(line string) (Atom, bool) {
	serial, err := strconv.Atoi(strings.TrimSpace(line[6:11]))
	if err != nil {
		return Atom{}, false
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
	z, errZ := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
	if errX != nil || errY != nil || errZ != nil {
		return Atom{}, false
	}

	name := strings.TrimSpace(line[12:16])
	var explicit string
	if len(line) >= 78 {
		explicit = strings.TrimSpace(line[76:78])
	}
	element := deriveElement(name, explicit)
	if element == "" {
		return Atom{}, false
	}

	return Atom{ID: serial, Element: element, X: x, Y: y, Z: z}, true
}

// parseLooseAtomLine handles truncated records whose column positions cannot
// be trusted: RECORD serial name ... x y z.  The coordinate triple is located
// as the first run of three consecutive fields that all parse as floats and
// contain a decimal point (which rules out the residue sequence number).
func parseLooseAtomLine(line string) (Atom, bool) {
	f := strings.Fields(line)
	if len(f) < 6 {
		return Atom{}, false
	}

	serial, err := strconv.Atoi(f[1])
	if err != nil {
		return Atom{}, false
	}
	name := f[2]

	for i := 3; i+2 < len(f); i++ {
		if !strings.Contains(f[i], ".") {
			continue
		}
		x, errX := strconv.ParseFloat(f[i], 64)
		y, errY := strconv.ParseFloat(f[i+1], 64)
		z, errZ := strconv.ParseFloat(f[i+2], 64)
		if errX == nil && errY == nil && errZ == nil {
			element := deriveElement(name, "")
			if element == "" {
				return Atom{}, false
			}
			return Atom{ID: serial, Element: element, X: x, Y: y, Z: z}, true
		}
	}
	return Atom{}, false
}

// deriveElement resolves the chemical symbol for an atom.  The explicit
// element column wins when present; otherwise the alphabetic prefix of the
// atom name (digits excluded) is used.  A two-letter all-uppercase prefix is
// reduced to its first letter, since PDB atom names like "CA" or "HB2" name
// positions, not elements, while genuine two-letter symbols ("Cl", "Fe")
// carry a lowercase second letter.
func deriveElement(name, explicit string) string {
	if explicit != "" {
		return normalizeSymbol(explicit)
	}

	var prefix []rune
	for _, r := range name {
		if unicode.IsLetter(r) {
			prefix = append(prefix, r)
			continue
		}
		if len(prefix) > 0 {
			break
		}
		// leading digits in names like "1HB" are skipped
	}
	if len(prefix) == 0 {
		return ""
	}
	if len(prefix) >= 2 && unicode.IsUpper(prefix[0]) && unicode.IsUpper(prefix[1]) {
		return string(prefix[0])
	}
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return string(prefix)
}

// normalizeSymbol maps "FE" → "Fe", "c" → "C".
func normalizeSymbol(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	return s
}

// parseConectLine turns one CONECT record into bonds: the first serial is
// bonded to each subsequent serial on the line.  Unparseable serials are
// ignored.
func parseConectLine(line string) []Bond {
	f := strings.Fields(line)
	if len(f) < 3 {
		return nil
	}
	from, err := strconv.Atoi(f[1])
	if err != nil {
		return nil
	}
	var bonds []Bond
	for _, s := range f[2:] {
		to, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		bonds = append(bonds, Bond{Atom1: from, Atom2: to})
	}
	return bonds
}

// inferBonds applies the distance-window heuristic described on
// StructureOptions to a pose with no declared bonds.  Pair order follows
// atom file order, so the output is deterministic.
func inferBonds(atoms []Atom, opts StructureOptions) []Bond {
	var bonds []Bond
	for i := range atoms {
		for j := i + 1; j < len(atoms); j++ {
			if atoms[i].Element == "H" && atoms[j].Element == "H" {
				continue
			}
			d := distance(&atoms[i], &atoms[j])
			if d > opts.BondMinDistance && d <= opts.BondMaxDistance {
				bonds = append(bonds, Bond{Atom1: atoms[i].ID, Atom2: atoms[j].ID})
			}
		}
	}
	return bonds
}
