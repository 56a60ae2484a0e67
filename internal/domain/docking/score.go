package docking

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// scoreLine matches one result row of a Vina-style score table: a pose index
// followed by the binding affinity.  Whitespace width varies between docking
// tool versions, so the pattern is deliberately tolerant rather than a
// fixed-column read.  Trailing columns (RMSD l.b./u.b.) are ignored.
var scoreLine = regexp.MustCompile(`^\s*(\d+)\s+(-?\d+(?:\.\d+)?)(?:\s|$)`)

// ParseScores extracts a mapping from pose index to binding affinity
// (kcal/mol) from the full text of a docking score report.
//
// Lines that do not match the expected pattern — headers, separators, log
// chatter — are skipped, never fatal.  When a pose index appears more than
// once (docking logs may reprint a summary table) the last occurrence wins.
// Empty or unparseable input yields an empty map, not an error; the failure
// surfaces later when the merge step finds zero scored poses.
func ParseScores(text string) map[int]float64 {
	scores := make(map[int]float64)

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		m := scoreLine.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		affinity, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		scores[idx] = affinity
	}

	return scores
}
