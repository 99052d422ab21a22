// Package numbering derives the next human-readable identifier for a
// version lineage. It is pure: callers fetch the lineage's existing
// identifiers (inside the restore transaction, so two concurrent restores
// cannot observe the same maximum) and hand them in.
package numbering

import (
	"strconv"
	"strings"
)

// Separator sits between the lineage prefix and the sequence number,
// e.g. "Q-100" + "V" + "3" → "Q-100V3".
const Separator = "V"

// Next returns the identifier and sequence number for the next version in
// the lineage. Identifiers that do not share the prefix or do not parse are
// ignored; with no prior versions the sequence starts at 1.
func Next(lineage string, identifiers []string) (string, int) {
	max := 0
	for _, id := range identifiers {
		seq, ok := Parse(lineage, id)
		if !ok {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	seq := max + 1
	return Render(lineage, seq), seq
}

// Render formats an identifier from a lineage prefix and sequence number.
func Render(lineage string, seq int) string {
	return lineage + Separator + strconv.Itoa(seq)
}

// Parse extracts the sequence number from an identifier belonging to the
// given lineage. It returns false for identifiers of other lineages or with
// a malformed suffix.
func Parse(lineage, identifier string) (int, bool) {
	rest, ok := strings.CutPrefix(identifier, lineage+Separator)
	if !ok {
		return 0, false
	}
	seq, err := strconv.Atoi(rest)
	if err != nil || seq <= 0 {
		return 0, false
	}
	return seq, true
}
