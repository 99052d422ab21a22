package numbering

import "testing"

func TestNextEmptyLineage(t *testing.T) {
	id, seq := Next("Q-100", nil)
	if seq != 1 {
		t.Errorf("expected sequence 1, got %d", seq)
	}
	if id != "Q-100V1" {
		t.Errorf("expected Q-100V1, got %q", id)
	}
}

func TestNextIncrements(t *testing.T) {
	id, seq := Next("Q-100", []string{"Q-100V1", "Q-100V2"})
	if seq != 3 || id != "Q-100V3" {
		t.Errorf("got (%q, %d), want (Q-100V3, 3)", id, seq)
	}
}

func TestNextIgnoresGapsAndOrder(t *testing.T) {
	// Max wins regardless of slice order or gaps in the chain.
	id, seq := Next("Q-100", []string{"Q-100V7", "Q-100V2", "Q-100V5"})
	if seq != 8 || id != "Q-100V8" {
		t.Errorf("got (%q, %d), want (Q-100V8, 8)", id, seq)
	}
}

func TestNextIgnoresForeignIdentifiers(t *testing.T) {
	id, seq := Next("Q-100", []string{"Q-200V9", "Q-100V1", "Q-1001V4", "garbage"})
	if seq != 2 || id != "Q-100V2" {
		t.Errorf("got (%q, %d), want (Q-100V2, 2)", id, seq)
	}
}

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		lineage, id string
		seq         int
		ok          bool
	}{
		{"Q-100", "Q-100V3", 3, true},
		{"Q-100", "Q-100V12", 12, true},
		{"Q-100", "Q-100V0", 0, false},
		{"Q-100", "Q-100V-1", 0, false},
		{"Q-100", "Q-100Vx", 0, false},
		{"Q-100", "Q-100", 0, false},
		{"Q-100", "Q-200V3", 0, false},
	} {
		seq, ok := Parse(tc.lineage, tc.id)
		if seq != tc.seq || ok != tc.ok {
			t.Errorf("Parse(%q, %q) = (%d, %v), want (%d, %v)", tc.lineage, tc.id, seq, ok, tc.seq, tc.ok)
		}
	}
}
