package model

// FieldDiff records one differing field on one entity between the current
// and historical snapshots.
type FieldDiff struct {
	Entity     string `json:"entity"` // package name (natural key)
	Field      string `json:"field"`
	Current    any    `json:"current"`
	Historical any    `json:"historical"`
}

// DiffResult is the structural comparison of a current snapshot list against
// a historical one, keyed by package name.
type DiffResult struct {
	FieldDiffs []FieldDiff `json:"field_diffs"`
	Added      []string    `json:"added"`   // present in current, absent in historical
	Removed    []string    `json:"removed"` // present in historical, absent in current

	ModifiedCount   int `json:"modified_count"`
	UnchangedCount  int `json:"unchanged_count"`
	CurrentCount    int `json:"current_count"`
	HistoricalCount int `json:"historical_count"`

	Identical bool `json:"identical"`
}

// HasChanges reports whether the diff carries any difference at all.
func (d *DiffResult) HasChanges() bool {
	return len(d.FieldDiffs) > 0 || len(d.Added) > 0 || len(d.Removed) > 0
}
