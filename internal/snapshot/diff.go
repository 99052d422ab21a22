package snapshot

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/groblegark/quotevault/internal/model"
)

// ErrDuplicateName is returned when a snapshot list contains two entries
// with the same package name; name is the natural key, so the caller fed
// the differ an inconsistent list.
var ErrDuplicateName = fmt.Errorf("snapshot: duplicate package name")

// Diff compares a current snapshot list against a historical one. Entries
// are matched by name; every differing field yields one FieldDiff. The
// symmetry law holds: Diff(a, b).Added equals Diff(b, a).Removed.
func Diff(current, historical []model.SnapshotEntry) (*model.DiffResult, error) {
	curByName, err := indexByName(current)
	if err != nil {
		return nil, err
	}
	histByName, err := indexByName(historical)
	if err != nil {
		return nil, err
	}

	result := &model.DiffResult{
		CurrentCount:    len(current),
		HistoricalCount: len(historical),
	}

	for _, e := range historical {
		if _, ok := curByName[e.Name]; !ok {
			result.Removed = append(result.Removed, e.Name)
		}
	}

	for _, cur := range current {
		hist, ok := histByName[cur.Name]
		if !ok {
			result.Added = append(result.Added, cur.Name)
			continue
		}
		diffs := compareEntry(cur, hist)
		if len(diffs) > 0 {
			result.FieldDiffs = append(result.FieldDiffs, diffs...)
			result.ModifiedCount++
		} else {
			result.UnchangedCount++
		}
	}

	result.Identical = !result.HasChanges()
	return result, nil
}

func indexByName(entries []model.SnapshotEntry) (map[string]model.SnapshotEntry, error) {
	m := make(map[string]model.SnapshotEntry, len(entries))
	for _, e := range entries {
		if _, dup := m[e.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
		m[e.Name] = e
	}
	return m, nil
}

// compareEntry compares every non-volatile field of two same-named entries.
// Services are order-sensitive; the opaque Fields document is compared
// structurally with object key order ignored.
func compareEntry(cur, hist model.SnapshotEntry) []model.FieldDiff {
	var diffs []model.FieldDiff

	if cur.Description != hist.Description {
		diffs = append(diffs, model.FieldDiff{
			Entity: cur.Name, Field: "description",
			Current: cur.Description, Historical: hist.Description,
		})
	}
	if cur.Price != hist.Price {
		diffs = append(diffs, model.FieldDiff{
			Entity: cur.Name, Field: "price",
			Current: cur.Price, Historical: hist.Price,
		})
	}
	if !slices.Equal(cur.Services, hist.Services) {
		diffs = append(diffs, model.FieldDiff{
			Entity: cur.Name, Field: "services",
			Current: cur.Services, Historical: hist.Services,
		})
	}
	if !model.JSONEqual(cur.Fields, hist.Fields) {
		diffs = append(diffs, model.FieldDiff{
			Entity: cur.Name, Field: "fields",
			Current: decodeForReport(cur.Fields), Historical: decodeForReport(hist.Fields),
		})
	}

	return diffs
}

// decodeForReport turns a raw JSON document into a plain value so diff
// reports serialize as structure rather than base64 bytes.
func decodeForReport(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
