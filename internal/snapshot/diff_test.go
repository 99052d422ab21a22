package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groblegark/quotevault/internal/model"
)

func entry(name string, price float64, services ...string) model.SnapshotEntry {
	return model.SnapshotEntry{Name: name, Price: price, Services: services}
}

func TestDiffIdentity(t *testing.T) {
	lists := [][]model.SnapshotEntry{
		nil,
		{entry("Basic", 100)},
		{entry("Basic", 100, "setup"), entry("Pro", 250, "setup", "support")},
		{{Name: "X", Fields: json.RawMessage(`{"a":1,"b":[1,2]}`)}},
	}
	for _, s := range lists {
		d, err := Diff(s, s)
		require.NoError(t, err)
		assert.True(t, d.Identical)
		assert.Empty(t, d.FieldDiffs)
		assert.Empty(t, d.Added)
		assert.Empty(t, d.Removed)
		assert.Equal(t, len(s), d.UnchangedCount)
		assert.Zero(t, d.ModifiedCount)
	}
}

func TestDiffSymmetry(t *testing.T) {
	a := []model.SnapshotEntry{entry("Basic", 100), entry("Pro", 250), entry("OnlyA", 10)}
	b := []model.SnapshotEntry{entry("Basic", 150), entry("OnlyB", 99)}

	ab, err := Diff(a, b)
	require.NoError(t, err)
	ba, err := Diff(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab.Added, ba.Removed)
	assert.Equal(t, ab.Removed, ba.Added)
	assert.Equal(t, ab.ModifiedCount, ba.ModifiedCount)
}

func TestDiffFieldDifferences(t *testing.T) {
	current := []model.SnapshotEntry{entry("Basic", 150)}
	historical := []model.SnapshotEntry{entry("Basic", 100)}

	d, err := Diff(current, historical)
	require.NoError(t, err)

	require.Len(t, d.FieldDiffs, 1)
	fd := d.FieldDiffs[0]
	assert.Equal(t, "Basic", fd.Entity)
	assert.Equal(t, "price", fd.Field)
	assert.Equal(t, 150.0, fd.Current)
	assert.Equal(t, 100.0, fd.Historical)

	assert.False(t, d.Identical)
	assert.Empty(t, d.Added)
	assert.Empty(t, d.Removed)
	assert.Equal(t, 1, d.ModifiedCount)
	assert.Equal(t, 0, d.UnchangedCount)
	assert.Equal(t, 1, d.CurrentCount)
	assert.Equal(t, 1, d.HistoricalCount)
}

func TestDiffAddedRemoved(t *testing.T) {
	current := []model.SnapshotEntry{entry("Basic", 100), entry("Premium", 500)}
	historical := []model.SnapshotEntry{entry("Basic", 100), entry("Legacy", 50)}

	d, err := Diff(current, historical)
	require.NoError(t, err)

	assert.Equal(t, []string{"Premium"}, d.Added)
	assert.Equal(t, []string{"Legacy"}, d.Removed)
	assert.Equal(t, 1, d.UnchangedCount)
	assert.False(t, d.Identical)
}

func TestDiffServiceOrderIsSignificant(t *testing.T) {
	current := []model.SnapshotEntry{entry("Basic", 100, "a", "b")}
	historical := []model.SnapshotEntry{entry("Basic", 100, "b", "a")}

	d, err := Diff(current, historical)
	require.NoError(t, err)
	require.Len(t, d.FieldDiffs, 1)
	assert.Equal(t, "services", d.FieldDiffs[0].Field)
}

func TestDiffFieldsObjectKeyOrderIgnored(t *testing.T) {
	current := []model.SnapshotEntry{{Name: "X", Fields: json.RawMessage(`{"a":1,"b":2}`)}}
	historical := []model.SnapshotEntry{{Name: "X", Fields: json.RawMessage(`{"b":2,"a":1}`)}}

	d, err := Diff(current, historical)
	require.NoError(t, err)
	assert.True(t, d.Identical)
}

func TestDiffFieldsStructuralChange(t *testing.T) {
	current := []model.SnapshotEntry{{Name: "X", Fields: json.RawMessage(`{"sla":"gold"}`)}}
	historical := []model.SnapshotEntry{{Name: "X", Fields: json.RawMessage(`{"sla":"silver"}`)}}

	d, err := Diff(current, historical)
	require.NoError(t, err)
	require.Len(t, d.FieldDiffs, 1)
	assert.Equal(t, "fields", d.FieldDiffs[0].Field)
	assert.Equal(t, map[string]any{"sla": "gold"}, d.FieldDiffs[0].Current)
	assert.Equal(t, map[string]any{"sla": "silver"}, d.FieldDiffs[0].Historical)
}

func TestDiffRejectsDuplicateNames(t *testing.T) {
	dup := []model.SnapshotEntry{entry("Basic", 100), entry("Basic", 200)}

	_, err := Diff(dup, nil)
	require.ErrorIs(t, err, ErrDuplicateName)

	_, err = Diff(nil, dup)
	require.ErrorIs(t, err, ErrDuplicateName)
}

func TestDiffEmptyLists(t *testing.T) {
	d, err := Diff(nil, nil)
	require.NoError(t, err)
	assert.True(t, d.Identical)
	assert.Zero(t, d.CurrentCount)
	assert.Zero(t, d.HistoricalCount)
}
