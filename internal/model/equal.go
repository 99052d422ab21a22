package model

import (
	"encoding/json"
	"reflect"
	"slices"
)

// JSONEqual reports whether two raw JSON documents are structurally equal.
// Object key order is irrelevant; array order is significant. Empty and
// absent documents compare equal.
func JSONEqual(a, b json.RawMessage) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	av, aok := decodeJSON(a)
	bv, bok := decodeJSON(b)
	if !aok || !bok {
		// Unparseable payloads fall back to byte comparison.
		return string(a) == string(b)
	}
	return reflect.DeepEqual(av, bv)
}

func decodeJSON(raw json.RawMessage) (any, bool) {
	if len(raw) == 0 {
		return nil, true
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}

// Equal reports whether two snapshot entries carry the same content.
// Services compare order-sensitively; Fields compare structurally.
func (e SnapshotEntry) Equal(o SnapshotEntry) bool {
	return e.Name == o.Name &&
		e.Description == o.Description &&
		e.Price == o.Price &&
		slices.Equal(e.Services, o.Services) &&
		JSONEqual(e.Fields, o.Fields)
}

// SnapshotsEqual reports whether two snapshot lists carry the same entries
// in the same order.
func SnapshotsEqual(a, b []SnapshotEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
