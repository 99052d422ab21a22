package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRestoreStrategyIsValid(t *testing.T) {
	for _, s := range []RestoreStrategy{StrategyHistorical, StrategyCurrent} {
		if !s.IsValid() {
			t.Errorf("strategy %q should be valid", s)
		}
	}
	for _, s := range []RestoreStrategy{"", "historico", "actual", "HISTORICAL"} {
		if s.IsValid() {
			t.Errorf("strategy %q should be invalid", s)
		}
	}
}

func TestPackageRecordSnapshot(t *testing.T) {
	now := time.Now()
	rec := &PackageRecord{
		ID:          "pk-abc123",
		VersionID:   "cv-def456",
		Name:        "Basic",
		Description: "entry tier",
		Price:       150,
		Services:    []string{"setup", "support"},
		Fields:      json.RawMessage(`{"sla":"gold"}`),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	entry := rec.Snapshot()
	if entry.Name != "Basic" || entry.Price != 150 || entry.Description != "entry tier" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if len(entry.Services) != 2 || entry.Services[0] != "setup" {
		t.Fatalf("services not carried over: %v", entry.Services)
	}

	// Volatile fields must not leak into the serialized form.
	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"id", "version_id", "created_at", "updated_at", "active"} {
		if _, ok := m[k]; ok {
			t.Errorf("snapshot entry should not carry %q", k)
		}
	}
}

func TestSnapshotAll(t *testing.T) {
	if got := SnapshotAll(nil); got != nil {
		t.Fatalf("SnapshotAll(nil) = %v, want nil", got)
	}
	entries := SnapshotAll([]*PackageRecord{
		{Name: "A", Price: 1},
		{Name: "B", Price: 2},
	})
	if len(entries) != 2 || entries[0].Name != "A" || entries[1].Name != "B" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestConfigVersionFrozen(t *testing.T) {
	v := &ConfigVersion{}
	if v.Frozen() {
		t.Error("version without frozen_at should not be frozen")
	}
	now := time.Now()
	v.FrozenAt = &now
	if !v.Frozen() {
		t.Error("version with frozen_at should be frozen")
	}
}
