package model

import (
	"encoding/json"
	"time"
)

// PackageRecord is a mutable child of a ConfigVersion: one sellable package
// (pricing, ordered service list, descriptive text) owned by exactly one
// version. Name is unique within the owning version and serves as the
// natural key for diffing across snapshots.
type PackageRecord struct {
	ID          string          `json:"id"`
	VersionID   string          `json:"version_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price"`
	Services    []string        `json:"services,omitempty"` // order is significant
	Fields      json.RawMessage `json:"fields,omitempty"`   // opaque extra fields
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SnapshotEntry is the flattened form of a PackageRecord used for snapshots
// and diffing. Identity and timestamps are deliberately excluded; two entries
// compare equal when their remaining fields do.
type SnapshotEntry struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price"`
	Services    []string        `json:"services,omitempty"`
	Fields      json.RawMessage `json:"fields,omitempty"`
}

// Snapshot flattens the record into its snapshot form.
func (p *PackageRecord) Snapshot() SnapshotEntry {
	return SnapshotEntry{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Services:    p.Services,
		Fields:      p.Fields,
	}
}

// SnapshotAll flattens a list of records in order.
func SnapshotAll(records []*PackageRecord) []SnapshotEntry {
	if len(records) == 0 {
		return nil
	}
	entries := make([]SnapshotEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.Snapshot())
	}
	return entries
}
