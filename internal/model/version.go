package model

import (
	"encoding/json"
	"time"
)

// ConfigVersion is one generation of a quote configuration. A lineage holds
// the ordered chain of versions sharing an identifier prefix; exactly one
// version per lineage is active at any time.
type ConfigVersion struct {
	ID         string `json:"id"`
	Lineage    string `json:"lineage"`    // identifier prefix, e.g. "Q-100"
	Identifier string `json:"identifier"` // rendered code, e.g. "Q-100V3"
	Sequence   int    `json:"sequence"`
	Active     bool   `json:"active"`

	// Template carries the opaque template fields (titles, terms, layout)
	// copied verbatim when a historical version is restored. The engine
	// never interprets them.
	Template json.RawMessage `json:"template,omitempty"`

	// FrozenPackages is the immutable point-in-time copy of the version's
	// package records, written when the version is superseded. A restored
	// version also carries a continuity copy from creation; it only becomes
	// immutable once FrozenAt is set.
	FrozenPackages []SnapshotEntry `json:"frozen_packages,omitempty"`
	FrozenAt       *time.Time      `json:"frozen_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Frozen reports whether the version has been superseded and its snapshot
// sealed.
func (v *ConfigVersion) Frozen() bool {
	return v.FrozenAt != nil
}

// RestoreStrategy selects how package records are reconciled when a
// historical version is restored into the active slot.
type RestoreStrategy string

const (
	// StrategyHistorical recreates packages from the target version's
	// frozen snapshot.
	StrategyHistorical RestoreStrategy = "historical"
	// StrategyCurrent carries the outgoing active version's packages
	// forward unchanged.
	StrategyCurrent RestoreStrategy = "current"
)

// String returns the string representation of the strategy.
func (s RestoreStrategy) String() string {
	return string(s)
}

// IsValid checks whether the strategy is a known value.
func (s RestoreStrategy) IsValid() bool {
	switch s {
	case StrategyHistorical, StrategyCurrent:
		return true
	}
	return false
}
