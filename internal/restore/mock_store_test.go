package restore

import (
	"context"
	"database/sql"
	"time"

	"github.com/groblegark/quotevault/internal/model"
	"github.com/groblegark/quotevault/internal/store"
)

// mockStore is a minimal in-memory store for orchestrator tests. Packages
// keep insertion order, matching the creation-order listing of the real
// store. RunInTransaction snapshots state up front and restores it when fn
// fails, emulating a full rollback.
type mockStore struct {
	versions map[string]*model.ConfigVersion
	packages []*model.PackageRecord

	// dropFreezeWrites makes DeactivateVersion lose the frozen payload,
	// simulating a silent write failure for verification-gate tests.
	dropFreezeWrites bool
}

func newMockStore() *mockStore {
	return &mockStore{versions: make(map[string]*model.ConfigVersion)}
}

func (m *mockStore) CreateVersion(_ context.Context, v *model.ConfigVersion) error {
	cp := *v
	m.versions[v.ID] = &cp
	return nil
}

func (m *mockStore) GetVersion(_ context.Context, id string) (*model.ConfigVersion, error) {
	v, ok := m.versions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *v
	return &cp, nil
}

func (m *mockStore) GetActiveVersion(_ context.Context, lineage string) (*model.ConfigVersion, error) {
	for _, v := range m.versions {
		if v.Lineage == lineage && v.Active {
			cp := *v
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStore) GetActiveVersionForUpdate(ctx context.Context, lineage string) (*model.ConfigVersion, error) {
	return m.GetActiveVersion(ctx, lineage)
}

func (m *mockStore) ListVersions(_ context.Context, lineage string) ([]*model.ConfigVersion, error) {
	var out []*model.ConfigVersion
	for _, v := range m.versions {
		if v.Lineage == lineage {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockStore) ListLineages(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, v := range m.versions {
		if !seen[v.Lineage] {
			seen[v.Lineage] = true
			out = append(out, v.Lineage)
		}
	}
	return out, nil
}

func (m *mockStore) ListIdentifiers(_ context.Context, lineage string) ([]string, error) {
	var out []string
	for _, v := range m.versions {
		if v.Lineage == lineage {
			out = append(out, v.Identifier)
		}
	}
	return out, nil
}

func (m *mockStore) DeactivateVersion(_ context.Context, id string, frozen []model.SnapshotEntry) error {
	v, ok := m.versions[id]
	if !ok {
		return sql.ErrNoRows
	}
	if v.Frozen() {
		if model.SnapshotsEqual(v.FrozenPackages, frozen) {
			return nil
		}
		return store.ErrAlreadyFrozen
	}
	now := time.Now().UTC()
	v.Active = false
	v.FrozenAt = &now
	v.UpdatedAt = now
	if m.dropFreezeWrites {
		v.FrozenPackages = nil
	} else {
		v.FrozenPackages = frozen
	}
	return nil
}

func (m *mockStore) GetFrozenPackages(_ context.Context, id string) ([]model.SnapshotEntry, error) {
	v, ok := m.versions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return v.FrozenPackages, nil
}

func (m *mockStore) CreatePackage(_ context.Context, p *model.PackageRecord) error {
	cp := *p
	m.packages = append(m.packages, &cp)
	return nil
}

func (m *mockStore) GetPackage(_ context.Context, id string) (*model.PackageRecord, error) {
	for _, p := range m.packages {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStore) UpdatePackage(_ context.Context, rec *model.PackageRecord) error {
	for i, p := range m.packages {
		if p.ID == rec.ID {
			cp := *rec
			m.packages[i] = &cp
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *mockStore) DeletePackage(_ context.Context, id string) error {
	for i, p := range m.packages {
		if p.ID == id {
			m.packages = append(m.packages[:i], m.packages[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *mockStore) ListPackages(_ context.Context, versionID string, activeOnly bool) ([]*model.PackageRecord, error) {
	var out []*model.PackageRecord
	for _, p := range m.packages {
		if p.VersionID != versionID {
			continue
		}
		if activeOnly && !p.Active {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockStore) ReassignPackages(_ context.Context, fromVersionID, toVersionID string) (int, error) {
	n := 0
	for _, p := range m.packages {
		if p.VersionID == fromVersionID {
			p.VersionID = toVersionID
			n++
		}
	}
	return n, nil
}

func (m *mockStore) DeleteVersionPackages(_ context.Context, versionID string) (int, error) {
	var kept []*model.PackageRecord
	n := 0
	for _, p := range m.packages {
		if p.VersionID == versionID {
			n++
			continue
		}
		kept = append(kept, p)
	}
	m.packages = kept
	return n, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	versions, packages := m.snapshotState()
	if err := fn(m); err != nil {
		m.versions = versions
		m.packages = packages
		return err
	}
	return nil
}

func (m *mockStore) Close() error { return nil }

func (m *mockStore) snapshotState() (map[string]*model.ConfigVersion, []*model.PackageRecord) {
	versions := make(map[string]*model.ConfigVersion, len(m.versions))
	for id, v := range m.versions {
		cp := *v
		versions[id] = &cp
	}
	packages := make([]*model.PackageRecord, 0, len(m.packages))
	for _, p := range m.packages {
		cp := *p
		packages = append(packages, &cp)
	}
	return versions, packages
}
