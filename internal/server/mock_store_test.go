package server

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/groblegark/quotevault/internal/model"
	"github.com/groblegark/quotevault/internal/store"
)

// mockStore is a minimal in-memory store for HTTP handler tests.
type mockStore struct {
	versions map[string]*model.ConfigVersion
	packages []*model.PackageRecord
}

func newMockStore() *mockStore {
	return &mockStore{versions: make(map[string]*model.ConfigVersion)}
}

func (m *mockStore) CreateVersion(_ context.Context, v *model.ConfigVersion) error {
	m.versions[v.ID] = v
	return nil
}

func (m *mockStore) GetVersion(_ context.Context, id string) (*model.ConfigVersion, error) {
	v, ok := m.versions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return v, nil
}

func (m *mockStore) GetActiveVersion(_ context.Context, lineage string) (*model.ConfigVersion, error) {
	for _, v := range m.versions {
		if v.Lineage == lineage && v.Active {
			return v, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStore) GetActiveVersionForUpdate(ctx context.Context, lineage string) (*model.ConfigVersion, error) {
	return m.GetActiveVersion(ctx, lineage)
}

func (m *mockStore) ListVersions(_ context.Context, lineage string) ([]*model.ConfigVersion, error) {
	var result []*model.ConfigVersion
	for _, v := range m.versions {
		if v.Lineage == lineage {
			result = append(result, v)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Sequence < result[j].Sequence
	})
	return result, nil
}

func (m *mockStore) ListLineages(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for _, v := range m.versions {
		if !seen[v.Lineage] {
			seen[v.Lineage] = true
			result = append(result, v.Lineage)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (m *mockStore) ListIdentifiers(_ context.Context, lineage string) ([]string, error) {
	var result []string
	for _, v := range m.versions {
		if v.Lineage == lineage {
			result = append(result, v.Identifier)
		}
	}
	sort.Strings(result)
	return result, nil
}

func (m *mockStore) DeactivateVersion(_ context.Context, id string, frozen []model.SnapshotEntry) error {
	v, ok := m.versions[id]
	if !ok {
		return sql.ErrNoRows
	}
	now := time.Now().UTC()
	v.Active = false
	v.FrozenPackages = frozen
	v.FrozenAt = &now
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
	m.packages = append(m.packages, p)
	return nil
}

func (m *mockStore) GetPackage(_ context.Context, id string) (*model.PackageRecord, error) {
	for _, p := range m.packages {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockStore) UpdatePackage(_ context.Context, p *model.PackageRecord) error {
	for i, existing := range m.packages {
		if existing.ID == p.ID {
			m.packages[i] = p
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
	var result []*model.PackageRecord
	for _, p := range m.packages {
		if p.VersionID != versionID {
			continue
		}
		if activeOnly && !p.Active {
			continue
		}
		result = append(result, p)
	}
	return result, nil
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
	return fn(m)
}

func (m *mockStore) Close() error {
	return nil
}
