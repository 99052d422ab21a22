package postgres

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/groblegark/quotevault/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanVersion scans a single row into a model.ConfigVersion.
// The row must contain columns in the order defined by versionColumns.
func scanVersion(row scannable) (*model.ConfigVersion, error) {
	var v model.ConfigVersion
	var (
		template  []byte
		frozen    []byte
		frozenAt  sql.NullTime
		createdBy sql.NullString
	)

	err := row.Scan(
		&v.ID,
		&v.Lineage,
		&v.Identifier,
		&v.Sequence,
		&v.Active,
		&template,
		&frozen,
		&frozenAt,
		&v.CreatedAt,
		&createdBy,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.CreatedBy = createdBy.String
	if frozenAt.Valid {
		t := frozenAt.Time
		v.FrozenAt = &t
	}
	if len(template) > 0 {
		v.Template = json.RawMessage(template)
	}
	entries, err := decodeFrozen(frozen)
	if err != nil {
		return nil, err
	}
	v.FrozenPackages = entries

	return &v, nil
}

// scanVersions scans multiple rows into a slice of ConfigVersion pointers.
func scanVersions(rows *sql.Rows) ([]*model.ConfigVersion, error) {
	var versions []*model.ConfigVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return versions, nil
}

// scanPackage scans a single row into a model.PackageRecord.
func scanPackage(row scannable) (*model.PackageRecord, error) {
	var p model.PackageRecord
	var (
		description sql.NullString
		services    []byte
		fields      []byte
	)

	err := row.Scan(
		&p.ID,
		&p.VersionID,
		&p.Name,
		&description,
		&p.Price,
		&services,
		&fields,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Description = description.String
	if len(services) > 0 {
		if err := json.Unmarshal(services, &p.Services); err != nil {
			return nil, err
		}
	}
	if len(fields) > 0 {
		p.Fields = json.RawMessage(fields)
	}

	return &p, nil
}

// scanPackages scans multiple rows into a slice of PackageRecord pointers.
func scanPackages(rows *sql.Rows) ([]*model.PackageRecord, error) {
	var packages []*model.PackageRecord
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return packages, nil
}

// frozenBytes encodes a frozen snapshot list for a JSONB column; an empty
// list maps to NULL so the column distinguishes "no snapshot" from "[]".
func frozenBytes(entries []model.SnapshotEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	return json.Marshal(entries)
}

// decodeFrozen decodes a JSONB frozen snapshot column; NULL yields nil.
func decodeFrozen(raw []byte) ([]model.SnapshotEntry, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var entries []model.SnapshotEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// servicesBytes encodes an ordered service list for a JSONB column.
func servicesBytes(services []string) ([]byte, error) {
	if len(services) == 0 {
		return nil, nil
	}
	return json.Marshal(services)
}

// nullTimePtr converts a *time.Time to a sql.NullTime.
func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// jsonbBytes converts json.RawMessage to a []byte suitable for JSONB columns.
func jsonbBytes(m json.RawMessage) []byte {
	if len(m) == 0 {
		return nil
	}
	return []byte(m)
}
