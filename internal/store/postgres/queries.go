package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/groblegark/quotevault/internal/model"
	"github.com/groblegark/quotevault/internal/store"
)

// versionColumns is the column list used for SELECT statements on the
// config_versions table.
const versionColumns = `id, lineage, identifier, sequence, is_active,
	template, frozen_packages, frozen_at, created_at, created_by, updated_at`

// packageColumns is the column list used for SELECT statements on the
// package_records table.
const packageColumns = `id, version_id, name, description, price,
	services, fields, is_active, created_at, updated_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateVersion(ctx context.Context, db executor, v *model.ConfigVersion) error {
	frozen, err := frozenBytes(v.FrozenPackages)
	if err != nil {
		return fmt.Errorf("encode frozen packages: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO config_versions (
			id, lineage, identifier, sequence, is_active,
			template, frozen_packages, frozen_at, created_at, created_by, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10, $11
		)`,
		v.ID,
		v.Lineage,
		v.Identifier,
		v.Sequence,
		v.Active,
		jsonbBytes(v.Template),
		frozen,
		nullTimePtr(v.FrozenAt),
		v.CreatedAt,
		nullString(v.CreatedBy),
		v.UpdatedAt,
	)
	return err
}

func queryGetVersion(ctx context.Context, db executor, id string) (*model.ConfigVersion, error) {
	row := db.QueryRowContext(ctx, `SELECT `+versionColumns+` FROM config_versions WHERE id = $1`, id)
	return scanVersion(row)
}

func queryGetActiveVersion(ctx context.Context, db executor, lineage string, forUpdate bool) (*model.ConfigVersion, error) {
	q := `SELECT ` + versionColumns + ` FROM config_versions WHERE lineage = $1 AND is_active`
	if forUpdate {
		q += ` FOR UPDATE`
	}
	return scanVersion(db.QueryRowContext(ctx, q, lineage))
}

func queryListVersions(ctx context.Context, db executor, lineage string) ([]*model.ConfigVersion, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+versionColumns+`
		FROM config_versions
		WHERE lineage = $1
		ORDER BY sequence ASC`,
		lineage,
	)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()
	return scanVersions(rows)
}

func queryListLineages(ctx context.Context, db executor) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT DISTINCT lineage FROM config_versions ORDER BY lineage`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lineages []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		lineages = append(lineages, l)
	}
	return lineages, rows.Err()
}

func queryListIdentifiers(ctx context.Context, db executor, lineage string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT identifier FROM config_versions WHERE lineage = $1`,
		lineage,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var identifiers []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		identifiers = append(identifiers, id)
	}
	return identifiers, rows.Err()
}

// queryDeactivateVersion clears the active flag and seals the frozen
// snapshot. A version whose snapshot is already sealed (frozen_at set)
// accepts an identical payload as a no-op and rejects a different one;
// an unsealed continuity copy is overwritten freely.
func queryDeactivateVersion(ctx context.Context, db executor, id string, frozen []model.SnapshotEntry) error {
	var (
		existing []byte
		frozenAt sql.NullTime
	)
	err := db.QueryRowContext(ctx, `
		SELECT frozen_packages, frozen_at FROM config_versions WHERE id = $1`,
		id,
	).Scan(&existing, &frozenAt)
	if err != nil {
		return err
	}

	if frozenAt.Valid {
		sealed, err := decodeFrozen(existing)
		if err != nil {
			return fmt.Errorf("decode sealed snapshot: %w", err)
		}
		if model.SnapshotsEqual(sealed, frozen) {
			return nil
		}
		return store.ErrAlreadyFrozen
	}

	payload, err := frozenBytes(frozen)
	if err != nil {
		return fmt.Errorf("encode frozen packages: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		UPDATE config_versions
		SET is_active = FALSE, frozen_packages = $2, frozen_at = NOW(), updated_at = NOW()
		WHERE id = $1`,
		id, payload,
	)
	return err
}

func queryGetFrozenPackages(ctx context.Context, db executor, id string) ([]model.SnapshotEntry, error) {
	var raw []byte
	err := db.QueryRowContext(ctx, `
		SELECT frozen_packages FROM config_versions WHERE id = $1`,
		id,
	).Scan(&raw)
	if err != nil {
		return nil, err
	}
	return decodeFrozen(raw)
}

func queryCreatePackage(ctx context.Context, db executor, p *model.PackageRecord) error {
	services, err := servicesBytes(p.Services)
	if err != nil {
		return fmt.Errorf("encode services: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO package_records (
			id, version_id, name, description, price,
			services, fields, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10
		)`,
		p.ID,
		p.VersionID,
		p.Name,
		nullString(p.Description),
		p.Price,
		services,
		jsonbBytes(p.Fields),
		p.Active,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func queryGetPackage(ctx context.Context, db executor, id string) (*model.PackageRecord, error) {
	row := db.QueryRowContext(ctx, `SELECT `+packageColumns+` FROM package_records WHERE id = $1`, id)
	return scanPackage(row)
}

func queryUpdatePackage(ctx context.Context, db executor, p *model.PackageRecord) error {
	services, err := servicesBytes(p.Services)
	if err != nil {
		return fmt.Errorf("encode services: %w", err)
	}
	return db.QueryRowContext(ctx, `
		UPDATE package_records SET
			name = $2,
			description = $3,
			price = $4,
			services = $5,
			fields = $6,
			is_active = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		p.ID,
		p.Name,
		nullString(p.Description),
		p.Price,
		services,
		jsonbBytes(p.Fields),
		p.Active,
	).Scan(&p.UpdatedAt)
}

func queryDeletePackage(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM package_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryListPackages(ctx context.Context, db executor, versionID string, activeOnly bool) ([]*model.PackageRecord, error) {
	q := `SELECT ` + packageColumns + ` FROM package_records WHERE version_id = $1`
	if activeOnly {
		q += ` AND is_active`
	}
	q += ` ORDER BY created_at ASC, id ASC`

	rows, err := db.QueryContext(ctx, q, versionID)
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()
	return scanPackages(rows)
}

func queryReassignPackages(ctx context.Context, db executor, fromVersionID, toVersionID string) (int, error) {
	res, err := db.ExecContext(ctx, `
		UPDATE package_records SET version_id = $2, updated_at = NOW()
		WHERE version_id = $1`,
		fromVersionID, toVersionID,
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

func queryDeleteVersionPackages(ctx context.Context, db executor, versionID string) (int, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM package_records WHERE version_id = $1`, versionID)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}
