// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/groblegark/quotevault/internal/model"
	"github.com/groblegark/quotevault/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateVersion(ctx context.Context, v *model.ConfigVersion) error {
	return queryCreateVersion(ctx, s.db, v)
}

func (s *PostgresStore) GetVersion(ctx context.Context, id string) (*model.ConfigVersion, error) {
	return queryGetVersion(ctx, s.db, id)
}

func (s *PostgresStore) GetActiveVersion(ctx context.Context, lineage string) (*model.ConfigVersion, error) {
	return queryGetActiveVersion(ctx, s.db, lineage, false)
}

func (s *PostgresStore) GetActiveVersionForUpdate(ctx context.Context, lineage string) (*model.ConfigVersion, error) {
	return queryGetActiveVersion(ctx, s.db, lineage, true)
}

func (s *PostgresStore) ListVersions(ctx context.Context, lineage string) ([]*model.ConfigVersion, error) {
	return queryListVersions(ctx, s.db, lineage)
}

func (s *PostgresStore) ListLineages(ctx context.Context) ([]string, error) {
	return queryListLineages(ctx, s.db)
}

func (s *PostgresStore) ListIdentifiers(ctx context.Context, lineage string) ([]string, error) {
	return queryListIdentifiers(ctx, s.db, lineage)
}

func (s *PostgresStore) DeactivateVersion(ctx context.Context, id string, frozen []model.SnapshotEntry) error {
	return queryDeactivateVersion(ctx, s.db, id, frozen)
}

func (s *PostgresStore) GetFrozenPackages(ctx context.Context, id string) ([]model.SnapshotEntry, error) {
	return queryGetFrozenPackages(ctx, s.db, id)
}

func (s *PostgresStore) CreatePackage(ctx context.Context, p *model.PackageRecord) error {
	return queryCreatePackage(ctx, s.db, p)
}

func (s *PostgresStore) GetPackage(ctx context.Context, id string) (*model.PackageRecord, error) {
	return queryGetPackage(ctx, s.db, id)
}

func (s *PostgresStore) UpdatePackage(ctx context.Context, p *model.PackageRecord) error {
	return queryUpdatePackage(ctx, s.db, p)
}

func (s *PostgresStore) DeletePackage(ctx context.Context, id string) error {
	return queryDeletePackage(ctx, s.db, id)
}

func (s *PostgresStore) ListPackages(ctx context.Context, versionID string, activeOnly bool) ([]*model.PackageRecord, error) {
	return queryListPackages(ctx, s.db, versionID, activeOnly)
}

func (s *PostgresStore) ReassignPackages(ctx context.Context, fromVersionID, toVersionID string) (int, error) {
	return queryReassignPackages(ctx, s.db, fromVersionID, toVersionID)
}

func (s *PostgresStore) DeleteVersionPackages(ctx context.Context, versionID string) (int, error) {
	return queryDeleteVersionPackages(ctx, s.db, versionID)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateVersion(ctx context.Context, v *model.ConfigVersion) error {
	return queryCreateVersion(ctx, s.tx, v)
}

func (s *txStore) GetVersion(ctx context.Context, id string) (*model.ConfigVersion, error) {
	return queryGetVersion(ctx, s.tx, id)
}

func (s *txStore) GetActiveVersion(ctx context.Context, lineage string) (*model.ConfigVersion, error) {
	return queryGetActiveVersion(ctx, s.tx, lineage, false)
}

func (s *txStore) GetActiveVersionForUpdate(ctx context.Context, lineage string) (*model.ConfigVersion, error) {
	return queryGetActiveVersion(ctx, s.tx, lineage, true)
}

func (s *txStore) ListVersions(ctx context.Context, lineage string) ([]*model.ConfigVersion, error) {
	return queryListVersions(ctx, s.tx, lineage)
}

func (s *txStore) ListLineages(ctx context.Context) ([]string, error) {
	return queryListLineages(ctx, s.tx)
}

func (s *txStore) ListIdentifiers(ctx context.Context, lineage string) ([]string, error) {
	return queryListIdentifiers(ctx, s.tx, lineage)
}

func (s *txStore) DeactivateVersion(ctx context.Context, id string, frozen []model.SnapshotEntry) error {
	return queryDeactivateVersion(ctx, s.tx, id, frozen)
}

func (s *txStore) GetFrozenPackages(ctx context.Context, id string) ([]model.SnapshotEntry, error) {
	return queryGetFrozenPackages(ctx, s.tx, id)
}

func (s *txStore) CreatePackage(ctx context.Context, p *model.PackageRecord) error {
	return queryCreatePackage(ctx, s.tx, p)
}

func (s *txStore) GetPackage(ctx context.Context, id string) (*model.PackageRecord, error) {
	return queryGetPackage(ctx, s.tx, id)
}

func (s *txStore) UpdatePackage(ctx context.Context, p *model.PackageRecord) error {
	return queryUpdatePackage(ctx, s.tx, p)
}

func (s *txStore) DeletePackage(ctx context.Context, id string) error {
	return queryDeletePackage(ctx, s.tx, id)
}

func (s *txStore) ListPackages(ctx context.Context, versionID string, activeOnly bool) ([]*model.PackageRecord, error) {
	return queryListPackages(ctx, s.tx, versionID, activeOnly)
}

func (s *txStore) ReassignPackages(ctx context.Context, fromVersionID, toVersionID string) (int, error) {
	return queryReassignPackages(ctx, s.tx, fromVersionID, toVersionID)
}

func (s *txStore) DeleteVersionPackages(ctx context.Context, versionID string) (int, error) {
	return queryDeleteVersionPackages(ctx, s.tx, versionID)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
