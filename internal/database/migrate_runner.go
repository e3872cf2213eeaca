package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"trendsmith/internal/middleware"

	"gorm.io/gorm"
)

// MigrationStore tracks which SQL migrations a database has applied.
type MigrationStore interface {
	GetAppliedMigrations(ctx context.Context) ([]int, error)
	ApplyMigration(ctx context.Context, version int, name, sql string) error
	RemoveMigration(ctx context.Context, version int) error
}

// MigrationLog is one row of migration_logs.
type MigrationLog struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255;not null"`
	AppliedAt time.Time `gorm:"autoCreateTime;index"`
}

func (MigrationLog) TableName() string {
	return "migration_logs"
}

type migrationStore struct {
	db *gorm.DB
}

func NewMigrationStore(db *gorm.DB) MigrationStore {
	return &migrationStore{db: db}
}

func (s *migrationStore) GetAppliedMigrations(ctx context.Context) ([]int, error) {
	versions := []int{}
	err := s.db.WithContext(ctx).Model(&MigrationLog{}).Order("version").Pluck("version", &versions).Error
	switch {
	case err == nil:
		return versions, nil
	case errors.Is(err, gorm.ErrRecordNotFound), isMissingTableError(err):
		return []int{}, nil
	default:
		return nil, fmt.Errorf("read migration_logs: %w", err)
	}
}

// isMissingTableError matches the sqlite and postgres wording for an absent table.
func isMissingTableError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "no such table") ||
		(strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"))
}

// ApplyMigration runs the script and records it in one transaction, so a
// failed script leaves no log row behind.
func (s *migrationStore) ApplyMigration(ctx context.Context, version int, name, sql string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(sql).Error; err != nil {
			return fmt.Errorf("apply migration %06d_%s: %w", version, name, err)
		}
		if err := tx.Create(&MigrationLog{Version: version, Name: name}).Error; err != nil {
			return fmt.Errorf("record migration %06d: %w", version, err)
		}
		return nil
	})
}

func (s *migrationStore) RemoveMigration(ctx context.Context, version int) error {
	if err := s.db.WithContext(ctx).Delete(&MigrationLog{}, "version = ?", version).Error; err != nil {
		return fmt.Errorf("remove migration record %06d: %w", version, err)
	}
	return nil
}

func ensureMigrationLogTable(ctx context.Context, db *gorm.DB) error {
	m := db.WithContext(ctx).Migrator()
	if m.HasTable(&MigrationLog{}) {
		return nil
	}
	if err := m.CreateTable(&MigrationLog{}); err != nil {
		return fmt.Errorf("create migration_logs: %w", err)
	}
	return nil
}

// RunMigrations applies every registered migration the database has not seen.
// It refuses to run against a database that knows versions this build lacks.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	if err := ensureMigrationLogTable(ctx, db); err != nil {
		return err
	}

	store := NewMigrationStore(db)
	applied, err := store.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	if err := validateAppliedVersions(applied, migrations); err != nil {
		return err
	}

	pending := 0
	for _, m := range migrations {
		if slices.Contains(applied, m.Version) {
			continue
		}
		if err := store.ApplyMigration(ctx, m.Version, m.Name, m.UpScript); err != nil {
			return err
		}
		middleware.Logger.Info("migration applied", slog.Int("version", m.Version), slog.String("name", m.Name))
		pending++
	}
	if pending == 0 {
		middleware.Logger.Debug("schema up to date", slog.Int("applied", len(applied)))
	}
	return nil
}

func validateAppliedVersions(applied []int, registered []Migration) error {
	var unknown []string
	for _, version := range applied {
		known := slices.ContainsFunc(registered, func(m Migration) bool { return m.Version == version })
		if !known {
			unknown = append(unknown, fmt.Sprintf("%06d", version))
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	slices.Sort(unknown)
	return fmt.Errorf(
		"migration_logs contains unknown versions not present in code: %s (drop the database or run 'migrate down' from a build that knows them)",
		strings.Join(unknown, ", "),
	)
}

// RollbackMigration runs the down script of an applied migration and forgets it.
func RollbackMigration(ctx context.Context, db *gorm.DB, version int) error {
	m := GetMigrationByVersion(version)
	if m == nil {
		return fmt.Errorf("migration version %d not found", version)
	}

	store := NewMigrationStore(db)
	applied, err := store.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(applied, version) {
		return fmt.Errorf("migration %d has not been applied", version)
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(m.DownScript).Error; err != nil {
			return fmt.Errorf("roll back migration %06d_%s: %w", version, m.Name, err)
		}
		return NewMigrationStore(tx).RemoveMigration(ctx, version)
	})
	if err != nil {
		return err
	}
	middleware.Logger.Info("migration rolled back", slog.Int("version", version), slog.String("name", m.Name))
	return nil
}
