package database

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"trendsmith/internal/config"
	"trendsmith/internal/middleware"

	"gorm.io/gorm"
)

// Schema modes selected by DB_SCHEMA_MODE.
//
//	sql     embedded SQL migrations only
//	auto    GORM AutoMigrate only (refused in production-like envs)
//	hybrid  SQL migrations, then AutoMigrate outside production
const (
	SchemaModeHybrid = "hybrid"
	SchemaModeSQL    = "sql"
	SchemaModeAuto   = "auto"
)

var prodLikeEnvs = []string{"production", "prod", "staging", "stage"}

// schemaPlan is what ApplySchema will do for a given config.
type schemaPlan struct {
	mode    string
	sql     bool
	autoMig bool
}

// SchemaStatus describes the plan plus the database's migration state.
type SchemaStatus struct {
	Mode               string
	Environment        string
	WillRunSQL         bool
	WillRunAutoMigrate bool
	AppliedVersions    []int
	PendingMigrations  []Migration
}

// planSchema resolves DB_SCHEMA_MODE. An empty mode means auto on sqlite,
// where AutoMigrate owns the file-backed dev database, and hybrid elsewhere.
func planSchema(cfg *config.Config) (schemaPlan, error) {
	mode := cfg.DBSchemaMode
	if mode == "" {
		mode = SchemaModeHybrid
		if cfg.DBDriver == "sqlite" {
			mode = SchemaModeAuto
		}
	}
	prodLike := slices.Contains(prodLikeEnvs, cfg.Env)

	switch mode {
	case SchemaModeSQL:
		return schemaPlan{mode: mode, sql: true}, nil
	case SchemaModeHybrid:
		return schemaPlan{mode: mode, sql: true, autoMig: !prodLike}, nil
	case SchemaModeAuto:
		if prodLike {
			return schemaPlan{}, fmt.Errorf("refusing DB_SCHEMA_MODE=auto in %q", cfg.Env)
		}
		return schemaPlan{mode: mode, autoMig: true}, nil
	default:
		return schemaPlan{}, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", mode)
	}
}

// ApplySchema brings the database schema up to date for cfg.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := planSchema(cfg)
	if err != nil {
		return err
	}

	if plan.sql {
		if err := RunMigrations(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	}
	if plan.autoMig {
		middleware.Logger.Info("running AutoMigrate",
			slog.String("mode", plan.mode),
			slog.String("env", cfg.Env),
			slog.Int("models", len(PersistentModels())),
		)
		if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}
	return nil
}

// GetSchemaStatus reports the plan for cfg and, when SQL migrations are part
// of it, which embedded migrations are still pending.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := planSchema(cfg)
	if err != nil {
		return nil, err
	}

	status := &SchemaStatus{
		Mode:               plan.mode,
		Environment:        cfg.Env,
		WillRunSQL:         plan.sql,
		WillRunAutoMigrate: plan.autoMig,
	}
	if !plan.sql {
		return status, nil
	}

	applied, err := NewMigrationStore(db).GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}
	status.AppliedVersions = applied
	for _, m := range GetMigrations() {
		if !slices.Contains(applied, m.Version) {
			status.PendingMigrations = append(status.PendingMigrations, m)
		}
	}
	return status, nil
}
