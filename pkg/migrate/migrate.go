package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/pressly/goose/v3"
)

const (
	DefaultDir     = "pkg/migrate/migrations"
	DefaultDialect = "postgres"
)

// Runner executes goose commands against one database.
type Runner struct {
	db      *sql.DB
	dir     string
	dialect string
}

// NewRunner validates the inputs and binds goose to the dialect.
func NewRunner(db *sql.DB, dir, dialect string) (*Runner, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	if dialect == "" {
		dialect = DefaultDialect
	}
	if dialect != DefaultDialect {
		return nil, fmt.Errorf("migrations target %s, got dialect %q", DefaultDialect, dialect)
	}
	if err := goose.SetDialect(dialect); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	return &Runner{db: db, dir: dir, dialect: dialect}, nil
}

// Run executes a standard goose command (up, down, status, ...).
func (r *Runner) Run(ctx context.Context, command string, args ...string) error {
	// RunContext prints status output to stdout (goose internal)
	if err := goose.RunContext(ctx, command, r.db, r.dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion migrates up or down to targetVersion based on the current DB version.
func (r *Runner) MigrateToVersion(ctx context.Context, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}

	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}

	current, err := goose.GetDBVersionContext(ctx, r.db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil
	case current < target:
		if err := goose.UpToContext(ctx, r.db, r.dir, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
	default:
		if err := goose.DownToContext(ctx, r.db, r.dir, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
	}
	return nil
}
