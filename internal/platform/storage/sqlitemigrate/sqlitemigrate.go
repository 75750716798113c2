// Package sqlitemigrate applies embedded SQL migrations to a SQLite
// database in lexical filename order, recording applied versions in a
// schema_migrations table.
package sqlitemigrate

import (
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// ApplyMigrations runs every .sql file under root in lexical order,
// skipping versions already recorded in schema_migrations. Each
// migration executes inside its own transaction together with the
// bookkeeping insert, so a failed migration leaves no record behind.
func ApplyMigrations(db *sql.DB, fsys fs.FS, root string) error {
	if db == nil {
		return fmt.Errorf("db is nil")
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	if root == "" {
		root = "."
	}
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("read migrations dir %q: %w", root, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		applied, err := isApplied(db, name)
		if err != nil {
			return fmt.Errorf("check migration %q: %w", name, err)
		}
		if applied {
			continue
		}

		raw, err := fs.ReadFile(fsys, path.Join(root, name))
		if err != nil {
			return fmt.Errorf("read migration %q: %w", name, err)
		}

		if err := applyOne(db, name, ExtractUpMigration(string(raw))); err != nil {
			return err
		}
	}
	return nil
}

func applyOne(db *sql.DB, name, stmt string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %q: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(stmt); err != nil {
		return fmt.Errorf("apply migration %q: %w", name, err)
	}
	if _, err := tx.Exec(
		"INSERT INTO schema_migrations (version, applied_at) VALUES (?, unixepoch()*1000)",
		name,
	); err != nil {
		return fmt.Errorf("record migration %q: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %q: %w", name, err)
	}
	return nil
}

// ExtractUpMigration returns the portion of a migration file above a
// "-- +down" marker. Files without the marker run whole.
func ExtractUpMigration(contents string) string {
	lower := strings.ToLower(contents)
	if idx := strings.Index(lower, "-- +down"); idx >= 0 {
		return contents[:idx]
	}
	return contents
}

// IsAlreadyExistsError reports whether err is SQLite complaining that a
// table, index, or column already exists.
func IsAlreadyExistsError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "already exists") ||
		strings.Contains(msg, "duplicate column name")
}

func isApplied(db *sql.DB, version string) (bool, error) {
	var n int
	err := db.QueryRow(
		"SELECT COUNT(1) FROM schema_migrations WHERE version = ?", version,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
