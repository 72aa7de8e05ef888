// Package sqlite opens a file or in-memory SQLite store for the catalog
// repositories and carries its schema migrations.
package sqlite

import (
	"embed"
	"fmt"
	"moviecatalog/postgres"

	migrate "github.com/rubenv/sql-migrate"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Dialect is the sql-migrate dialect name for SQLite.
const Dialect = "sqlite3"

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the embedded schema migrations.
func Migrations() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
}

// NewConnection opens dsn, which is a file path or ":memory:". The pool is
// capped at one connection: SQLite serialises writers anyway, and every
// in-memory connection would otherwise see its own empty database.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlitedriver.Open(dsn), postgres.GormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate applies the embedded migrations in the given direction and returns
// how many were applied.
func Migrate(db *gorm.DB, dir migrate.MigrationDirection) (int, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, err
	}
	return migrate.Exec(sqlDB, Dialect, Migrations(), dir)
}
