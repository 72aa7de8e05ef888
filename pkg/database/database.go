// Package database opens the store selected by configuration.
package database

import (
	"moviecatalog/pkg/config"
	"moviecatalog/postgres"
	"moviecatalog/sqlite"
	"strconv"

	"gorm.io/gorm"
)

// Open connects to the configured driver. For sqlite, DB_NAME is the
// database file path.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DB.Driver == config.DriverSQLite {
		return sqlite.NewConnection(cfg.DB.Name)
	}
	return postgres.NewConnection(PostgresOptions(cfg))
}

func PostgresOptions(cfg *config.Config) postgres.Options {
	return postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	}
}
