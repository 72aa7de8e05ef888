// Package postgres holds the gorm repositories of the catalog. Queries stick
// to portable SQL, so the repositories also run on the sqlite connection.
package postgres

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type Options struct {
	DBName   string
	DBUser   string
	Password string
	Host     string
	Port     string
	SSLMode  bool
}

// DSN renders opts as a libpq keyword/value connection string.
func DSN(opts Options) string {
	sslmode := "disable"
	if opts.SSLMode {
		sslmode = "require"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		opts.Host, opts.Port, opts.DBUser, opts.Password, opts.DBName, sslmode,
	)
}

func NewConnection(opts Options) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(DSN(opts)), GormConfig())
}

// GormConfig is the gorm configuration shared by every store connection.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: NewLogger(log.New(os.Stdout, "\r\n", log.LstdFlags)),
	}
}

// NewLogger logs failed and slow statements to w. A lookup that finds no row
// is an ordinary outcome and is not logged.
func NewLogger(w gormLogger.Writer) gormLogger.Interface {
	return gormLogger.New(w, gormLogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormLogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
