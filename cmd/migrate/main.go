package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/database"
	"moviecatalog/pkg/logger"
	"moviecatalog/postgres"
	"moviecatalog/sqlite"
	"os"
	"text/tabwriter"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot load config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cannot init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := newCommand(cfg, log, os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Errorw("migration failed", zap.Error(err))
		os.Exit(1)
	}
}

// migrator runs sql-migrate against the configured store.
type migrator struct {
	cfg *config.Config
	log *zap.SugaredLogger
	out io.Writer
}

func newCommand(cfg *config.Config, log *zap.SugaredLogger, out io.Writer) *cli.Command {
	m := &migrator{cfg: cfg, log: log, out: out}

	return &cli.Command{
		Name:  "migrate",
		Usage: "manage the catalog schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: "migrations",
				Usage: "directory of postgres migrations, sqlite migrations are embedded",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply pending migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "max", Usage: "apply at most this many migrations, 0 applies all"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return m.exec(cmd, migrate.Up, int(cmd.Int("max")))
				},
			},
			{
				Name:  "down",
				Usage: "roll back applied migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "max", Value: 1, Usage: "roll back at most this many migrations, 0 rolls back all"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return m.exec(cmd, migrate.Down, int(cmd.Int("max")))
				},
			},
			{
				Name:  "status",
				Usage: "list migrations and whether they are applied",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return m.status(cmd)
				},
			},
		},
	}
}

func (m *migrator) exec(cmd *cli.Command, dir migrate.MigrationDirection, max int) error {
	db, dialect, source, err := m.open(cmd.String("dir"))
	if err != nil {
		return err
	}
	defer db.Close()

	total, err := migrate.ExecMax(db, dialect, source, dir, max)
	if err != nil {
		return fmt.Errorf("execute migrations: %w", err)
	}

	m.log.Infow("applied migrations", "total", total, "driver", m.cfg.DB.Driver)
	return nil
}

func (m *migrator) status(cmd *cli.Command) error {
	db, dialect, source, err := m.open(cmd.String("dir"))
	if err != nil {
		return err
	}
	defer db.Close()

	migrations, err := source.FindMigrations()
	if err != nil {
		return err
	}
	records, err := migrate.GetMigrationRecords(db, dialect)
	if err != nil {
		return err
	}

	applied := make(map[string]string, len(records))
	for _, r := range records {
		applied[r.Id] = r.AppliedAt.Format("2006-01-02 15:04:05")
	}

	w := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MIGRATION\tAPPLIED")
	for _, mg := range migrations {
		at, ok := applied[mg.Id]
		if !ok {
			at = "no"
		}
		fmt.Fprintf(w, "%s\t%s\n", mg.Id, at)
	}
	return w.Flush()
}

// open returns a database/sql handle with the dialect and migration source
// matching the configured driver.
func (m *migrator) open(dir string) (*sql.DB, string, migrate.MigrationSource, error) {
	if m.cfg.DB.Driver == config.DriverSQLite {
		gdb, err := sqlite.NewConnection(m.cfg.DB.Name)
		if err != nil {
			return nil, "", nil, err
		}
		db, err := gdb.DB()
		if err != nil {
			return nil, "", nil, err
		}
		return db, sqlite.Dialect, sqlite.Migrations(), nil
	}

	db, err := sql.Open("postgres", postgres.DSN(database.PostgresOptions(m.cfg)))
	if err != nil {
		return nil, "", nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, "postgres", &migrate.FileMigrationSource{Dir: dir}, nil
}
