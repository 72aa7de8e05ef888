package main

import (
	"bytes"
	"context"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/logger"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.DB.Driver = config.DriverSQLite
	cfg.DB.Name = filepath.Join(t.TempDir(), "catalog.db")
	return cfg
}

func TestMigrateCommand_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)
	ctx := context.Background()

	var out bytes.Buffer
	run := func(args ...string) error {
		out.Reset()
		return newCommand(cfg, logger.NOOPLogger, &out).Run(ctx, append([]string{"migrate"}, args...))
	}

	require.NoError(t, run("status"))
	assert.Contains(t, out.String(), "20240601000001_create_catalog.sql")
	assert.Contains(t, out.String(), "  no")

	require.NoError(t, run("up"))
	require.NoError(t, run("status"))
	assert.NotContains(t, out.String(), "  no")

	require.NoError(t, run("down"))
	require.NoError(t, run("status"))
	assert.Contains(t, out.String(), "  no")
}
