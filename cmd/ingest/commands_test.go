package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newApp(out *bytes.Buffer) *cli.App {
	return &cli.App{
		Name:     "ingest",
		Writer:   out,
		Commands: []*cli.Command{RunCommand(), MigrateCommand()},
	}
}

func TestRunDryRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.ndjson")
	require.NoError(t, os.WriteFile(path, []byte("{\"title\":\"A\"}\n{\"title\":\"B\"}\n"), 0o600))

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"ingest", "run", "--source", path, "--dry-run"})
	require.NoError(t, err)
	assert.Equal(t, "Ingested 2\n", out.String())
}

func TestRunIntoSQLite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title":"A"},{"title":"B"},{"title":"C"}]`), 0o600))
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "recipes.db"))

	var out bytes.Buffer
	require.NoError(t, newApp(&out).Run([]string{"ingest", "run", "-s", path}))
	assert.Equal(t, "Ingested 3\n", out.String())
}

func TestRunRejectsBadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"only"}`), 0o600))

	var out bytes.Buffer
	err := newApp(&out).Run([]string{"ingest", "run", "--source", path, "--dry-run"})
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestMigrateSQLite(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "recipes.db"))

	var out bytes.Buffer
	assert.NoError(t, newApp(&out).Run([]string{"ingest", "migrate"}))
}
