package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesTableList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minirel.toml")
	content := `
data_dir = "/var/lib/minirel"

[[tables]]
name = "alunos"
schema_path = "schemas/alunos.schema"

[[tables]]
name = "worked"
schema_path = "schemas/worked.schema"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/minirel", cfg.DataDir)
	require.Len(t, cfg.Tables, 2)

	tc, ok := cfg.Table("worked")
	require.True(t, ok)
	assert.Equal(t, "schemas/worked.schema", tc.SchemaPath)

	_, ok = cfg.Table("missing")
	assert.False(t, ok)
}

func TestLoadDefaultsDataDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minirel.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[tables]]\nname=\"t\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.DataDir)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minirel.toml")
	cfg := &Config{DataDir: dir, Tables: []TableConfig{{Name: "t", SchemaPath: "t.schema"}}}
	require.NoError(t, Save(path, cfg))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.DataDir, reloaded.DataDir)
	assert.Equal(t, cfg.Tables, reloaded.Tables)
}
