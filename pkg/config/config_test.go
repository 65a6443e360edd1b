package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	// Create a minimal config file
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
storage:
  type: local
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Check default values
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "./mod_analysis.db", cfg.Database.Path)
	assert.Equal(t, "favorites", cfg.Collection.Prefix)
	assert.Equal(t, int64(0), cfg.Decoder.MaxInputBytes)
	assert.Equal(t, ".", cfg.Decoder.OutputDir)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_CustomValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
decoder:
  max_input_bytes: 1048576
  output_dir: "/tmp/decoded"
collection:
  prefix: "starred"
database:
  type: mysql
  host: db.example.com
  port: 3306
  database: mod_analysis
  user: admin
  password: secret
storage:
  type: local
  local_path: /tmp/storage
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, int64(1048576), cfg.Decoder.MaxInputBytes)
	assert.Equal(t, "/tmp/decoded", cfg.Decoder.OutputDir)
	assert.Equal(t, "starred", cfg.Collection.Prefix)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "mod_analysis", cfg.Database.Database)
	assert.Equal(t, "/tmp/storage", cfg.Storage.LocalPath)
}

func TestLoad_InvalidDatabaseType(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
database:
  type: oracle
  host: localhost
storage:
  type: local
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	_, err = Load(configFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

// Note: Storage validation tests live in internal/storage

func TestLoad_COSWithCredentials(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
storage:
  type: cos
  bucket: test-bucket
  region: ap-guangzhou
  secret_id: test-id
  secret_key: test-key
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, "cos", cfg.Storage.Type)
	assert.Equal(t, "test-bucket", cfg.Storage.Bucket)
}

func TestValidate_EmptyHost(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Type: "mysql",
			Host: "",
		},
		Storage: StorageConfig{
			Type: "local",
		},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database host is required")
}

func TestValidate_SQLiteNeedsPath(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Type: "sqlite",
		},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database path is required")
}

func TestValidate_NegativeMaxInputBytes(t *testing.T) {
	cfg := &Config{
		Decoder: DecoderConfig{
			MaxInputBytes: -1,
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			Path: "./test.db",
		},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_input_bytes")
}

func TestCollectionKey(t *testing.T) {
	cfg := &Config{
		Collection: CollectionConfig{
			Prefix: "favorites",
		},
	}

	key := cfg.CollectionKey("abc123")
	assert.Equal(t, "favorites/abc123.json", key)
}

func TestEnsureOutputDir(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "decoded", "out")

	cfg := &Config{
		Decoder: DecoderConfig{
			OutputDir: outDir,
		},
	}

	err := cfg.EnsureOutputDir()
	require.NoError(t, err)

	_, err = os.Stat(outDir)
	assert.NoError(t, err)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	// Should not return error, use defaults
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadFromReader(t *testing.T) {
	content := []byte(`
database:
  type: mysql
  host: mysql.local
storage:
  type: local
`)
	cfg, err := LoadFromReader("yaml", content)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "mysql.local", cfg.Database.Host)
}
