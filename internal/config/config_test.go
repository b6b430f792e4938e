package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "shipdata.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Empty(t, cfg.Taxonomy.Path)
	assert.Equal(t, "vessel_id", cfg.Collapse.Key)
	assert.Equal(t, 8, cfg.Collapse.Workers)
	assert.Empty(t, cfg.Collapse.Rules)
	assert.Equal(t, 60, cfg.Fetch.TimeoutSecs)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.InDelta(t, 5.0, cfg.Fetch.Rate, 0.001)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/shipdata
log:
  level: debug
  format: console
server:
  port: 9090
taxonomy:
  path: custom.yaml
collapse:
  key: mmsi
  workers: 2
  rules:
    flag: concat
    hull_material: mode_string
input:
  delimiter: ";"
  columns:
    Vessel_Name: shipname
  mappings:
    flag:
      espana: ESP
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "custom.yaml", cfg.Taxonomy.Path)
	assert.Equal(t, "mmsi", cfg.Collapse.Key)
	assert.Equal(t, 2, cfg.Collapse.Workers)
	assert.Equal(t, map[string]string{"flag": "concat", "hull_material": "mode_string"}, cfg.Collapse.Rules)
	assert.Equal(t, ";", cfg.Input.Delimiter)
	// viper folds keys to lower case
	assert.Equal(t, "shipname", cfg.Input.Columns["vessel_name"])
	assert.Equal(t, "ESP", cfg.Input.Mappings["flag"]["espana"])
	// Defaults still apply for unset values
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("SHIPDATA_STORE_DRIVER", "postgres")
	t.Setenv("SHIPDATA_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("SHIPDATA_SERVER_PORT", "3000")
	t.Setenv("SHIPDATA_COLLAPSE_WORKERS", "16")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 16, cfg.Collapse.Workers)
}

func TestLoadBadYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("store: [unclosed"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Store.Driver = "sqlite"
	cfg.Store.DatabaseURL = "shipdata.db"
	cfg.Collapse.Key = "vessel_id"
	cfg.Collapse.Workers = 8
	cfg.Server.Port = 8080
	return cfg
}

func TestValidateCollapse_AllPresent(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("collapse"))
}

func TestValidateCollapse_MissingFields(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "mysql"
	cfg.Store.DatabaseURL = ""
	cfg.Collapse.Key = ""
	cfg.Collapse.Workers = 0

	err := cfg.Validate("collapse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver must be sqlite or postgres")
	assert.Contains(t, err.Error(), "store.database_url is required")
	assert.Contains(t, err.Error(), "collapse.key is required")
	assert.Contains(t, err.Error(), "collapse.workers must be at least 1")
}

func TestValidateServe_ValidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 9090

	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := &Config{}
	assert.NoError(t, cfg.Validate("normalize"))
}
