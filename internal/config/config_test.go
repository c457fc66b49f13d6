package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archlens/modulith/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, string(domain.DefaultDetectionStrategy), cfg.Detection.Strategy)
	assert.Equal(t, string(domain.OutputFormatText), cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".modulith.toml")
	contents := `
[detection]
strategy = "explicitly-annotated"
root_packages = ["com.acme.app"]
system_name = "acme-shop"
shared_modules = ["common"]

[output]
format = "json"
color = false
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "explicitly-annotated", cfg.Detection.Strategy)
	assert.Equal(t, []string{"com.acme.app"}, cfg.Detection.RootPackages)
	assert.Equal(t, "acme-shop", cfg.Detection.SystemName)
	assert.Equal(t, []string{"common"}, cfg.Detection.SharedModules)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.Color)
}

func TestLoadConfig_InvalidStrategyFailsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".modulith.toml")
	require.NoError(t, os.WriteFile(path, []byte("[detection]\nstrategy = \"bogus\"\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	var domErr domain.DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, domain.ErrCodeConfigError, domErr.Code)
}

func TestLoadConfig_MalformedTOMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".modulith.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	var domErr domain.DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, domain.ErrCodeConfigError, domErr.Code)
}

func TestConfig_Validate_UnsupportedOutputFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Format = "pdf"
	err := cfg.Validate()
	require.Error(t, err)
	var domErr domain.DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, domain.ErrCodeUnsupportedFormat, domErr.Code)
}

func TestConfig_Validate_AcceptsEmptyStrategyAndFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detection.Strategy = ""
	cfg.Output.Format = ""
	assert.NoError(t, cfg.Validate())
}

func TestWriteSample_RoundTripsThroughLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".modulith.toml")
	require.NoError(t, WriteSample(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.app"}, cfg.Detection.RootPackages)
	assert.Equal(t, "example-system", cfg.Detection.SystemName)
	assert.NoError(t, cfg.Validate())
}
