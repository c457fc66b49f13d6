// Package config loads `.modulith.toml` configuration, grounded on the
// teacher's internal/config/config.go (mapstructure/yaml-tagged Config
// struct, TOML-first loader) and service/clone_config_loader.go's viper
// environment/flag overlay.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/archlens/modulith/domain"
)

// Config is the root configuration structure for `modulith verify`/`modulith modules`.
type Config struct {
	Detection    DetectionConfig    `mapstructure:"detection" yaml:"detection" toml:"detection"`
	Architecture ArchitectureConfig `mapstructure:"architecture" yaml:"architecture" toml:"architecture"`
	Output       OutputConfig       `mapstructure:"output" yaml:"output" toml:"output"`
	Logging      LoggingConfig      `mapstructure:"logging" yaml:"logging" toml:"logging"`
}

// DetectionConfig configures module detection (spec.md §6 "Configuration source").
type DetectionConfig struct {
	Strategy               string   `mapstructure:"strategy" yaml:"strategy" toml:"strategy"`
	RootPackages           []string `mapstructure:"root_packages" yaml:"root_packages" toml:"root_packages"`
	UseFullyQualifiedNames bool     `mapstructure:"use_fully_qualified_names" yaml:"use_fully_qualified_names" toml:"use_fully_qualified_names"`
	SharedModules          []string `mapstructure:"shared_modules" yaml:"shared_modules" toml:"shared_modules"`
	SystemName             string   `mapstructure:"system_name" yaml:"system_name" toml:"system_name"`
}

// ArchitectureConfig carries the stereotype catalog overrides and additional
// rule declarations (spec.md §6 "Stereotype catalog" / "External rules").
type ArchitectureConfig struct {
	StereotypeOverrides map[string][]string `mapstructure:"stereotypes" yaml:"stereotypes" toml:"stereotypes"`
	Layers              []LayerDefinition   `mapstructure:"layers" yaml:"layers" toml:"layers"`
	Rules               []LayerRule         `mapstructure:"rules" yaml:"rules" toml:"rules"`
}

// LayerDefinition names a logical layer by a set of package-name glob patterns.
type LayerDefinition struct {
	Name     string   `mapstructure:"name" yaml:"name" toml:"name"`
	Patterns []string `mapstructure:"patterns" yaml:"patterns" toml:"patterns"`
}

// LayerRule restricts which layers may depend on which, one of SUPPLEMENTED
// FEATURES' external rule sources wired as a Rule implementation.
type LayerRule struct {
	From  string `mapstructure:"from" yaml:"from" toml:"from"`
	To    string `mapstructure:"to" yaml:"to" toml:"to"`
	Allow bool   `mapstructure:"allow" yaml:"allow" toml:"allow"`
}

// OutputConfig configures default report rendering.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" toml:"format"`
	Color  bool   `mapstructure:"color" yaml:"color" toml:"color"`
}

// LoggingConfig configures diagnostic output verbosity (AMBIENT STACK — logging).
type LoggingConfig struct {
	Verbose bool `mapstructure:"verbose" yaml:"verbose" toml:"verbose"`
}

// DefaultConfig returns the out-of-the-box configuration.
func DefaultConfig() *Config {
	return &Config{
		Detection: DetectionConfig{
			Strategy: string(domain.DefaultDetectionStrategy),
		},
		Architecture: ArchitectureConfig{
			StereotypeOverrides: map[string][]string{},
		},
		Output: OutputConfig{
			Format: string(domain.OutputFormatText),
			Color:  true,
		},
	}
}

// LoadConfig loads configuration from configPath, falling back to defaults
// when the file does not exist (spec.md's configuration source is an
// external collaborator; absence is not an error).
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = domain.DefaultConfigFileName
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, domain.NewConfigError("failed to read configuration file "+configPath, err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, domain.NewConfigError("failed to parse configuration file "+configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration for internal consistency.
func (c *Config) Validate() error {
	switch domain.DetectionStrategy(c.Detection.Strategy) {
	case domain.DetectionStrategyDirectSubPackages, domain.DetectionStrategyExplicitlyAnnotated, "":
	default:
		return domain.NewConfigError(fmt.Sprintf("unknown detection strategy: %s", c.Detection.Strategy), nil)
	}
	switch domain.OutputFormat(c.Output.Format) {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatDOT, domain.OutputFormatCSV, "":
	default:
		return domain.NewUnsupportedFormatError(c.Output.Format)
	}
	return nil
}

// WriteSample writes a starter `.modulith.toml` to path, used by `modulith init`.
func WriteSample(path string) error {
	sample := DefaultConfig()
	sample.Detection.RootPackages = []string{"com.example.app"}
	sample.Detection.SystemName = "example-system"

	data, err := toml.Marshal(sample)
	if err != nil {
		return domain.NewConfigError("failed to render sample configuration", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domain.NewConfigError("failed to write sample configuration to "+path, err)
	}
	return nil
}
