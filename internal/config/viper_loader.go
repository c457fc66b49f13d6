package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/archlens/modulith/domain"
)

// OverlayOptions are the `modulith verify`/`modulith modules` flags that may
// override a loaded Config (spec.md §6 "Configuration source").
type OverlayOptions struct {
	Strategy     string
	RootPackages []string
	ConfigPath   string
}

// ApplyOverlay layers environment variables (MODULITH_* prefix) and CLI flags
// on top of a loaded Config, grounded on clone_config_loader.go's
// viper.SetDefault/BindPFlag pattern.
func ApplyOverlay(cfg *Config, flags *pflag.FlagSet, opts OverlayOptions) error {
	v := viper.New()
	v.SetEnvPrefix(domain.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("detection.strategy", cfg.Detection.Strategy)
	v.SetDefault("detection.root_packages", cfg.Detection.RootPackages)
	v.SetDefault("output.format", cfg.Output.Format)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return domain.NewConfigError("failed to bind command flags", err)
		}
	}

	if opts.Strategy != "" {
		v.Set("detection.strategy", opts.Strategy)
	}
	if len(opts.RootPackages) > 0 {
		v.Set("detection.root_packages", opts.RootPackages)
	}

	cfg.Detection.Strategy = v.GetString("detection.strategy")
	cfg.Detection.RootPackages = v.GetStringSlice("detection.root_packages")
	if format := v.GetString("output.format"); format != "" {
		cfg.Output.Format = format
	}

	return cfg.Validate()
}
