package config

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverlay_NoOverridesKeepsLoadedValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detection.Strategy = "explicitly-annotated"
	cfg.Detection.RootPackages = []string{"com.acme.app"}

	require.NoError(t, ApplyOverlay(cfg, nil, OverlayOptions{}))
	assert.Equal(t, "explicitly-annotated", cfg.Detection.Strategy)
	assert.Equal(t, []string{"com.acme.app"}, cfg.Detection.RootPackages)
}

func TestApplyOverlay_OptionsOverrideLoadedValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detection.Strategy = "direct-sub-packages"
	cfg.Detection.RootPackages = []string{"com.acme.app"}

	err := ApplyOverlay(cfg, nil, OverlayOptions{
		Strategy:     "explicitly-annotated",
		RootPackages: []string{"com.acme.other"},
	})
	require.NoError(t, err)
	assert.Equal(t, "explicitly-annotated", cfg.Detection.Strategy)
	assert.Equal(t, []string{"com.acme.other"}, cfg.Detection.RootPackages)
}

func TestApplyOverlay_EnvironmentOverridesLoadedStrategy(t *testing.T) {
	t.Setenv("MODULITH_DETECTION_STRATEGY", "explicitly-annotated")

	cfg := DefaultConfig()
	cfg.Detection.Strategy = "direct-sub-packages"

	require.NoError(t, ApplyOverlay(cfg, nil, OverlayOptions{}))
	assert.Equal(t, "explicitly-annotated", cfg.Detection.Strategy)
}

func TestApplyOverlay_RejectsInvalidStrategyAfterOverlay(t *testing.T) {
	cfg := DefaultConfig()
	err := ApplyOverlay(cfg, nil, OverlayOptions{Strategy: "not-a-real-strategy"})
	assert.Error(t, err)
}

func TestApplyOverlay_BindsCommandFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output.format", "", "")
	require.NoError(t, flags.Set("output.format", "yaml"))

	cfg := DefaultConfig()
	require.NoError(t, ApplyOverlay(cfg, flags, OverlayOptions{}))
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
