package domain

// DetectionStrategy names the recognized module-detection strategies (spec.md §6).
type DetectionStrategy string

const (
	// DetectionStrategyDirectSubPackages treats every direct child package of a
	// root package as a candidate module base package.
	DetectionStrategyDirectSubPackages DetectionStrategy = "direct-sub-packages"
	// DetectionStrategyExplicitlyAnnotated treats any descendant package whose
	// descriptor carries the application-module marker annotation as a candidate.
	DetectionStrategyExplicitlyAnnotated DetectionStrategy = "explicitly-annotated"
)

// UnnamedInterfaceName is the sentinel name every ApplicationModule's implicit,
// always-present named interface carries (spec.md §3).
const UnnamedInterfaceName = "UNNAMED"

// DefaultConfigFileName is the configuration file internal/config looks for
// in the current directory when no --config flag is given.
const DefaultConfigFileName = ".modulith.toml"

// DefaultDetectionStrategy is used when configuration does not select one.
const DefaultDetectionStrategy = DetectionStrategyDirectSubPackages

// EnvPrefix is the environment-variable prefix bound by the viper overlay
// (AMBIENT STACK — configuration), config.ApplyOverlay. The `modulith verify`
// and `modulith modules` commands do not apply that overlay.
const EnvPrefix = "MODULITH"
