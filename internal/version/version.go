// Package version carries build-time metadata injected via -ldflags,
// grounded on the teacher's internal/version package.
package version

import "fmt"

// Version, Commit, Date, and BuiltBy are overwritten at build time via
// -ldflags "-X github.com/archlens/modulith/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
	BuiltBy = "source"
)

// Short returns just the version string, e.g. for `modulith --version`.
func Short() string {
	return Version
}

// Info returns the full multi-line build information block.
func Info() string {
	return fmt.Sprintf("modulith %s\ncommit: %s\nbuilt at: %s\nbuilt by: %s", Version, Commit, Date, BuiltBy)
}
