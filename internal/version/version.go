// Package version holds build information injected via ldflags.
package version

// Version information (overridden by cmd/gitignore-assist at startup)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
