// Package version holds build metadata injected via ldflags.
package version

// Set via -ldflags "-X github.com/jonwraymond/luacene/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
)
