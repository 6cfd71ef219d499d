package cliutil

import "github.com/blang/semver"

// Version is stamped at build time via -ldflags, falling back to this
// placeholder for local builds (the same convention pkg/cli.Version uses).
var Version = "0.0.0-dev"

// ParseVersion parses Version using blang/semver, returning the zero
// Version and an error if it isn't valid semver. The "0.0.0-dev"
// placeholder parses as a prerelease version.
func ParseVersion() (semver.Version, error) {
	return semver.Parse(Version)
}
