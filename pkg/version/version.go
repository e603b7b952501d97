// Package version reports the build version of resviz.
package version

// Set at build time with -ldflags "-X github.com/rshade/resviz/pkg/version.version=...".
//
//nolint:gochecknoglobals // ldflags targets must be package variables.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersion returns the release version, "dev" for local builds.
func GetVersion() string {
	return version
}

// GetCommit returns the git commit the binary was built from.
func GetCommit() string {
	return commit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return date
}

// String formats the full build information for --version.
func String() string {
	return version + " (commit " + commit + ", built " + date + ")"
}
