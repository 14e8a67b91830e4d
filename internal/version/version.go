// Package version carries build metadata injected with -ldflags.
package version

var (
	// Version is the semantic version of the build.
	Version = "0.1.0-dev"
	// Commit is the git revision, empty for local builds.
	Commit = ""
	// BuildDate is the RFC3339 build time, empty for local builds.
	BuildDate = ""
)

// UserAgent is sent with every API request.
func UserAgent() string {
	return "gigachat-go/" + Version
}
