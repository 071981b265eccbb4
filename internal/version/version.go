// Package version provides centralized version information for cquery.
package version

// These variables can be overridden at build time using ldflags:
// go build -ldflags "-X github.com/Sevistuo/cquery/internal/version.Version=1.0.0"
var (
	// Version is the semantic version of cquery
	Version = "0.1.0"

	// Commit is the git commit hash (set at build time)
	Commit = "unknown"
)

// Info returns a formatted version string
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}
