// Package version holds build metadata injected via ldflags:
//
//	-X github.com/kailas-cloud/folio/internal/version.Version=v1.2.0
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns the version with an abbreviated commit, e.g. "v1.2.0+3f2a9c1".
func Short() string {
	if Commit == "" || Commit == "unknown" {
		return Version
	}
	c := Commit
	if len(c) > 7 {
		c = c[:7]
	}
	return Version + "+" + c
}
