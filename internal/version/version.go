// Package version exposes build metadata stamped in via ldflags, e.g.
//
//	go build -ldflags "-X github.com/MeKo-Tech/barkit/internal/version.Version=v1.2.0"
package version

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns the version, commit and build date.
func Info() (version, commit, date string) {
	return Version, GitCommit, BuildDate
}
