package app

import "fmt"

// Set with -ldflags "-X github.com/AvtandilKakulia/vocabulary-learning-app-sub000/internal/app.Version=1.0.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is reported in startup logs and by /health.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
