package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/precheck/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/precheck/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/precheck/internal/version.Date={{.Date}}
)

// String returns the version line printed by "precheck version".
func String() string {
	return "precheck " + Version + " (commit " + Commit + ", built " + Date + ")"
}
