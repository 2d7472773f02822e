package testutil

import "github.com/arthur-debert/precheck/pkg/types"

// DefaultContext returns a release context for version 1.0.0 on main.
// A nil logger gets a NopLogger so tests not asserting on logs stay quiet.
func DefaultContext(logger types.Logger) *types.ReleaseContext {
	if logger == nil {
		logger = types.NopLogger{}
	}
	return &types.ReleaseContext{
		Logger: logger,
		Env:    map[string]string{},
		EnvCI: types.CIEnvironment{
			IsCI:   true,
			Commit: "1234567890",
			Branch: "main",
		},
		Branch:   types.Branch{Name: "main"},
		Branches: []types.Branch{{Name: "main"}},
		NextRelease: types.Release{
			Channel: "main",
			Name:    "main",
			Type:    "major",
			Version: "1.0.0",
			GitTag:  "v1.0.0",
			GitHead: "1234567890",
			Notes:   "Release notes",
		},
	}
}

// WithVersion sets the next release version and its v-prefixed tag.
func WithVersion(rc *types.ReleaseContext, version string) *types.ReleaseContext {
	rc.NextRelease.Version = version
	rc.NextRelease.GitTag = "v" + version
	return rc
}
