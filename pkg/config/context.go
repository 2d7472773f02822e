package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/types"
)

// LoadReleaseContext reads a release context from a YAML file, as the CLI does
// for --context. Fields left out keep their zero values; the logger is not set.
func LoadReleaseContext(path string) (*types.ReleaseContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read release context %s", path).
			WithDetail("path", path)
	}
	return ParseReleaseContext(data)
}

// ParseReleaseContext decodes a YAML release context. A missing git tag is
// derived from the version as "v<version>".
func ParseReleaseContext(data []byte) (*types.ReleaseContext, error) {
	var rc types.ReleaseContext
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to parse release context")
	}
	if rc.Env == nil {
		rc.Env = map[string]string{}
	}
	if rc.NextRelease.GitTag == "" && rc.NextRelease.Version != "" {
		rc.NextRelease.GitTag = "v" + rc.NextRelease.Version
	}
	return &rc, nil
}
