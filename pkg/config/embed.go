package config

import (
	_ "embed"
)

//go:embed embedded/precheck.toml
var sampleConfig []byte

// GetSampleConfigContent returns the annotated sample configuration.
func GetSampleConfigContent() string {
	return string(sampleConfig)
}
