package config

import (
	"bytes"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/precheck/pkg/errors"
)

// Sample config formats understood by GenerateConfigContent.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// GenerateConfigContent returns a sample configuration file in the given format.
// The policy section is emitted with its values commented out since they are
// the defaults.
func GenerateConfigContent(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatTOML:
		return commentOutSection(GetSampleConfigContent(), KeyPolicy), nil
	case FormatYAML, "yml":
		return sampleAsYAML()
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown config format %q (use toml or yaml)", format)
}

func sampleAsYAML() (string, error) {
	var doc map[string]interface{}
	if err := toml.Unmarshal(sampleConfig, &doc); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to decode sample config")
	}
	delete(doc, KeyPolicy)

	var buf bytes.Buffer
	buf.WriteString("# precheck configuration\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode sample config")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode sample config")
	}
	return buf.String(), nil
}

// commentOutSection comments out the assignments of one TOML section, keeping
// its header, comments and blank lines.
func commentOutSection(content, section string) string {
	lines := strings.Split(content, "\n")
	var result []string
	inSection := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Section headers switch the current section
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			inSection = strings.Trim(trimmed, "[]") == section
			result = append(result, line)
			continue
		}

		if !inSection || trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}
