package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/logging"
)

// EnvPrefix is the prefix of environment variables overriding file values.
// A double underscore separates nesting levels, so
// PRECHECK_IS_IT_DEPLOYED__PACKAGE_NAME sets is_it_deployed.package_name.
const EnvPrefix = "PRECHECK_"

// DefaultConfigFiles are tried in order by FindConfigFile.
var DefaultConfigFiles = []string{".precheck.toml", ".precheck.yaml", ".precheck.yml"}

// Document is a loaded configuration file: the raw gate configuration handed to
// Parse and the policy section.
type Document struct {
	Path   string
	Raw    map[string]interface{}
	Policy Policy
}

// Parse parses the document's raw configuration with its own policy.
func (d *Document) Parse() (*GateConfig, error) {
	return Parse(d.Raw, d.Policy)
}

// FindConfigFile returns the first default config file present in dir, or "".
func FindConfigFile(dir string) string {
	for _, name := range DefaultConfigFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads a TOML or YAML config file, applies PRECHECK_ environment
// overrides and decodes the policy section. An empty path loads only the
// defaults and the environment.
func Load(path string) (*Document, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	// 1. Policy defaults
	defaults := DefaultPolicy()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"policy.require_gate":         defaults.RequireGate,
		"policy.verify_after_publish": defaults.DefaultVerifyAfterPublish,
	}, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. Config file
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment overrides
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Policy section
	var policy Policy
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &policy,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf(KeyPolicy, &policy, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to unmarshal policy")
	}

	raw := k.Raw()
	delete(raw, KeyPolicy)

	logger.Debug().
		Bool("requireGate", policy.RequireGate).
		Bool("verifyAfterPublish", policy.DefaultVerifyAfterPublish).
		Msg("Configuration loaded")

	return &Document{Path: path, Raw: raw, Policy: policy}, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config file type %q", filepath.Ext(path)).
		WithDetail("path", path)
}

// boolKeys are the keys whose environment values are converted to booleans.
var boolKeys = map[string]bool{
	KeyCheckAfterPublish:                    true,
	KeyVerifyAfterPublish:                   true,
	KeyPolicy + ".require_gate":             true,
	KeyPolicy + "." + KeyVerifyAfterPublish: true,
}

// envKeyValue maps PRECHECK_A__B=v to a.b. Values of boolean keys are
// converted so that check_after_publish keeps its type when set from the
// environment; every other value stays a string.
func envKeyValue(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if !boolKeys[key] {
		return key, value
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return key, b
	}
	return key, value
}
