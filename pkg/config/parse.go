package config

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/arthur-debert/precheck/pkg/errors"
)

const docsHint = "See docs for how to implement."

// Parse turns raw configuration into a GateConfig, applying policy for the
// values the raw input leaves out. It performs no I/O. Every rejection is an
// ErrConfigInvalid error naming the offending key.
func Parse(raw map[string]interface{}, policy Policy) (*GateConfig, error) {
	cfg := &GateConfig{
		VerifyAfterPublish: policy.DefaultVerifyAfterPublish,
	}

	plugin, err := parseDeployPlugin(raw[KeyDeployPlugin])
	if err != nil {
		return nil, err
	}
	cfg.DeployPlugin = plugin

	if v, ok := raw[KeyIsItDeployed]; ok && v != nil {
		check, err := parseRegistryCheck(v)
		if err != nil {
			return nil, err
		}
		cfg.RegistryCheck = check
	}

	key, v, ok := firstPresent(raw, KeyShouldSkipCmd, KeyShouldSkipDeployCmd)
	if ok {
		cmd, isString := v.(string)
		if !isString {
			return nil, invalid(key+" must be a string. "+docsHint).WithDetail("key", key)
		}
		cfg.SkipCommand = cmd
	}

	key, v, ok = firstPresent(raw, KeyCheckAfterPublish, KeyVerifyAfterPublish)
	if ok {
		verify, isBool := v.(bool)
		if !isBool {
			return nil, invalid(key+" must be a boolean. "+docsHint).WithDetail("key", key)
		}
		cfg.VerifyAfterPublish = verify
	}

	if err := cfg.Validate(policy); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks an already typed configuration against policy.
func (c *GateConfig) Validate(policy Policy) error {
	if c.DeployPlugin.Name == "" {
		return invalid("deploy_plugin must be defined. "+docsHint).WithDetail("key", KeyDeployPlugin)
	}
	if c.RegistryCheck != nil {
		if c.RegistryCheck.PackageManager == "" {
			return missingRegistryField(KeyPackageManager)
		}
		if c.RegistryCheck.PackageName == "" {
			return missingRegistryField(KeyPackageName)
		}
	}
	if policy.RequireGate && !c.HasGate() {
		return invalid("is_it_deployed or should_skip_cmd must be defined. " + docsHint)
	}
	return nil
}

func parseDeployPlugin(v interface{}) (PluginSpec, error) {
	switch p := v.(type) {
	case nil:
		return PluginSpec{}, invalid("deploy_plugin must be defined. "+docsHint).WithDetail("key", KeyDeployPlugin)
	case string:
		if p == "" {
			return PluginSpec{}, invalid("deploy_plugin must be defined. "+docsHint).WithDetail("key", KeyDeployPlugin)
		}
		return PluginSpec{Name: p, Config: map[string]interface{}{}}, nil
	case []interface{}:
		if len(p) != 2 {
			break
		}
		name, ok := p[0].(string)
		if !ok || name == "" {
			break
		}
		options, ok := asStringMap(p[1])
		if !ok {
			break
		}
		return PluginSpec{Name: name, Config: options}, nil
	}
	return PluginSpec{}, invalid("deploy_plugin is not configured correctly. "+docsHint).WithDetail("key", KeyDeployPlugin)
}

func parseRegistryCheck(v interface{}) (*RegistryCheck, error) {
	m, ok := asStringMap(v)
	if !ok {
		return nil, invalid("is_it_deployed is not configured correctly. "+docsHint).WithDetail("key", KeyIsItDeployed)
	}

	var check RegistryCheck
	if err := mapstructure.Decode(m, &check); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "is_it_deployed is not configured correctly. "+docsHint).
			WithDetail("key", KeyIsItDeployed)
	}
	if check.PackageManager == "" {
		return nil, missingRegistryField(KeyPackageManager)
	}
	if check.PackageName == "" {
		return nil, missingRegistryField(KeyPackageName)
	}
	return &check, nil
}

func missingRegistryField(field string) *errors.Error {
	key := KeyIsItDeployed + "." + field
	return invalid(key+" must be defined in configuration for this plugin. "+docsHint).WithDetail("key", key)
}

// asStringMap accepts the map shapes produced by the JSON, YAML and TOML decoders.
func asStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		if m == nil {
			return map[string]interface{}{}, true
		}
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = val
		}
		return out, true
	}
	return nil, false
}

func firstPresent(raw map[string]interface{}, keys ...string) (string, interface{}, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return k, v, true
		}
	}
	return "", nil, false
}

func invalid(msg string) *errors.Error {
	return errors.New(errors.ErrConfigInvalid, msg)
}
