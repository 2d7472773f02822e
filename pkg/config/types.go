package config

// Raw configuration keys.
const (
	KeyDeployPlugin        = "deploy_plugin"
	KeyIsItDeployed        = "is_it_deployed"
	KeyPackageName         = "package_name"
	KeyPackageManager      = "package_manager"
	KeyShouldSkipCmd       = "should_skip_cmd"
	KeyShouldSkipDeployCmd = "should_skip_deployment_cmd"
	KeyCheckAfterPublish   = "check_after_publish"
	KeyVerifyAfterPublish  = "verify_after_publish"
	KeyPolicy              = "policy"
)

// PluginSpec names the deployment plugin to wrap and the options passed to its hooks.
type PluginSpec struct {
	Name   string                 `mapstructure:"name" json:"name" yaml:"name"`
	Config map[string]interface{} `mapstructure:"config" json:"config" yaml:"config"`
}

// RegistryCheck identifies the package whose published versions decide the gate.
type RegistryCheck struct {
	PackageName    string `mapstructure:"package_name" json:"package_name" yaml:"package_name"`
	PackageManager string `mapstructure:"package_manager" json:"package_manager" yaml:"package_manager"`
}

// GateConfig is the parsed, validated configuration of one release run.
type GateConfig struct {
	DeployPlugin       PluginSpec     `json:"deploy_plugin" yaml:"deploy_plugin"`
	RegistryCheck      *RegistryCheck `json:"is_it_deployed,omitempty" yaml:"is_it_deployed,omitempty"`
	SkipCommand        string         `json:"should_skip_cmd,omitempty" yaml:"should_skip_cmd,omitempty"`
	VerifyAfterPublish bool           `json:"check_after_publish" yaml:"check_after_publish"`
}

// HasGate reports whether any gating check is configured.
func (c *GateConfig) HasGate() bool {
	return c.RegistryCheck != nil || c.SkipCommand != ""
}

// GateName describes what the gate checks against, for messages: the package
// manager when a registry check is configured, otherwise the skip command.
func (c *GateConfig) GateName() string {
	if c.RegistryCheck != nil {
		return c.RegistryCheck.PackageManager
	}
	return c.SkipCommand
}

// Policy holds the defaults that vary between setups.
type Policy struct {
	// RequireGate rejects configurations with neither a registry check nor a
	// skip command. When false such configurations never skip publish.
	RequireGate bool `koanf:"require_gate"`
	// DefaultVerifyAfterPublish applies when check_after_publish is absent.
	DefaultVerifyAfterPublish bool `koanf:"verify_after_publish"`
}

// DefaultPolicy returns the policy used when none is configured.
func DefaultPolicy() Policy {
	return Policy{
		RequireGate:               false,
		DefaultVerifyAfterPublish: true,
	}
}
