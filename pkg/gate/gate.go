// Package gate decides whether a release version is already deployed, which
// makes the publish step unnecessary.
package gate

import (
	"context"

	"github.com/arthur-debert/precheck/pkg/config"
	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/logging"
	"github.com/arthur-debert/precheck/pkg/lookup"
	"github.com/arthur-debert/precheck/pkg/shell"
	"github.com/arthur-debert/precheck/pkg/template"
	"github.com/arthur-debert/precheck/pkg/types"
)

// CommandRunner runs a skip command. Any error means the command did not exit 0.
type CommandRunner interface {
	Run(ctx context.Context, cmd shell.Command, logger types.Logger) error
}

// Checker runs the configured gate checks.
type Checker struct {
	Lookup lookup.Lookup
	Runner CommandRunner
}

// NewChecker creates a Checker using the public registries and the embedded shell.
func NewChecker() *Checker {
	return &Checker{
		Lookup: lookup.NewClient(),
		Runner: shell.NewRunner(),
	}
}

// IsAlreadyDeployed reports whether rc.NextRelease.Version is already deployed.
// The registry check runs first and wins when it finds the version; otherwise
// the skip command decides, where exit 0 means deployed and any failure means
// not deployed. With neither configured the answer is false.
//
// Registry lookup errors and template errors are returned; command failures are not.
func (c *Checker) IsAlreadyDeployed(ctx context.Context, rc *types.ReleaseContext, cfg *config.GateConfig) (bool, error) {
	logger := rc.Log()
	zlog := logging.GetLogger("gate")
	version := rc.NextRelease.Version

	if check := cfg.RegistryCheck; check != nil {
		logger.Log("Checking if version %s of package %s is already deployed to %s.",
			version, check.PackageName, check.PackageManager)

		deployed, err := c.Lookup.IsDeployed(ctx, lookup.Query{
			PackageManager: check.PackageManager,
			PackageName:    check.PackageName,
			PackageVersion: version,
		})
		if err != nil {
			return false, err
		}
		if deployed {
			logger.Log("Version %s of package %s is already deployed to %s.",
				version, check.PackageName, check.PackageManager)
			return true, nil
		}
		logger.Log("Version %s of package %s is not yet deployed to %s.",
			version, check.PackageName, check.PackageManager)
	}

	if cfg.SkipCommand != "" {
		line, err := template.Render(cfg.SkipCommand, rc.TemplateData())
		if err != nil {
			return false, errors.Wrapf(err, errors.ErrConfigInvalid, "should_skip_cmd %q could not be rendered", cfg.SkipCommand).
				WithDetail(errors.DetailCommand, cfg.SkipCommand)
		}

		logger.Log("Running command: '%s'... (Output of command will be displayed below)", line)

		// Command output reads like the deployment plugin's own output.
		cmdLogger := types.ScopeContext(rc, cfg.DeployPlugin.Name).Log()
		err = c.Runner.Run(ctx, shell.Command{Line: line, Env: rc.Env, Dir: rc.Cwd}, cmdLogger)
		if err == nil {
			logger.Log("Command was successful (return exit code 0).")
			return true, nil
		}

		zlog.Debug().Err(err).Str("command", line).Msg("Skip command failed, treating as not deployed")
		logger.Log("Command was not successful (did not return exit code 0).")
	}

	return false, nil
}
