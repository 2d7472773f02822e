// Package exec is a deployment plugin that runs a shell command per lifecycle
// hook. It registers itself as "@semantic-release/exec"; link it in with
//
//	import _ "github.com/arthur-debert/precheck/pkg/plugins/exec"
//
// Options name the command for each hook with a "Cmd" suffix:
//
//	deploy_plugin = ["@semantic-release/exec", { publishCmd = "./publish.sh ${nextRelease.version}" }]
//
// Hooks without a command do nothing.
package exec

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/logging"
	"github.com/arthur-debert/precheck/pkg/plugins"
	"github.com/arthur-debert/precheck/pkg/shell"
	"github.com/arthur-debert/precheck/pkg/template"
	"github.com/arthur-debert/precheck/pkg/types"
)

// Name is the name the plugin registers under.
const Name = "@semantic-release/exec"

// OptionCwd sets the working directory of every command, relative to the
// release context's directory.
const OptionCwd = "execCwd"

// CommandRunner runs one hook command.
type CommandRunner interface {
	Run(ctx context.Context, cmd shell.Command, logger types.Logger) error
}

func init() {
	plugins.MustRegister(Name, New(shell.NewRunner()))
}

// New creates the plugin with runner executing its commands.
func New(runner CommandRunner) types.Plugin {
	set := types.HookSet{}
	for _, hook := range types.AllHooks() {
		set[hook] = hookFunc(runner, hook)
	}
	return set
}

// OptionKey returns the option holding the command for hook, e.g. "publishCmd".
func OptionKey(hook types.Hook) string {
	return hook.String() + "Cmd"
}

func hookFunc(runner CommandRunner, hook types.Hook) types.HookFunc {
	key := OptionKey(hook)

	return func(ctx context.Context, options map[string]interface{}, rc *types.ReleaseContext) error {
		raw, ok := options[key]
		if !ok || raw == nil {
			return nil
		}
		tmpl, ok := raw.(string)
		if !ok || tmpl == "" {
			return errors.Newf(errors.ErrConfigInvalid, "%s must be a non-empty string", key).
				WithDetail("key", key)
		}

		line, err := template.Render(tmpl, rc.TemplateData())
		if err != nil {
			return err
		}

		dir, err := workDir(options, rc.Cwd)
		if err != nil {
			return err
		}

		logger := logging.GetLogger("exec")
		logger.Debug().
			Str("hook", hook.String()).
			Str("command", line).
			Str("dir", dir).
			Msg("Running hook command")

		rc.Log().Log("Call script %s", line)
		return runner.Run(ctx, shell.Command{Line: line, Env: rc.Env, Dir: dir}, rc.Log())
	}
}

func workDir(options map[string]interface{}, base string) (string, error) {
	raw, ok := options[OptionCwd]
	if !ok || raw == nil {
		return base, nil
	}
	cwd, ok := raw.(string)
	if !ok {
		return "", errors.Newf(errors.ErrConfigInvalid, "%s must be a string", OptionCwd).
			WithDetail("key", OptionCwd)
	}
	if cwd == "" || filepath.IsAbs(cwd) {
		if cwd == "" {
			return base, nil
		}
		return cwd, nil
	}
	return filepath.Join(base, cwd), nil
}
