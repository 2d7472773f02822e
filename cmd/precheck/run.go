package precheck

import (
	"context"
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/git"
	"github.com/arthur-debert/precheck/pkg/lifecycle"
	"github.com/arthur-debert/precheck/pkg/logging"
	"github.com/arthur-debert/precheck/pkg/shell"
	"github.com/arthur-debert/precheck/pkg/types"
	"github.com/arthur-debert/precheck/pkg/ui/report"
)

// Tag deleters selectable with --tag-deleter.
const (
	TagDeleterCLI   = "cli"
	TagDeleterGoGit = "go-git"
)

func newRunCmd(opts *options) *cobra.Command {
	var (
		releaseVersion string
		tagDeleter     string
		remote         string
	)

	cmd := &cobra.Command{
		Use:     "run",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		GroupID: "release",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			doc, err := opts.loadConfig()
			if err != nil {
				return err
			}
			rc, err := opts.releaseContext(releaseVersion, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			tags, err := newTagDeleter(tagDeleter, remote)
			if err != nil {
				return err
			}

			o := lifecycle.New(lifecycle.Options{Tags: tags, Policy: &doc.Policy})
			run, runErr := runLifecycle(cmd.Context(), o, doc.Raw, rc)

			if err := renderer.RenderResult(run); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().StringVar(&releaseVersion, "version", "", MsgFlagVersion)
	cmd.Flags().StringVar(&tagDeleter, "tag-deleter", TagDeleterCLI, MsgFlagTagDeleter)
	cmd.Flags().StringVar(&remote, "remote", git.DefaultRemote, MsgFlagRemote)
	return cmd
}

func newTagDeleter(kind, remote string) (git.TagDeleter, error) {
	switch kind {
	case TagDeleterCLI:
		d := git.NewCommandDeleter(shell.NewRunner())
		d.Remote = remote
		return d, nil
	case TagDeleterGoGit:
		d := git.NewRepositoryDeleter()
		d.Remote = remote
		return d, nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, MsgErrTagDeleter, kind).WithDetail("tagDeleter", kind)
}

// runLifecycle calls the hooks the way semantic-release does: every hook but
// fail in order, stopping at the first error, and fail only when a hook after
// verifyConditions failed.
func runLifecycle(ctx context.Context, o *lifecycle.Orchestrator, raw map[string]interface{}, rc *types.ReleaseContext) (*report.Run, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.GetLogger("run")
	done := logging.LogOperationStart(logger, "release lifecycle")
	defer done()

	run := &report.Run{
		Version: rc.NextRelease.Version,
		Tag:     rc.NextRelease.GitTag,
	}
	results := make(map[types.Hook]report.HookResult)

	var runErr error
	for _, hook := range types.AllHooks() {
		if hook == types.HookFail {
			break
		}
		err := o.Invoke(ctx, hook, raw, rc)
		results[hook] = hookResult(o.State(), hook, err)
		if err != nil {
			logger.Debug().Str("hook", hook.String()).Err(err).Msg("Hook failed, stopping")
			runErr = err
			break
		}
	}

	if runErr != nil && o.State().Verified() {
		err := o.Fail(ctx, raw, rc)
		results[types.HookFail] = hookResult(o.State(), types.HookFail, err)
		if err != nil {
			runErr = stderrors.Join(runErr, err)
		}
	}

	for _, hook := range types.AllHooks() {
		result, ok := results[hook]
		if !ok {
			result = report.HookResult{Hook: hook.String(), Status: report.StatusNotRun}
		}
		run.Hooks = append(run.Hooks, result)
	}

	state := o.State()
	run.Plugin = state.PluginName
	run.Phase = state.Phase.String()
	run.Skipped = state.Skipped
	if runErr != nil {
		run.Error = runErr.Error()
	}
	return run, runErr
}

func hookResult(state lifecycle.State, hook types.Hook, err error) report.HookResult {
	result := report.HookResult{Hook: hook.String(), Status: report.StatusSucceeded}
	switch {
	case err != nil:
		result.Status = report.StatusFailed
		result.Error = err.Error()
	case state.Skipped && (hook == types.HookPublish || hook.IsPostPublish()):
		result.Status = report.StatusSkipped
	}
	return result
}
