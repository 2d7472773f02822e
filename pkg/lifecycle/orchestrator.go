package lifecycle

import (
	"context"
	stderrors "errors"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/precheck/pkg/config"
	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/gate"
	"github.com/arthur-debert/precheck/pkg/git"
	"github.com/arthur-debert/precheck/pkg/logging"
	"github.com/arthur-debert/precheck/pkg/plugins"
	"github.com/arthur-debert/precheck/pkg/shell"
	"github.com/arthur-debert/precheck/pkg/types"
)

// DeploymentChecker decides whether the release version is already deployed.
type DeploymentChecker interface {
	IsAlreadyDeployed(ctx context.Context, rc *types.ReleaseContext, cfg *config.GateConfig) (bool, error)
}

// Options are the collaborators of an Orchestrator. Nil fields get defaults:
// the installed plugins, the registry/command gate, tag deletion with the git
// CLI and the default policy.
type Options struct {
	Resolver plugins.Resolver
	Checker  DeploymentChecker
	Tags     git.TagDeleter
	Policy   *config.Policy
}

// Orchestrator runs the lifecycle of one release. It is not safe for
// concurrent use; hooks are called one after another.
type Orchestrator struct {
	resolver plugins.Resolver
	checker  DeploymentChecker
	tags     git.TagDeleter
	policy   config.Policy
	state    State
	logger   zerolog.Logger
}

// New creates an Orchestrator in the uninitialized phase.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		resolver: opts.Resolver,
		checker:  opts.Checker,
		tags:     opts.Tags,
		policy:   config.DefaultPolicy(),
		logger:   logging.GetLogger("lifecycle"),
	}
	if o.resolver == nil {
		o.resolver = plugins.NewResolver()
	}
	if o.checker == nil {
		o.checker = gate.NewChecker()
	}
	if o.tags == nil {
		o.tags = git.NewCommandDeleter(shell.NewRunner())
	}
	if opts.Policy != nil {
		o.policy = *opts.Policy
	}
	return o
}

// State returns a copy of the current state.
func (o *Orchestrator) State() State {
	return o.state
}

// Invoke dispatches to the method for hook.
func (o *Orchestrator) Invoke(ctx context.Context, hook types.Hook, raw map[string]interface{}, rc *types.ReleaseContext) error {
	switch hook {
	case types.HookVerifyConditions:
		return o.VerifyConditions(ctx, raw, rc)
	case types.HookAnalyzeCommits:
		return o.AnalyzeCommits(ctx, raw, rc)
	case types.HookVerifyRelease:
		return o.VerifyRelease(ctx, raw, rc)
	case types.HookGenerateNotes:
		return o.GenerateNotes(ctx, raw, rc)
	case types.HookPrepare:
		return o.Prepare(ctx, raw, rc)
	case types.HookPublish:
		return o.Publish(ctx, raw, rc)
	case types.HookAddChannel:
		return o.AddChannel(ctx, raw, rc)
	case types.HookSuccess:
		return o.Success(ctx, raw, rc)
	case types.HookFail:
		return o.Fail(ctx, raw, rc)
	}
	return errors.Newf(errors.ErrInvalidInput, "unknown lifecycle hook %q", hook)
}

// VerifyConditions parses raw, resolves the deployment plugin and runs the
// plugin's verifyConditions. Only the first successful call reads raw; later
// calls reuse the stored plugin and configuration.
func (o *Orchestrator) VerifyConditions(ctx context.Context, raw map[string]interface{}, rc *types.ReleaseContext) error {
	if !o.state.Verified() {
		if err := o.initialize(ctx, raw, rc); err != nil {
			return err
		}
	}

	if _, err := o.delegate(ctx, types.HookVerifyConditions, rc); err != nil {
		return delegateError(err, o.state.PluginName, types.HookVerifyConditions)
	}
	return nil
}

func (o *Orchestrator) initialize(ctx context.Context, raw map[string]interface{}, rc *types.ReleaseContext) error {
	cfg, err := config.Parse(raw, o.policy)
	if err != nil {
		return err
	}

	name := cfg.DeployPlugin.Name
	plugin, err := ResolvePlugin(ctx, o.resolver, name)
	if err != nil {
		return err
	}

	if !cfg.HasGate() {
		o.logger.Warn().Str("plugin", name).
			Msg("Neither is_it_deployed nor should_skip_cmd is configured, the plugin will never be skipped")
	}

	o.state = State{
		Plugin:     plugin,
		PluginName: name,
		Config:     cfg,
		Phase:      PhaseVerified,
	}

	o.logger.Debug().
		Str("plugin", name).
		Bool("registryCheck", cfg.RegistryCheck != nil).
		Bool("skipCommand", cfg.SkipCommand != "").
		Bool("verifyAfterPublish", cfg.VerifyAfterPublish).
		Msg("Release lifecycle initialized")
	return nil
}

// AnalyzeCommits delegates to the plugin.
func (o *Orchestrator) AnalyzeCommits(ctx context.Context, _ map[string]interface{}, rc *types.ReleaseContext) error {
	return o.passThrough(ctx, types.HookAnalyzeCommits, rc)
}

// VerifyRelease delegates to the plugin.
func (o *Orchestrator) VerifyRelease(ctx context.Context, _ map[string]interface{}, rc *types.ReleaseContext) error {
	return o.passThrough(ctx, types.HookVerifyRelease, rc)
}

// GenerateNotes delegates to the plugin.
func (o *Orchestrator) GenerateNotes(ctx context.Context, _ map[string]interface{}, rc *types.ReleaseContext) error {
	return o.passThrough(ctx, types.HookGenerateNotes, rc)
}

// Prepare delegates to the plugin.
func (o *Orchestrator) Prepare(ctx context.Context, _ map[string]interface{}, rc *types.ReleaseContext) error {
	return o.passThrough(ctx, types.HookPrepare, rc)
}

// Publish runs the plugin's publish unless the version is already deployed.
//
// When the plugin's publish fails, or when the post-publish check cannot find
// the version, the release tag is deleted before the error is returned. A
// plugin error is returned unchanged; a tag deletion error is joined to it.
func (o *Orchestrator) Publish(ctx context.Context, _ map[string]interface{}, rc *types.ReleaseContext) error {
	if !o.state.Verified() {
		return lifecycleOrderError(types.HookPublish)
	}
	cfg := o.state.Config
	name := o.state.PluginName
	version := rc.NextRelease.Version

	if _, ok := o.state.Plugin.Lookup(types.HookPublish); !ok {
		rc.Log().Log("The plugin: %s does not implement publish, nothing to check.", name)
		o.state.Phase = PhaseSucceeded
		return nil
	}

	deployed, err := o.checker.IsAlreadyDeployed(ctx, rc, cfg)
	if err != nil {
		return err
	}
	if deployed {
		o.state.Skipped = true
		o.state.Phase = PhaseGated
		rc.Log().Log("The plugin: %s will be skipped for version %s.", name, version)
		return nil
	}

	o.state.Skipped = false
	rc.Log().Log("The plugin: %s will continue to run as normal.", name)

	o.state.Phase = PhasePublishing
	if _, err := o.delegate(ctx, types.HookPublish, rc); err != nil {
		o.state.Phase = PhaseFailed
		return o.compensate(ctx, rc, err)
	}

	if cfg.VerifyAfterPublish {
		if err := o.verifyPublished(ctx, rc); err != nil {
			o.state.Phase = PhaseFailed
			return o.compensate(ctx, rc, err)
		}
	}

	o.state.Phase = PhaseSucceeded
	return nil
}

// verifyPublished re-runs the gate once the plugin's publish returned.
func (o *Orchestrator) verifyPublished(ctx context.Context, rc *types.ReleaseContext) error {
	cfg := o.state.Config
	if !cfg.HasGate() {
		o.logger.Debug().Msg("No gate configured, skipping post-publish verification")
		return nil
	}

	name := o.state.PluginName
	version := rc.NextRelease.Version
	rc.Log().Log("Verifying that version %s was deployed by the plugin: %s.", version, name)

	deployed, err := o.checker.IsAlreadyDeployed(ctx, rc, cfg)
	if err == nil && deployed {
		return nil
	}

	rc.Log().Error("The plugin: %s reported a successful publish, but version %s could not be found.", name, version)
	return postPublishError(err, name, cfg.GateName(), version, rc.NextRelease.GitTag)
}

// compensate deletes the release tag after a failed publish and returns cause,
// joined with the deletion error when deleting fails.
func (o *Orchestrator) compensate(ctx context.Context, rc *types.ReleaseContext, cause error) error {
	tag := rc.NextRelease.GitTag
	if tag == "" {
		o.logger.Warn().Err(cause).Msg("Publish failed and the release has no git tag to delete")
		return cause
	}

	o.logger.Info().Str("tag", tag).Err(cause).Msg("Publish failed, deleting release tag")
	if err := o.tags.DeleteTag(ctx, tag, rc); err != nil {
		rc.Log().Error("Failed to delete git tag %s: %s", tag, err)
		return stderrors.Join(cause, err)
	}
	return cause
}

// AddChannel delegates to the plugin unless publish was skipped.
func (o *Orchestrator) AddChannel(ctx context.Context, _ map[string]interface{}, rc *types.ReleaseContext) error {
	return o.afterPublish(ctx, types.HookAddChannel, rc)
}

// Success delegates to the plugin unless publish was skipped.
func (o *Orchestrator) Success(ctx context.Context, _ map[string]interface{}, rc *types.ReleaseContext) error {
	return o.afterPublish(ctx, types.HookSuccess, rc)
}

// Fail delegates to the plugin unless publish was skipped.
func (o *Orchestrator) Fail(ctx context.Context, _ map[string]interface{}, rc *types.ReleaseContext) error {
	return o.afterPublish(ctx, types.HookFail, rc)
}

func (o *Orchestrator) passThrough(ctx context.Context, hook types.Hook, rc *types.ReleaseContext) error {
	if !o.state.Verified() {
		return lifecycleOrderError(hook)
	}
	if _, err := o.delegate(ctx, hook, rc); err != nil {
		return delegateError(err, o.state.PluginName, hook)
	}
	return nil
}

func (o *Orchestrator) afterPublish(ctx context.Context, hook types.Hook, rc *types.ReleaseContext) error {
	if !o.state.Verified() {
		return lifecycleOrderError(hook)
	}
	if hook == types.HookSuccess || hook == types.HookFail {
		defer func() { o.state.Phase = PhaseTerminal }()
	}

	if o.state.Skipped {
		rc.Log().Log("Skipping %s for deploy plugin %s because publish was skipped.", hook, o.state.PluginName)
		return nil
	}

	if _, err := o.delegate(ctx, hook, rc); err != nil {
		return delegateError(err, o.state.PluginName, hook)
	}
	return nil
}

// delegate runs hook on the plugin with its options and a context scoped to
// the plugin's name. ran is false when the plugin does not implement hook.
func (o *Orchestrator) delegate(ctx context.Context, hook types.Hook, rc *types.ReleaseContext) (ran bool, err error) {
	name := o.state.PluginName
	rc.Log().Log("Running %s for deployment plugin: %s", hook, name)

	fn, ok := o.state.Plugin.Lookup(hook)
	if !ok {
		o.logger.Debug().Str("plugin", name).Str("hook", hook.String()).Msg("Plugin does not implement hook")
		return false, nil
	}

	o.logger.Debug().Str("plugin", name).Str("hook", hook.String()).Msg("Delegating hook")
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error().Str("plugin", name).Str("hook", hook.String()).Interface("panic", r).Msg("Plugin panicked")
			err = errors.Newf(errors.ErrDelegateExecute, "deployment plugin %s panicked in %s: %v", name, hook, r).
				WithDetail(errors.DetailPlugin, name).
				WithDetail(errors.DetailHook, hook.String())
		}
	}()
	return true, fn(ctx, o.state.Config.DeployPlugin.Config, types.ScopeContext(rc, name))
}
