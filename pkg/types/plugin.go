package types

import "context"

// HookFunc is one lifecycle hook implemented by a deployment plugin. options is
// the plugin's own configuration taken from the deploy_plugin setting.
type HookFunc func(ctx context.Context, options map[string]interface{}, rc *ReleaseContext) error

// Plugin is the capability set of a deployment plugin. A plugin may implement any
// subset of the nine hooks, so callers must check presence before invoking.
type Plugin interface {
	// Lookup returns the plugin's implementation of hook, if it has one.
	Lookup(hook Hook) (HookFunc, bool)
}

// HookSet is a Plugin built from a map of hook implementations.
type HookSet map[Hook]HookFunc

// Lookup implements Plugin.
func (s HookSet) Lookup(hook Hook) (HookFunc, bool) {
	fn, ok := s[hook]
	if !ok || fn == nil {
		return nil, false
	}
	return fn, true
}

// Hooks returns the hooks implemented by p, in lifecycle order.
func Hooks(p Plugin) []Hook {
	var hooks []Hook
	for _, h := range AllHooks() {
		if _, ok := p.Lookup(h); ok {
			hooks = append(hooks, h)
		}
	}
	return hooks
}

// Per-hook interfaces. A value implementing any of them can be turned into a
// Plugin with FromMethods.
type (
	ConditionsVerifier interface {
		VerifyConditions(ctx context.Context, options map[string]interface{}, rc *ReleaseContext) error
	}
	CommitAnalyzer interface {
		AnalyzeCommits(ctx context.Context, options map[string]interface{}, rc *ReleaseContext) error
	}
	ReleaseVerifier interface {
		VerifyRelease(ctx context.Context, options map[string]interface{}, rc *ReleaseContext) error
	}
	NotesGenerator interface {
		GenerateNotes(ctx context.Context, options map[string]interface{}, rc *ReleaseContext) error
	}
	Preparer interface {
		Prepare(ctx context.Context, options map[string]interface{}, rc *ReleaseContext) error
	}
	Publisher interface {
		Publish(ctx context.Context, options map[string]interface{}, rc *ReleaseContext) error
	}
	ChannelAdder interface {
		AddChannel(ctx context.Context, options map[string]interface{}, rc *ReleaseContext) error
	}
	SuccessNotifier interface {
		Success(ctx context.Context, options map[string]interface{}, rc *ReleaseContext) error
	}
	FailNotifier interface {
		Fail(ctx context.Context, options map[string]interface{}, rc *ReleaseContext) error
	}
)

// FromMethods builds a Plugin from whichever per-hook interfaces v implements.
func FromMethods(v interface{}) Plugin {
	set := HookSet{}
	if p, ok := v.(ConditionsVerifier); ok {
		set[HookVerifyConditions] = p.VerifyConditions
	}
	if p, ok := v.(CommitAnalyzer); ok {
		set[HookAnalyzeCommits] = p.AnalyzeCommits
	}
	if p, ok := v.(ReleaseVerifier); ok {
		set[HookVerifyRelease] = p.VerifyRelease
	}
	if p, ok := v.(NotesGenerator); ok {
		set[HookGenerateNotes] = p.GenerateNotes
	}
	if p, ok := v.(Preparer); ok {
		set[HookPrepare] = p.Prepare
	}
	if p, ok := v.(Publisher); ok {
		set[HookPublish] = p.Publish
	}
	if p, ok := v.(ChannelAdder); ok {
		set[HookAddChannel] = p.AddChannel
	}
	if p, ok := v.(SuccessNotifier); ok {
		set[HookSuccess] = p.Success
	}
	if p, ok := v.(FailNotifier); ok {
		set[HookFail] = p.Fail
	}
	return set
}
