package types

import "github.com/arthur-debert/precheck/pkg/errors"

// Hook names one of the lifecycle steps the release orchestrator calls.
type Hook string

const (
	HookVerifyConditions Hook = "verifyConditions"
	HookAnalyzeCommits   Hook = "analyzeCommits"
	HookVerifyRelease    Hook = "verifyRelease"
	HookGenerateNotes    Hook = "generateNotes"
	HookPrepare          Hook = "prepare"
	HookPublish          Hook = "publish"
	HookAddChannel       Hook = "addChannel"
	HookSuccess          Hook = "success"
	HookFail             Hook = "fail"
)

// AllHooks returns the lifecycle hooks in the order the orchestrator calls them.
func AllHooks() []Hook {
	return []Hook{
		HookVerifyConditions,
		HookAnalyzeCommits,
		HookVerifyRelease,
		HookGenerateNotes,
		HookPrepare,
		HookPublish,
		HookAddChannel,
		HookSuccess,
		HookFail,
	}
}

// String returns the string representation of the hook.
func (h Hook) String() string {
	return string(h)
}

// IsValid returns true if h is one of the nine lifecycle hooks.
func (h Hook) IsValid() bool {
	switch h {
	case HookVerifyConditions, HookAnalyzeCommits, HookVerifyRelease,
		HookGenerateNotes, HookPrepare, HookPublish,
		HookAddChannel, HookSuccess, HookFail:
		return true
	default:
		return false
	}
}

// IsPostPublish returns true for the hooks that are suppressed when publish was skipped.
func (h Hook) IsPostPublish() bool {
	return h == HookAddChannel || h == HookSuccess || h == HookFail
}

// ParseHook converts a hook name into a Hook.
func ParseHook(name string) (Hook, error) {
	h := Hook(name)
	if !h.IsValid() {
		return "", errors.Newf(errors.ErrInvalidInput, "unknown lifecycle hook: %s", name).
			WithDetail(errors.DetailHook, name)
	}
	return h, nil
}
