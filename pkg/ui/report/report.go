// Package report holds the results the CLI renders. Every type marshals to
// the JSON the json renderer emits.
package report

// Status is the outcome of one hook in a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	// StatusSkipped means the hook ran but the deployment plugin was not called
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
	// StatusNotRun means an earlier hook stopped the run
	StatusNotRun Status = "not run"
)

// HookResult is one row of a Run.
type HookResult struct {
	Hook   string `json:"hook"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Run summarizes a full lifecycle run.
type Run struct {
	Plugin  string       `json:"plugin"`
	Version string       `json:"version"`
	Tag     string       `json:"tag,omitempty"`
	Phase   string       `json:"phase"`
	Skipped bool         `json:"skipped"`
	Hooks   []HookResult `json:"hooks"`
	Error   string       `json:"error,omitempty"`
}

// Failed reports whether any hook failed.
func (r *Run) Failed() bool {
	for _, h := range r.Hooks {
		if h.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Outcome is the one-word result of the run.
func (r *Run) Outcome() string {
	switch {
	case r.Failed():
		return "failed"
	case r.Skipped:
		return "skipped"
	default:
		return "published"
	}
}

// Check is the result of running the gate alone.
type Check struct {
	Plugin   string `json:"plugin"`
	Version  string `json:"version"`
	Gate     string `json:"gate"`
	Deployed bool   `json:"deployed"`
}

// Validation describes a configuration that parsed successfully.
type Validation struct {
	Path               string `json:"path"`
	Plugin             string `json:"plugin"`
	PackageName        string `json:"packageName,omitempty"`
	PackageManager     string `json:"packageManager,omitempty"`
	SkipCommand        string `json:"skipCommand,omitempty"`
	VerifyAfterPublish bool   `json:"verifyAfterPublish"`
	RequireGate        bool   `json:"requireGate"`
}

// HasGate reports whether the configuration can ever skip publish.
func (v *Validation) HasGate() bool {
	return v.PackageManager != "" || v.SkipCommand != ""
}

// Plugin is one installed deployment plugin.
type Plugin struct {
	Name  string   `json:"name"`
	Hooks []string `json:"hooks"`
}

// Plugins lists the installed deployment plugins.
type Plugins struct {
	Plugins []Plugin `json:"plugins"`
}
