package types

import "strconv"

// Release describes a release, either the one being made or a previous one.
type Release struct {
	Version  string   `yaml:"version" json:"version"`
	GitTag   string   `yaml:"gitTag" json:"gitTag"`
	GitHead  string   `yaml:"gitHead" json:"gitHead"`
	Notes    string   `yaml:"notes,omitempty" json:"notes,omitempty"`
	Type     string   `yaml:"type,omitempty" json:"type,omitempty"`
	Channel  string   `yaml:"channel,omitempty" json:"channel,omitempty"`
	Channels []string `yaml:"channels,omitempty" json:"channels,omitempty"`
	Name     string   `yaml:"name,omitempty" json:"name,omitempty"`
}

// Commit is a commit included in the release.
type Commit struct {
	Hash    string `yaml:"hash" json:"hash"`
	Subject string `yaml:"subject,omitempty" json:"subject,omitempty"`
	Body    string `yaml:"body,omitempty" json:"body,omitempty"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// Branch is a release branch known to the orchestrator.
type Branch struct {
	Name       string `yaml:"name" json:"name"`
	Channel    string `yaml:"channel,omitempty" json:"channel,omitempty"`
	Prerelease string `yaml:"prerelease,omitempty" json:"prerelease,omitempty"`
}

// CIEnvironment describes the CI run the release happens in.
type CIEnvironment struct {
	IsCI   bool   `yaml:"isCi" json:"isCi"`
	Commit string `yaml:"commit,omitempty" json:"commit,omitempty"`
	Branch string `yaml:"branch,omitempty" json:"branch,omitempty"`
}

// ReleaseContext is the orchestrator-owned data passed to every lifecycle hook.
// Hooks must not retain it past the call and must not mutate it; use
// ScopeContext to obtain a copy for a delegate.
type ReleaseContext struct {
	Logger      Logger            `yaml:"-" json:"-"`
	Cwd         string            `yaml:"cwd,omitempty" json:"cwd,omitempty"`
	Env         map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
	EnvCI       CIEnvironment     `yaml:"envCi" json:"envCi"`
	Branch      Branch            `yaml:"branch" json:"branch"`
	Branches    []Branch          `yaml:"branches,omitempty" json:"branches,omitempty"`
	NextRelease Release           `yaml:"nextRelease" json:"nextRelease"`
	LastRelease Release           `yaml:"lastRelease" json:"lastRelease"`
	Commits     []Commit          `yaml:"commits,omitempty" json:"commits,omitempty"`
	Releases    []Release         `yaml:"releases,omitempty" json:"releases,omitempty"`
	Errors      []string          `yaml:"errors,omitempty" json:"errors,omitempty"`
}

// Log returns the context logger, or a NopLogger when none is set.
func (rc *ReleaseContext) Log() Logger {
	if rc == nil || rc.Logger == nil {
		return NopLogger{}
	}
	return rc.Logger
}

// TemplateData exposes the context as nested maps keyed the way command
// templates address it, e.g. nextRelease.version, env.HOME or
// commits.0.hash. Lists also carry their size under length.
func (rc *ReleaseContext) TemplateData() map[string]interface{} {
	env := make(map[string]interface{}, len(rc.Env))
	for k, v := range rc.Env {
		env[k] = v
	}

	return map[string]interface{}{
		"cwd":         rc.Cwd,
		"env":         env,
		"envCi":       map[string]interface{}{"isCi": rc.EnvCI.IsCI, "commit": rc.EnvCI.Commit, "branch": rc.EnvCI.Branch},
		"branch":      branchData(rc.Branch),
		"nextRelease": releaseData(rc.NextRelease),
		"lastRelease": releaseData(rc.LastRelease),
		"branches":    indexed(len(rc.Branches), func(i int) interface{} { return branchData(rc.Branches[i]) }),
		"commits":     indexed(len(rc.Commits), func(i int) interface{} { return commitData(rc.Commits[i]) }),
		"releases":    indexed(len(rc.Releases), func(i int) interface{} { return releaseData(rc.Releases[i]) }),
		"errors":      indexed(len(rc.Errors), func(i int) interface{} { return rc.Errors[i] }),
	}
}

// indexed exposes a list as a map keyed by position, so templates address
// elements as commits.0.hash and the size as commits.length.
func indexed(n int, item func(i int) interface{}) map[string]interface{} {
	m := make(map[string]interface{}, n+1)
	m["length"] = n
	for i := 0; i < n; i++ {
		m[strconv.Itoa(i)] = item(i)
	}
	return m
}

func branchData(b Branch) map[string]interface{} {
	return map[string]interface{}{"name": b.Name, "channel": b.Channel, "prerelease": b.Prerelease}
}

func commitData(c Commit) map[string]interface{} {
	return map[string]interface{}{"hash": c.Hash, "subject": c.Subject, "body": c.Body, "message": c.Message}
}

func releaseData(r Release) map[string]interface{} {
	return map[string]interface{}{
		"version":  r.Version,
		"gitTag":   r.GitTag,
		"gitHead":  r.GitHead,
		"notes":    r.Notes,
		"type":     r.Type,
		"channel":  r.Channel,
		"name":     r.Name,
		"channels": indexed(len(r.Channels), func(i int) interface{} { return r.Channels[i] }),
	}
}
