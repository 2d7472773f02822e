package lifecycle

import (
	"github.com/arthur-debert/precheck/pkg/config"
	"github.com/arthur-debert/precheck/pkg/types"
)

// Phase is the position of a release run in the lifecycle.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseVerified
	// PhaseGated means publish was skipped because the version was deployed.
	PhaseGated
	PhasePublishing
	PhaseSucceeded
	PhaseFailed
	// PhaseTerminal is reached by success or fail.
	PhaseTerminal
)

var phaseNames = map[Phase]string{
	PhaseUninitialized: "uninitialized",
	PhaseVerified:      "verified",
	PhaseGated:         "gated",
	PhasePublishing:    "publishing",
	PhaseSucceeded:     "succeeded",
	PhaseFailed:        "failed",
	PhaseTerminal:      "terminal",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// State is everything an Orchestrator remembers between hooks. Plugin and
// Config are set together by verifyConditions and never change afterwards.
type State struct {
	Plugin     types.Plugin
	PluginName string
	Config     *config.GateConfig
	// Skipped is set when publish was gated.
	Skipped bool
	Phase   Phase
}

// Verified reports whether verifyConditions has completed.
func (s State) Verified() bool {
	return s.Phase != PhaseUninitialized
}
