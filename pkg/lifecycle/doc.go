// Package lifecycle wraps a deployment plugin in the nine release lifecycle
// hooks and gates its publish step.
//
// An Orchestrator is created per release run. verifyConditions parses the
// configuration and resolves the plugin; publish asks the gate whether the
// version is already deployed and skips the plugin when it is; after a publish
// that the gate cannot confirm, the release tag is deleted and the release fails.
// addChannel, success and fail are skipped when publish was.
package lifecycle
