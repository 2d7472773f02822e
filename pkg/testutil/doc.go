// Package testutil provides utilities for testing precheck components.
//
// Key components:
//   - RecordingLogger: a types.ScopedLogger that records every line with its scopes
//   - MockPlugin: a testify mock implementing any subset of the lifecycle hooks
//   - MockTagDeleter: a testify mock for the tag deletion collaborator
//   - MockLookup, DeployedVersions: registry lookups answering from a fixed set of versions
//   - MockRunner: a command runner matched on the rendered command line
//   - DefaultContext: a fully populated ReleaseContext for version 1.0.0
//   - CreateFile, ReadFile, Chdir: config and fixture files in temp directories
//
// Usage guidelines:
//   - Construct a fresh fixture per test; nothing here holds global state
//   - All test data should be defined inline, not in external files
package testutil
