// Package types defines the core types and interfaces used throughout precheck.
// This includes the lifecycle Hook names, the ReleaseContext shared by every hook,
// the Logger capabilities offered by the host orchestrator, and the Plugin
// capability set implemented by wrapped deployment plugins.
package types
