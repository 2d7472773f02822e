// Package registry provides a generic, thread-safe name to item registry.
// Packages register items from init(); consumers that must not observe later
// registrations take a Snapshot.
package registry
