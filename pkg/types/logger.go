package types

// Logger is the logging capability the release orchestrator hands to every hook.
type Logger interface {
	Log(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// ScopedLogger is a Logger that prefixes its lines with a hierarchy of scope names.
// Scope must return a new logger and leave the receiver untouched.
type ScopedLogger interface {
	Logger

	// Scope returns a logger whose scope is exactly names.
	Scope(names ...string) Logger

	// ScopeNames returns the scope names currently applied to this logger.
	ScopeNames() []string
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Log(string, ...interface{})   {}
func (NopLogger) Error(string, ...interface{}) {}
