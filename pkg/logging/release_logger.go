package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/precheck/pkg/types"
	"github.com/rs/zerolog"
)

// ReleaseLogger is the host logger handed to lifecycle hooks. It implements
// types.ScopedLogger on top of zerolog and prints lines as
// "[scope] [scope] › message". Log lines are emitted without a level so they
// show at every verbosity; Error lines use the error level.
type ReleaseLogger struct {
	logger zerolog.Logger
	scopes []string
}

// NewReleaseLogger creates a release logger writing to logger with the given scopes.
func NewReleaseLogger(logger zerolog.Logger, scopes ...string) *ReleaseLogger {
	return &ReleaseLogger{
		logger: logger,
		scopes: append([]string(nil), scopes...),
	}
}

// NewConsoleReleaseLogger creates a release logger printing bare lines to w,
// the way a release host prints plugin output.
func NewConsoleReleaseLogger(w io.Writer, scopes ...string) *ReleaseLogger {
	console := zerolog.ConsoleWriter{
		Out:           w,
		NoColor:       true,
		PartsOrder:    []string{zerolog.MessageFieldName},
		FieldsExclude: []string{"scope"},
	}
	return NewReleaseLogger(zerolog.New(console), scopes...)
}

// Log writes an informational line.
func (r *ReleaseLogger) Log(format string, args ...interface{}) {
	r.logger.Log().Strs("scope", r.scopes).Msg(r.prefix() + fmt.Sprintf(format, args...))
}

// Error writes an error line.
func (r *ReleaseLogger) Error(format string, args ...interface{}) {
	r.logger.Error().Strs("scope", r.scopes).Msg(r.prefix() + fmt.Sprintf(format, args...))
}

// Scope returns a new logger with exactly the given scopes. The receiver is unchanged.
func (r *ReleaseLogger) Scope(names ...string) types.Logger {
	return NewReleaseLogger(r.logger, names...)
}

// ScopeNames returns a copy of the logger's scopes.
func (r *ReleaseLogger) ScopeNames() []string {
	return append([]string(nil), r.scopes...)
}

func (r *ReleaseLogger) prefix() string {
	var b strings.Builder
	for _, s := range r.scopes {
		b.WriteString("[")
		b.WriteString(s)
		b.WriteString("] ")
	}
	b.WriteString("› ")
	return b.String()
}
