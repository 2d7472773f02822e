package testutil

import (
	"fmt"
	"strings"
	"sync"

	"github.com/arthur-debert/precheck/pkg/types"
)

// LogLine is one line written to a RecordingLogger.
type LogLine struct {
	Level   string
	Scopes  []string
	Message string
}

// String renders the line the way the host logger prints it.
func (l LogLine) String() string {
	var b strings.Builder
	for _, s := range l.Scopes {
		b.WriteString("[" + s + "] ")
	}
	b.WriteString("› ")
	b.WriteString(l.Message)
	return b.String()
}

type logSink struct {
	mu    sync.Mutex
	lines []LogLine
}

// RecordingLogger implements types.ScopedLogger. Loggers derived with Scope
// share the parent's sink, so a test sees the interleaving of all of them.
type RecordingLogger struct {
	sink   *logSink
	scopes []string
}

// NewRecordingLogger creates a logger with the given initial scopes.
func NewRecordingLogger(scopes ...string) *RecordingLogger {
	return &RecordingLogger{
		sink:   &logSink{},
		scopes: append([]string(nil), scopes...),
	}
}

func (l *RecordingLogger) Log(format string, args ...interface{}) {
	l.write("log", format, args...)
}

func (l *RecordingLogger) Error(format string, args ...interface{}) {
	l.write("error", format, args...)
}

// Scope returns a logger sharing this logger's sink with the given scopes.
func (l *RecordingLogger) Scope(names ...string) types.Logger {
	return &RecordingLogger{
		sink:   l.sink,
		scopes: append([]string(nil), names...),
	}
}

// ScopeNames returns a copy of the logger's scopes.
func (l *RecordingLogger) ScopeNames() []string {
	return append([]string(nil), l.scopes...)
}

// Lines returns every recorded line.
func (l *RecordingLogger) Lines() []LogLine {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return append([]LogLine(nil), l.sink.lines...)
}

// Rendered returns every recorded line rendered with its scopes.
func (l *RecordingLogger) Rendered() []string {
	lines := l.Lines()
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, line.String())
	}
	return out
}

// Messages returns the message text of every recorded line.
func (l *RecordingLogger) Messages() []string {
	lines := l.Lines()
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, line.Message)
	}
	return out
}

// MessagesAt returns the message text of the lines recorded at level ("log" or "error").
func (l *RecordingLogger) MessagesAt(level string) []string {
	var out []string
	for _, line := range l.Lines() {
		if line.Level == level {
			out = append(out, line.Message)
		}
	}
	return out
}

func (l *RecordingLogger) write(level, format string, args ...interface{}) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.lines = append(l.sink.lines, LogLine{
		Level:   level,
		Scopes:  append([]string(nil), l.scopes...),
		Message: fmt.Sprintf(format, args...),
	})
}
