// Package shell runs gate commands with an embedded POSIX shell interpreter,
// so skip commands behave the same on every platform precheck runs on.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	perrors "github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/logging"
	"github.com/arthur-debert/precheck/pkg/types"
)

// Command is a shell command line and the environment it runs in.
type Command struct {
	Line string
	// Env is layered over the process environment.
	Env map[string]string
	// Dir is the working directory; empty means the current one.
	Dir string
}

// Runner executes commands synchronously.
type Runner struct {
	inheritEnv bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithoutProcessEnv runs commands with only Command.Env set.
func WithoutProcessEnv() RunnerOption {
	return func(r *Runner) {
		r.inheritEnv = false
	}
}

// NewRunner creates a runner that inherits the process environment.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{inheritEnv: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cmd and returns nil when it exits 0. Standard output is written
// to logger.Log and standard error to logger.Error, line by line. A parse
// failure, a non-zero exit or a start failure is an ErrCommandExecute error
// carrying the exit code and the captured output.
func (r *Runner) Run(ctx context.Context, cmd Command, logger types.Logger) error {
	zlog := logging.GetLogger("shell")
	if logger == nil {
		logger = types.NopLogger{}
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(cmd.Line), "")
	if err != nil {
		return perrors.Wrap(err, perrors.ErrCommandExecute, "failed to parse command").
			WithDetail(perrors.DetailCommand, cmd.Line).
			WithDetail(perrors.DetailExitCode, -1)
	}

	var stdout, stderr bytes.Buffer
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(r.environ(cmd.Env)...)),
		interp.StdIO(nil, &stdout, &stderr),
	}
	if cmd.Dir != "" {
		opts = append(opts, interp.Dir(cmd.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return perrors.Wrap(err, perrors.ErrCommandExecute, "failed to create interpreter").
			WithDetail(perrors.DetailCommand, cmd.Line).
			WithDetail(perrors.DetailExitCode, -1)
	}

	zlog.Debug().Str("command", cmd.Line).Str("dir", cmd.Dir).Msg("Executing command")

	runErr := runner.Run(ctx, prog)

	logLines(stdout.String(), logger.Log)
	logLines(stderr.String(), logger.Error)

	if runErr == nil {
		zlog.Debug().Str("command", cmd.Line).Msg("Command completed")
		return nil
	}

	exitCode := -1
	var exitStatus interp.ExitStatus
	if errors.As(runErr, &exitStatus) {
		exitCode = int(exitStatus)
	}

	zlog.Debug().
		Str("command", cmd.Line).
		Int("exitCode", exitCode).
		Err(runErr).
		Msg("Command failed")

	return perrors.Wrapf(runErr, perrors.ErrCommandExecute, "command %q failed", cmd.Line).
		WithDetail(perrors.DetailCommand, cmd.Line).
		WithDetail(perrors.DetailExitCode, exitCode).
		WithDetail(perrors.DetailOutput, strings.TrimSpace(stdout.String()+stderr.String()))
}

func (r *Runner) environ(overrides map[string]string) []string {
	merged := map[string]string{}
	if r.inheritEnv {
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				merged[k] = v
			}
		}
	}
	for k, v := range overrides {
		merged[k] = v
	}

	pairs := make([]string, 0, len(merged))
	for k, v := range merged {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}

func logLines(output string, log func(format string, args ...interface{})) {
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return
	}
	for _, line := range strings.Split(output, "\n") {
		log("%s", line)
	}
}
