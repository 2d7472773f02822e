// Package git deletes release tags when a publish has to be rolled back.
package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/logging"
	"github.com/arthur-debert/precheck/pkg/shell"
	"github.com/arthur-debert/precheck/pkg/types"
)

// DefaultRemote is the remote tags are deleted from when none is configured.
const DefaultRemote = "origin"

// TagDeleter removes a release tag.
type TagDeleter interface {
	DeleteTag(ctx context.Context, tag string, rc *types.ReleaseContext) error
}

// CommandRunner runs a shell command.
type CommandRunner interface {
	Run(ctx context.Context, cmd shell.Command, logger types.Logger) error
}

// CommandDeleter deletes the tag on the remote with the git CLI:
// git push <remote> --delete <tag>.
type CommandDeleter struct {
	Runner CommandRunner
	Remote string
}

// NewCommandDeleter creates a CommandDeleter for the default remote.
func NewCommandDeleter(runner CommandRunner) *CommandDeleter {
	return &CommandDeleter{Runner: runner, Remote: DefaultRemote}
}

// DeleteTag implements TagDeleter. The command runs in rc.Cwd with rc.Env.
func (d *CommandDeleter) DeleteTag(ctx context.Context, tag string, rc *types.ReleaseContext) error {
	remote := d.Remote
	if remote == "" {
		remote = DefaultRemote
	}

	line := fmt.Sprintf("git push %s --delete %s", shellQuote(remote), shellQuote(tag))
	logger := logging.GetLogger("git")
	logger.Info().Str("tag", tag).Str("remote", remote).Msg("Deleting release tag")
	rc.Log().Log("Deleting git tag %s from %s.", tag, remote)

	if err := d.Runner.Run(ctx, shell.Command{Line: line, Env: rc.Env, Dir: rc.Cwd}, rc.Log()); err != nil {
		return tagDeleteError(err, tag, remote)
	}
	return nil
}

func tagDeleteError(err error, tag, remote string) error {
	return errors.Wrapf(err, errors.ErrTagDelete, "failed to delete tag %s from %s", tag, remote).
		WithDetail(errors.DetailTag, tag).
		WithDetail("remote", remote)
}

// shellQuote single-quotes s unless it only has characters that are safe unquoted.
func shellQuote(s string) string {
	safe := s != ""
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' ||
			r == '.' || r == '-' || r == '_' || r == '/' || r == '@' || r == '+') {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
