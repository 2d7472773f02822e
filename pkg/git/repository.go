package git

import (
	"context"
	"errors"
	"os"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	perrors "github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/logging"
	"github.com/arthur-debert/precheck/pkg/types"
)

// RepositoryDeleter deletes the tag with go-git, without a git binary. It
// pushes the deletion to the remote and then removes the local tag. A tag
// missing on either side is not an error.
type RepositoryDeleter struct {
	// Dir is the repository path; empty means rc.Cwd.
	Dir    string
	Remote string
	// Auth overrides the credentials derived from GITHUB_TOKEN, GITLAB_TOKEN or GIT_TOKEN.
	Auth transport.AuthMethod
}

// NewRepositoryDeleter creates a RepositoryDeleter for the default remote.
func NewRepositoryDeleter() *RepositoryDeleter {
	return &RepositoryDeleter{Remote: DefaultRemote}
}

// DeleteTag implements TagDeleter.
func (d *RepositoryDeleter) DeleteTag(ctx context.Context, tag string, rc *types.ReleaseContext) error {
	logger := logging.GetLogger("git")

	remoteName := d.Remote
	if remoteName == "" {
		remoteName = DefaultRemote
	}
	dir := d.Dir
	if dir == "" {
		dir = rc.Cwd
	}
	if dir == "" {
		dir = "."
	}

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return tagDeleteError(err, tag, remoteName)
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return tagDeleteError(err, tag, remoteName)
	}

	auth := d.Auth
	if auth == nil {
		auth = tokenAuth(remote.Config().URLs, rc.Env)
	}

	rc.Log().Log("Deleting git tag %s from %s.", tag, remoteName)
	logger.Info().Str("tag", tag).Str("remote", remoteName).Str("dir", dir).Msg("Deleting release tag")

	err = repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{config.RefSpec(":refs/tags/" + tag)},
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, gogit.NoErrAlreadyUpToDate) {
		return tagDeleteError(err, tag, remoteName)
	}

	if err := repo.DeleteTag(tag); err != nil && !errors.Is(err, gogit.ErrTagNotFound) {
		return perrors.Wrapf(err, perrors.ErrTagDelete, "failed to delete local tag %s", tag).
			WithDetail(perrors.DetailTag, tag)
	}

	logger.Debug().Str("tag", tag).Msg("Release tag deleted")
	return nil
}

// tokenAuth returns basic auth for HTTP remotes when a token is set in env or
// the process environment.
func tokenAuth(urls []string, env map[string]string) transport.AuthMethod {
	if len(urls) == 0 || !strings.HasPrefix(urls[0], "http") {
		return nil
	}

	lookup := func(key string) string {
		if v := env[key]; v != "" {
			return v
		}
		return os.Getenv(key)
	}

	for _, cred := range []struct{ env, user string }{
		{"GITHUB_TOKEN", "x-access-token"},
		{"GITLAB_TOKEN", "gitlab-ci-token"},
		{"GIT_TOKEN", "git"},
	} {
		if token := lookup(cred.env); token != "" {
			return &http.BasicAuth{Username: cred.user, Password: token}
		}
	}
	return nil
}
