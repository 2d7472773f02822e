package git_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/git"
	"github.com/arthur-debert/precheck/pkg/testutil"
)

// setupRepos creates a bare "origin" and a clone-like local repository with one
// commit tagged with each of tags, pushed to origin.
func setupRepos(t *testing.T, tags ...string) (local, origin *gogit.Repository, localDir string) {
	t.Helper()

	originDir := filepath.Join(t.TempDir(), "origin.git")
	origin, err := gogit.PlainInit(originDir, true)
	require.NoError(t, err)

	localDir = t.TempDir()
	local, err = gogit.PlainInit(localDir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(localDir, "README.md"), []byte("# app\n"), 0644))
	wt, err := local.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("README.md")
	require.NoError(t, err)
	head, err := wt.Commit("initial", &gogit.CommitOptions{
		Author: &object.Signature{Name: "Release Bot", Email: "bot@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	for _, tag := range tags {
		_, err = local.CreateTag(tag, head, nil)
		require.NoError(t, err)
	}

	_, err = local.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{originDir}})
	require.NoError(t, err)
	err = local.Push(&gogit.PushOptions{
		RemoteName: "origin",
		RefSpecs:   []config.RefSpec{"refs/heads/*:refs/heads/*", "refs/tags/*:refs/tags/*"},
	})
	require.NoError(t, err)

	return local, origin, localDir
}

func TestRepositoryDeleter_DeleteTag(t *testing.T) {
	local, origin, dir := setupRepos(t, "v1.0.0", "v0.9.0")
	rc := testutil.DefaultContext(nil)
	rc.Cwd = dir

	err := git.NewRepositoryDeleter().DeleteTag(context.Background(), "v1.0.0", rc)
	require.NoError(t, err)

	_, err = origin.Tag("v1.0.0")
	assert.ErrorIs(t, err, gogit.ErrTagNotFound)
	_, err = local.Tag("v1.0.0")
	assert.ErrorIs(t, err, gogit.ErrTagNotFound)

	_, err = origin.Tag("v0.9.0")
	assert.NoError(t, err, "other tags are untouched")
}

func TestRepositoryDeleter_MissingTagIsTolerated(t *testing.T) {
	_, _, dir := setupRepos(t)

	deleter := &git.RepositoryDeleter{Dir: dir}
	err := deleter.DeleteTag(context.Background(), "v3.0.0", testutil.DefaultContext(nil))

	assert.NoError(t, err)
}

func TestRepositoryDeleter_LocalOnlyTag(t *testing.T) {
	local, _, dir := setupRepos(t)
	head, err := local.Head()
	require.NoError(t, err)
	_, err = local.CreateTag("v4.0.0", head.Hash(), nil)
	require.NoError(t, err)

	err = (&git.RepositoryDeleter{Dir: dir}).DeleteTag(context.Background(), "v4.0.0", testutil.DefaultContext(nil))
	require.NoError(t, err)

	_, err = local.Reference(plumbing.NewTagReferenceName("v4.0.0"), false)
	assert.Error(t, err)
}

func TestRepositoryDeleter_Errors(t *testing.T) {
	t.Run("not a repository", func(t *testing.T) {
		err := (&git.RepositoryDeleter{Dir: t.TempDir()}).DeleteTag(context.Background(), "v1.0.0", testutil.DefaultContext(nil))
		assert.True(t, errors.IsErrorCode(err, errors.ErrTagDelete))
	})

	t.Run("unknown remote", func(t *testing.T) {
		_, _, dir := setupRepos(t, "v1.0.0")
		deleter := &git.RepositoryDeleter{Dir: dir, Remote: "upstream"}
		err := deleter.DeleteTag(context.Background(), "v1.0.0", testutil.DefaultContext(nil))
		assert.True(t, errors.IsErrorCode(err, errors.ErrTagDelete))
		assert.Equal(t, "upstream", errors.GetErrorDetails(err)["remote"])
	})
}
