package git

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/stretchr/testify/assert"
)

func TestTokenAuth(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITLAB_TOKEN", "")
	t.Setenv("GIT_TOKEN", "")

	assert.Nil(t, tokenAuth([]string{"/tmp/origin.git"}, map[string]string{"GITHUB_TOKEN": "gh"}))
	assert.Nil(t, tokenAuth([]string{"https://github.com/org/app.git"}, nil))

	auth := tokenAuth([]string{"https://github.com/org/app.git"}, map[string]string{"GITHUB_TOKEN": "gh"})
	assert.Equal(t, &http.BasicAuth{Username: "x-access-token", Password: "gh"}, auth)

	t.Setenv("GIT_TOKEN", "generic")
	auth = tokenAuth([]string{"https://git.example.com/app.git"}, nil)
	assert.Equal(t, &http.BasicAuth{Username: "git", Password: "generic"}, auth)
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "v1.0.0", shellQuote("v1.0.0"))
	assert.Equal(t, "release/1.0", shellQuote("release/1.0"))
	assert.Equal(t, "'a b'", shellQuote("a b"))
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
	assert.Equal(t, "''", shellQuote(""))
}
