package precheck_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/precheck/cmd/precheck"
	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/testutil"
	"github.com/arthur-debert/precheck/pkg/ui/report"

	_ "github.com/arthur-debert/precheck/pkg/plugins/exec"
)

const execConfig = `deploy_plugin:
  - "@semantic-release/exec"
  - publishCmd: echo published > published.txt
    failCmd: echo failed > failed.txt
should_skip_cmd: test -f released-${nextRelease.version}
check_after_publish: false
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := precheck.NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// workspace creates a temp dir holding config as .precheck.yaml and makes it
// the working directory.
func workspace(t *testing.T, config string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.CreateFile(t, dir, ".precheck.yaml", config)
	testutil.Chdir(t, dir)
	return dir
}

func decodeRun(t *testing.T, out string) report.Run {
	t.Helper()
	var run report.Run
	require.NoError(t, json.Unmarshal([]byte(out), &run))
	return run
}

func statuses(run report.Run) map[string]report.Status {
	out := make(map[string]report.Status, len(run.Hooks))
	for _, h := range run.Hooks {
		out[h.Hook] = h.Status
	}
	return out
}

func TestRoot_NoCommand(t *testing.T) {
	_, _, err := execute(t)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRoot_InvalidFormat(t *testing.T) {
	_, _, err := execute(t, "plugins", "--format", "xml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "precheck dev")
}

func TestCompletionCmd(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "precheck")

	_, _, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestGenConfigCmd(t *testing.T) {
	out, _, err := execute(t, "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, `deploy_plugin = "@semantic-release/npm"`)

	out, _, err = execute(t, "genconfig", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "deploy_plugin:")
	assert.Contains(t, out, "@semantic-release/npm")

	_, _, err = execute(t, "genconfig", "--format", "ini")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestGenConfigCmd_Write(t *testing.T) {
	dir := t.TempDir()
	testutil.Chdir(t, dir)

	out, _, err := execute(t, "genconfig", "-w")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote .precheck.toml")
	assert.FileExists(t, filepath.Join(dir, ".precheck.toml"))

	_, _, err = execute(t, "genconfig", "-w")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
}

func TestPluginsCmd(t *testing.T) {
	out, _, err := execute(t, "plugins", "--format", "json")
	require.NoError(t, err)

	var list report.Plugins
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.NotEmpty(t, list.Plugins)

	var found *report.Plugin
	for i := range list.Plugins {
		if list.Plugins[i].Name == "@semantic-release/exec" {
			found = &list.Plugins[i]
		}
	}
	require.NotNil(t, found)
	assert.Len(t, found.Hooks, 9)
}

func TestValidateCmd(t *testing.T) {
	workspace(t, execConfig)

	out, _, err := execute(t, "validate", "--format", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "Valid configuration:")
	assert.Contains(t, out, "deploy_plugin: @semantic-release/exec")
	assert.Contains(t, out, "should_skip_cmd: test -f released-${nextRelease.version}")
	assert.Contains(t, out, "check_after_publish: false")
}

func TestValidateCmd_PluginNotInstalled(t *testing.T) {
	workspace(t, "deploy_plugin: '@semantic-release/npm'\n")

	_, _, err := execute(t, "validate")

	assert.True(t, errors.IsErrorCode(err, errors.ErrPluginNotInstalled))
	assert.Contains(t, errors.Remediation(err), "@semantic-release/exec")
}

func TestValidateCmd_InvalidConfig(t *testing.T) {
	workspace(t, "should_skip_cmd: 'true'\n")

	_, _, err := execute(t, "validate")

	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestValidateCmd_NoConfig(t *testing.T) {
	testutil.Chdir(t, t.TempDir())

	_, _, err := execute(t, "validate")

	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	assert.Contains(t, errors.Remediation(err), "precheck genconfig")
}

func TestCheckCmd(t *testing.T) {
	dir := workspace(t, execConfig)
	testutil.CreateFile(t, dir, "released-2.0.0", "")

	out, _, err := execute(t, "check", "--version", "2.0.0", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Version 2.0.0 is already deployed (gate: test -f released-${nextRelease.version})")

	out, _, err = execute(t, "check", "--version", "2.1.0", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Version 2.1.0 is not deployed")
}

func TestCheckCmd_RequiresVersion(t *testing.T) {
	workspace(t, execConfig)

	_, _, err := execute(t, "check")

	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRunCmd_Publishes(t *testing.T) {
	dir := workspace(t, execConfig)

	out, stderr, err := execute(t, "run", "--version", "1.0.0", "--format", "json")

	require.NoError(t, err)
	run := decodeRun(t, out)
	assert.Equal(t, "@semantic-release/exec", run.Plugin)
	assert.Equal(t, "v1.0.0", run.Tag)
	assert.False(t, run.Skipped)
	assert.Equal(t, report.StatusSucceeded, statuses(run)["publish"])
	assert.Equal(t, report.StatusNotRun, statuses(run)["fail"])
	assert.Equal(t, "published\n", testutil.ReadFile(t, filepath.Join(dir, "published.txt")))

	assert.Contains(t, stderr, "[precheck] › Running publish for deployment plugin: @semantic-release/exec")
	assert.Contains(t, stderr, "[precheck] [@semantic-release/exec] › Call script echo published > published.txt")
}

func TestRunCmd_SkipsDeployedVersion(t *testing.T) {
	dir := workspace(t, execConfig)
	testutil.CreateFile(t, dir, "released-1.0.0", "")

	out, stderr, err := execute(t, "run", "--version", "1.0.0", "--format", "json")

	require.NoError(t, err)
	run := decodeRun(t, out)
	assert.True(t, run.Skipped)
	assert.Equal(t, "terminal", run.Phase)
	assert.Equal(t, report.StatusSkipped, statuses(run)["publish"])
	assert.Equal(t, report.StatusSkipped, statuses(run)["success"])
	assert.NoFileExists(t, filepath.Join(dir, "published.txt"))
	assert.Contains(t, stderr, "The plugin: @semantic-release/exec will be skipped for version 1.0.0.")
}

func TestRunCmd_PublishFailureRunsFail(t *testing.T) {
	dir := workspace(t, `deploy_plugin:
  - "@semantic-release/exec"
  - publishCmd: exit 3
    failCmd: echo failed > failed.txt
check_after_publish: false
`)

	out, _, err := execute(t, "run", "--version", "1.0.0", "--format", "json")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCommandExecute))
	run := decodeRun(t, out)
	assert.Equal(t, report.StatusFailed, statuses(run)["publish"])
	assert.Equal(t, report.StatusNotRun, statuses(run)["addChannel"])
	assert.Equal(t, report.StatusSucceeded, statuses(run)["fail"])
	assert.Equal(t, "terminal", run.Phase)
	assert.NotEmpty(t, run.Error)
	assert.Equal(t, "failed\n", testutil.ReadFile(t, filepath.Join(dir, "failed.txt")))
}

func TestRunCmd_UnknownTagDeleter(t *testing.T) {
	workspace(t, execConfig)

	_, _, err := execute(t, "run", "--version", "1.0.0", "--tag-deleter", "svn")

	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRunCmd_ContextFile(t *testing.T) {
	dir := workspace(t, execConfig)
	contextPath := testutil.CreateFile(t, dir, "release.yaml", "nextRelease:\n  version: 3.0.0\n")

	out, _, err := execute(t, "run", "--context", contextPath, "--config", filepath.Join(dir, ".precheck.yaml"), "--format", "json")

	require.NoError(t, err)
	run := decodeRun(t, out)
	assert.Equal(t, "3.0.0", run.Version)
	assert.Equal(t, "v3.0.0", run.Tag)
	_, statErr := os.Stat(filepath.Join(dir, "published.txt"))
	assert.NoError(t, statErr)
}
