package types_test

import (
	"testing"

	"github.com/arthur-debert/precheck/pkg/testutil"
	"github.com/arthur-debert/precheck/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeContext_AppendsPluginToExistingScopes(t *testing.T) {
	logger := testutil.NewRecordingLogger("semantic-release")
	rc := testutil.DefaultContext(logger)

	scoped := types.ScopeContext(rc, "@semantic-release/npm")
	scoped.Logger.Log("running publish")

	scopedLogger, ok := scoped.Logger.(types.ScopedLogger)
	require.True(t, ok)
	assert.Equal(t, []string{"semantic-release", "@semantic-release/npm"}, scopedLogger.ScopeNames())
	assert.Equal(t, []string{"[semantic-release] [@semantic-release/npm] › running publish"}, logger.Rendered())
}

func TestScopeContext_DoesNotMutateOriginal(t *testing.T) {
	logger := testutil.NewRecordingLogger("semantic-release")
	rc := testutil.DefaultContext(logger)

	scoped := types.ScopeContext(rc, "plugin")
	scoped.NextRelease.Version = "9.9.9"

	assert.Same(t, logger, rc.Logger)
	assert.Equal(t, []string{"semantic-release"}, logger.ScopeNames())
	assert.Equal(t, "1.0.0", rc.NextRelease.Version)
	assert.NotSame(t, rc, scoped)

	rc.Logger.Log("from the adapter")
	assert.Equal(t, []string{"[semantic-release] › from the adapter"}, logger.Rendered())
}

func TestScopeContext_NestsRepeatedly(t *testing.T) {
	logger := testutil.NewRecordingLogger("semantic-release")
	rc := testutil.DefaultContext(logger)

	once := types.ScopeContext(rc, "outer")
	twice := types.ScopeContext(once, "inner")

	assert.Equal(t, []string{"semantic-release", "outer", "inner"}, twice.Logger.(types.ScopedLogger).ScopeNames())
}

type plainLogger struct{ lines []string }

func (p *plainLogger) Log(format string, args ...interface{})   { p.lines = append(p.lines, format) }
func (p *plainLogger) Error(format string, args ...interface{}) { p.lines = append(p.lines, format) }

func TestScopeContext_UnscopedLoggerIsKept(t *testing.T) {
	logger := &plainLogger{}
	rc := testutil.DefaultContext(logger)

	scoped := types.ScopeContext(rc, "plugin")

	assert.Same(t, logger, scoped.Logger)
}

func TestReleaseContext_TemplateData(t *testing.T) {
	rc := testutil.DefaultContext(nil)
	rc.Env["REGISTRY"] = "https://registry.npmjs.org"

	data := rc.TemplateData()

	next := data["nextRelease"].(map[string]interface{})
	assert.Equal(t, "1.0.0", next["version"])
	assert.Equal(t, "v1.0.0", next["gitTag"])
	assert.Equal(t, "https://registry.npmjs.org", data["env"].(map[string]interface{})["REGISTRY"])
	assert.Equal(t, "main", data["branch"].(map[string]interface{})["name"])
}

func TestReleaseContext_LogWithoutLogger(t *testing.T) {
	var rc *types.ReleaseContext
	assert.NotPanics(t, func() { rc.Log().Log("nothing") })
}
