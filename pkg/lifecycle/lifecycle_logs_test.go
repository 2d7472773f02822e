package lifecycle_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/precheck/pkg/testutil"
	"github.com/arthur-debert/precheck/pkg/types"
)

// chattyPlugin logs from the hooks a host would see output from.
func chattyPlugin() *testutil.MockPlugin {
	plugin := testutil.NewMockPlugin()
	say := func(msg string) func(mock.Arguments) {
		return func(args mock.Arguments) {
			args.Get(2).(*types.ReleaseContext).Log().Log(msg)
		}
	}
	plugin.On("Hook", types.HookPublish, mock.Anything, mock.Anything).Run(say("running publish")).Return(nil).Maybe()
	plugin.On("Hook", types.HookAddChannel, mock.Anything, mock.Anything).Run(say("running add channel")).Return(nil).Maybe()
	plugin.On("Hook", types.HookSuccess, mock.Anything, mock.Anything).Run(say("running success")).Return(nil).Maybe()
	return plugin.AllowAll()
}

// runAll calls every hook in order and returns the first error, which stops
// the run the way the host does.
func runAll(t *testing.T, f *fixture, raw map[string]interface{}) error {
	t.Helper()
	for _, hook := range types.AllHooks() {
		if err := f.orchestrator.Invoke(context.Background(), hook, raw, f.rc); err != nil {
			return err
		}
	}
	return nil
}

func TestFullLifecycleLogs_NotSkipped(t *testing.T) {
	f := newFixture(t, chattyPlugin(), testutil.DeployedVersions())

	err := runAll(t, f, map[string]interface{}{
		"deploy_plugin":       pluginName,
		"should_skip_cmd":     `echo "run a deploy!" && false`,
		"check_after_publish": false,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"[semantic-release] › Running verifyConditions for deployment plugin: @semantic-release/npm",
		"[semantic-release] › Running analyzeCommits for deployment plugin: @semantic-release/npm",
		"[semantic-release] › Running verifyRelease for deployment plugin: @semantic-release/npm",
		"[semantic-release] › Running generateNotes for deployment plugin: @semantic-release/npm",
		"[semantic-release] › Running prepare for deployment plugin: @semantic-release/npm",
		`[semantic-release] › Running command: 'echo "run a deploy!" && false'... (Output of command will be displayed below)`,
		"[semantic-release] [@semantic-release/npm] › run a deploy!",
		"[semantic-release] › Command was not successful (did not return exit code 0).",
		"[semantic-release] › The plugin: @semantic-release/npm will continue to run as normal.",
		"[semantic-release] › Running publish for deployment plugin: @semantic-release/npm",
		"[semantic-release] [@semantic-release/npm] › running publish",
		"[semantic-release] › Running addChannel for deployment plugin: @semantic-release/npm",
		"[semantic-release] [@semantic-release/npm] › running add channel",
		"[semantic-release] › Running success for deployment plugin: @semantic-release/npm",
		"[semantic-release] [@semantic-release/npm] › running success",
		"[semantic-release] › Running fail for deployment plugin: @semantic-release/npm",
	}, f.logger.Rendered())
}

func TestFullLifecycleLogs_PublishThrows(t *testing.T) {
	plugin := testutil.NewMockPlugin()
	plugin.On("Hook", types.HookPublish, mock.Anything, mock.Anything).Return(stderrors.New("publish failed"))
	plugin.AllowAll()
	f := newFixture(t, plugin, testutil.DeployedVersions())
	f.tags.On("DeleteTag", "v1.0.0").Return(nil).Once()

	err := runAll(t, f, map[string]interface{}{
		"deploy_plugin":       pluginName,
		"check_after_publish": false,
	})

	require.EqualError(t, err, "publish failed")
	assert.Equal(t, []string{
		"[semantic-release] › Running verifyConditions for deployment plugin: @semantic-release/npm",
		"[semantic-release] › Running analyzeCommits for deployment plugin: @semantic-release/npm",
		"[semantic-release] › Running verifyRelease for deployment plugin: @semantic-release/npm",
		"[semantic-release] › Running generateNotes for deployment plugin: @semantic-release/npm",
		"[semantic-release] › Running prepare for deployment plugin: @semantic-release/npm",
		"[semantic-release] › The plugin: @semantic-release/npm will continue to run as normal.",
		"[semantic-release] › Running publish for deployment plugin: @semantic-release/npm",
	}, f.logger.Rendered())
	f.tags.AssertExpectations(t)
}

func TestFullLifecycleLogs_Skipped(t *testing.T) {
	plugin := chattyPlugin()
	f := newFixture(t, plugin, testutil.DeployedVersions())

	err := runAll(t, f, map[string]interface{}{
		"deploy_plugin":   pluginName,
		"should_skip_cmd": `echo "skip a deploy" && true`,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"[semantic-release] › Running verifyConditions for deployment plugin: @semantic-release/npm",
		"[semantic-release] › Running analyzeCommits for deployment plugin: @semantic-release/npm",
		"[semantic-release] › Running verifyRelease for deployment plugin: @semantic-release/npm",
		"[semantic-release] › Running generateNotes for deployment plugin: @semantic-release/npm",
		"[semantic-release] › Running prepare for deployment plugin: @semantic-release/npm",
		`[semantic-release] › Running command: 'echo "skip a deploy" && true'... (Output of command will be displayed below)`,
		"[semantic-release] [@semantic-release/npm] › skip a deploy",
		"[semantic-release] › Command was successful (return exit code 0).",
		"[semantic-release] › The plugin: @semantic-release/npm will be skipped for version 1.0.0.",
		"[semantic-release] › Skipping addChannel for deploy plugin @semantic-release/npm because publish was skipped.",
		"[semantic-release] › Skipping success for deploy plugin @semantic-release/npm because publish was skipped.",
		"[semantic-release] › Skipping fail for deploy plugin @semantic-release/npm because publish was skipped.",
	}, f.logger.Rendered())
	plugin.AssertNotCalled(t, "Hook", types.HookPublish, mock.Anything, mock.Anything)
}

func TestFullLifecycleLogs_PostPublishCheckFails(t *testing.T) {
	f := newFixture(t, chattyPlugin(), testutil.DeployedVersions())
	testutil.WithVersion(f.rc, "99.99.99")
	f.tags.On("DeleteTag", "v99.99.99").Return(nil).Once()

	err := runAll(t, f, reactConfig)

	require.Error(t, err)
	assert.Equal(t, []string{
		"Checking if version 99.99.99 of package react is already deployed to npm.",
		"Version 99.99.99 of package react is not yet deployed to npm.",
		"The plugin: @semantic-release/npm will continue to run as normal.",
		"Running publish for deployment plugin: @semantic-release/npm",
		"running publish",
		"Verifying that version 99.99.99 was deployed by the plugin: @semantic-release/npm.",
		"Checking if version 99.99.99 of package react is already deployed to npm.",
		"Version 99.99.99 of package react is not yet deployed to npm.",
		"The plugin: @semantic-release/npm reported a successful publish, but version 99.99.99 could not be found.",
	}, f.logger.Messages()[5:])
	assert.Equal(t, []string{
		"The plugin: @semantic-release/npm reported a successful publish, but version 99.99.99 could not be found.",
	}, f.logger.MessagesAt("error"))
}
