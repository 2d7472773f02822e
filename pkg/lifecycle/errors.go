package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/plugins"
	"github.com/arthur-debert/precheck/pkg/types"
)

// ResolvePlugin resolves name, turning a missing plugin into a
// PLUGIN_NOT_INSTALLED error that lists what is installed when the resolver
// can tell.
func ResolvePlugin(ctx context.Context, resolver plugins.Resolver, name string) (types.Plugin, error) {
	plugin, ok := resolver.Resolve(ctx, name)
	if ok {
		return plugin, nil
	}
	var installed []string
	if lister, ok := resolver.(interface{ Names() []string }); ok {
		installed = lister.Names()
	}
	return nil, pluginNotInstalledError(name, installed)
}

func pluginNotInstalledError(name string, installed []string) error {
	available := "none"
	if len(installed) > 0 {
		available = "`" + strings.Join(installed, "`, `") + "`"
	}

	remediation := fmt.Sprintf(`## Deployment plugin not installed

The deployment plugin `+"`%s`"+` is not installed in this precheck binary.

Plugins are linked in at build time. Add the plugin package to your build
with a blank import and rebuild:

`+"```go"+`
import _ "example.com/your/plugins/npm"
`+"```"+`

Then check that `+"`deploy_plugin`"+` matches the name the plugin registers.

Installed plugins: %s
`, name, available)

	return errors.Newf(errors.ErrPluginNotInstalled,
		"deployment plugin %s is not installed. Install the plugin and make sure deploy_plugin names it", name).
		WithDetail(errors.DetailPlugin, name).
		WithDetail(errors.DetailRemediation, remediation)
}

func lifecycleOrderError(hook types.Hook) error {
	return errors.Newf(errors.ErrLifecycleOrder, "%s called before verifyConditions completed", hook).
		WithDetail(errors.DetailHook, hook.String())
}

func delegateError(err error, plugin string, hook types.Hook) error {
	return errors.Wrapf(err, errors.ErrDelegateExecute, "deployment plugin %s failed in %s", plugin, hook).
		WithDetail(errors.DetailPlugin, plugin).
		WithDetail(errors.DetailHook, hook.String())
}

// postPublishError reports that the gate could not confirm a publish the
// plugin reported as successful. cause is the gate's own error, if any.
func postPublishError(cause error, plugin, registry, version, tag string) error {
	msg := fmt.Sprintf("deployment plugin %s completed publish without error, but version %s was not found in %s afterwards",
		plugin, version, registry)

	remediation := fmt.Sprintf(`## Publish could not be verified

`+"`%s`"+` returned from publish without an error, yet the check against
`+"`%s`"+` did not find version `+"`%s`"+`. The release tag `+"`%s`"+`
has been removed so the release can be retried.

- Check the plugin's output above for a silent failure.
- If the registry is slow to update, set `+"`check_after_publish = false`"+`.
`, plugin, registry, version, tag)

	var e *errors.Error
	if cause != nil {
		e = errors.Wrap(cause, errors.ErrPostPublishVerify, msg)
	} else {
		e = errors.New(errors.ErrPostPublishVerify, msg)
	}
	return e.
		WithDetail(errors.DetailPlugin, plugin).
		WithDetail(errors.DetailRegistry, registry).
		WithDetail(errors.DetailVersion, version).
		WithDetail(errors.DetailTag, tag).
		WithDetail(errors.DetailRemediation, remediation)
}
