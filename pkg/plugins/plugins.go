// Package plugins holds the deployment plugins compiled into the binary and
// resolves them by name.
//
// A plugin package registers itself from init():
//
//	func init() {
//		plugins.MustRegister("@semantic-release/npm", types.FromMethods(&npmPlugin{}))
//	}
//
// and is linked in with a blank import. Everything registered by the time a
// Resolver is created is "installed"; nothing can be installed afterwards.
package plugins

import (
	"context"
	"strings"

	"github.com/arthur-debert/precheck/pkg/logging"
	"github.com/arthur-debert/precheck/pkg/registry"
	"github.com/arthur-debert/precheck/pkg/types"
)

var installed = registry.New[types.Plugin]()

// Register adds a plugin to the process-wide set of installed plugins.
func Register(name string, p types.Plugin) error {
	return installed.Register(name, p)
}

// MustRegister registers a plugin and panics if the name is taken or empty.
func MustRegister(name string, p types.Plugin) {
	registry.MustRegister(installed, name, p)
}

// Installed lists the names of the installed plugins in sorted order.
func Installed() []string {
	return installed.List()
}

// Resolver finds installed deployment plugins by name.
type Resolver interface {
	Resolve(ctx context.Context, name string) (types.Plugin, bool)
}

// RegistryResolver resolves plugins from a snapshot of a registry.
type RegistryResolver struct {
	plugins registry.Registry[types.Plugin]
}

// NewResolver snapshots the installed plugins.
func NewResolver() *RegistryResolver {
	return NewRegistryResolver(installed)
}

// NewRegistryResolver snapshots reg.
func NewRegistryResolver(reg registry.Registry[types.Plugin]) *RegistryResolver {
	return &RegistryResolver{plugins: reg.Snapshot()}
}

// Resolve implements Resolver. A missing plugin is reported as false, never
// as an error, so the caller can explain how to install it.
func (r *RegistryResolver) Resolve(ctx context.Context, name string) (types.Plugin, bool) {
	logger := logging.GetLogger("plugins")

	p, ok := r.plugins.Lookup(name)
	if !ok || p == nil {
		logger.Debug().Str("plugin", name).Strs("installed", r.plugins.List()).Msg("Plugin not installed")
		return nil, false
	}

	logger.Debug().Str("plugin", name).Str("hooks", hookList(p)).Msg("Plugin resolved")
	return p, true
}

// Names lists the plugins this resolver can resolve.
func (r *RegistryResolver) Names() []string {
	return r.plugins.List()
}

func hookList(p types.Plugin) string {
	hooks := types.Hooks(p)
	names := make([]string, 0, len(hooks))
	for _, h := range hooks {
		names = append(names, h.String())
	}
	return strings.Join(names, ",")
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, name string) (types.Plugin, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, name string) (types.Plugin, bool) {
	return f(ctx, name)
}
