package precheck

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/precheck/pkg/plugins"
	"github.com/arthur-debert/precheck/pkg/types"
	"github.com/arthur-debert/precheck/pkg/ui/report"
)

func newPluginsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "plugins",
		Short:   MsgPluginsShort,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}

			resolver := plugins.NewResolver()
			result := &report.Plugins{Plugins: []report.Plugin{}}
			for _, name := range resolver.Names() {
				p, ok := resolver.Resolve(cmd.Context(), name)
				if !ok {
					continue
				}
				info := report.Plugin{Name: name, Hooks: []string{}}
				for _, h := range types.Hooks(p) {
					info.Hooks = append(info.Hooks, h.String())
				}
				result.Plugins = append(result.Plugins, info)
			}
			return renderer.RenderResult(result)
		},
	}
}
