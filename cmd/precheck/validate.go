package precheck

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/precheck/pkg/lifecycle"
	"github.com/arthur-debert/precheck/pkg/plugins"
	"github.com/arthur-debert/precheck/pkg/ui/report"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		Short:   MsgValidateShort,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			doc, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cfg, err := doc.Parse()
			if err != nil {
				return err
			}
			if _, err := lifecycle.ResolvePlugin(cmd.Context(), plugins.NewResolver(), cfg.DeployPlugin.Name); err != nil {
				return err
			}

			result := &report.Validation{
				Path:               doc.Path,
				Plugin:             cfg.DeployPlugin.Name,
				SkipCommand:        cfg.SkipCommand,
				VerifyAfterPublish: cfg.VerifyAfterPublish,
				RequireGate:        doc.Policy.RequireGate,
			}
			if check := cfg.RegistryCheck; check != nil {
				result.PackageName = check.PackageName
				result.PackageManager = check.PackageManager
			}
			return renderer.RenderResult(result)
		},
	}
}
