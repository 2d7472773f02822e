package precheck

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/precheck/pkg/gate"
	"github.com/arthur-debert/precheck/pkg/ui/report"
)

func newCheckCmd(opts *options) *cobra.Command {
	var releaseVersion string

	cmd := &cobra.Command{
		Use:     "check",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Example: MsgCheckExample,
		GroupID: "release",
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
			rc, err := opts.releaseContext(releaseVersion, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			result := &report.Check{
				Plugin:  cfg.DeployPlugin.Name,
				Version: rc.NextRelease.Version,
				Gate:    cfg.GateName(),
			}
			if !cfg.HasGate() {
				result.Gate = "none"
				return renderer.RenderResult(result)
			}

			deployed, err := gate.NewChecker().IsAlreadyDeployed(cmd.Context(), rc, cfg)
			if err != nil {
				return err
			}
			result.Deployed = deployed
			return renderer.RenderResult(result)
		},
	}

	cmd.Flags().StringVar(&releaseVersion, "version", "", MsgFlagVersion)
	return cmd
}
