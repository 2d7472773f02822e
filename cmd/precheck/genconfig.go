package precheck

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/precheck/pkg/config"
	"github.com/arthur-debert/precheck/pkg/errors"
)

func newGenConfigCmd() *cobra.Command {
	var (
		format string
		write  bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Example: MsgGenConfigExample,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.GenerateConfigContent(format)
			if err != nil {
				return err
			}
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			path := ".precheck." + format
			if format == "yml" {
				path = ".precheck.yaml"
			}
			if _, err := os.Stat(path); err == nil {
				return errors.Newf(errors.ErrAlreadyExists, MsgErrConfigExists, path).WithDetail("path", path)
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrConfigLoad, "failed to write %s", path).WithDetail("path", path)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten+"\n", path)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", config.FormatTOML, MsgFlagGenFormat)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagGenWrite)
	return cmd
}
