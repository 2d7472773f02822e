package precheck

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/precheck/internal/version"
	"github.com/arthur-debert/precheck/pkg/config"
	"github.com/arthur-debert/precheck/pkg/errors"
	"github.com/arthur-debert/precheck/pkg/logging"
	"github.com/arthur-debert/precheck/pkg/types"
	"github.com/arthur-debert/precheck/pkg/ui"
)

// options are the persistent flags shared by every command.
type options struct {
	verbosity   int
	configPath  string
	contextPath string
	format      string
}

// NewRootCmd creates the precheck command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "precheck",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			_, err := ui.ParseFormat(opts.format)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVarP(&opts.configPath, "config", "c", "", MsgFlagConfig)
	flags.StringVar(&opts.contextPath, "context", "", MsgFlagContext)
	flags.StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "release", Title: "RELEASE:"})
	rootCmd.AddGroup(&cobra.Group{ID: "config", Title: "CONFIGURATION:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newValidateCmd(opts))
	rootCmd.AddCommand(newPluginsCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// renderer returns the renderer for --format writing to the command's output.
func (o *options) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// loadConfig loads --config, or the first default config file in the
// working directory.
func (o *options) loadConfig() (*config.Document, error) {
	path := o.configPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to get working directory")
		}
		path = config.FindConfigFile(cwd)
		if path == "" {
			return nil, errors.Newf(errors.ErrConfigLoad, MsgErrNoConfig, cwd, strings.Join(config.DefaultConfigFiles, ", ")).
				WithDetail(errors.DetailRemediation, MsgNoConfigFixHint)
		}
	}
	return config.Load(path)
}

// releaseContext builds the release context from --context, the process
// environment and versionFlag. Hook output goes to logOut.
func (o *options) releaseContext(versionFlag string, logOut io.Writer) (*types.ReleaseContext, error) {
	rc := &types.ReleaseContext{}
	if o.contextPath != "" {
		loaded, err := config.LoadReleaseContext(o.contextPath)
		if err != nil {
			return nil, err
		}
		rc = loaded
	}

	if versionFlag != "" {
		rc.NextRelease.Version = versionFlag
		rc.NextRelease.GitTag = "v" + versionFlag
	}
	if rc.NextRelease.Version == "" {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrNoVersion)
	}

	rc.Env = mergeEnviron(rc.Env)
	if rc.Cwd == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to get working directory")
		}
		rc.Cwd = cwd
	}
	rc.Logger = logging.NewConsoleReleaseLogger(logOut, MsgLoggerScope)
	return rc, nil
}

// mergeEnviron returns the process environment overlaid with env.
func mergeEnviron(env map[string]string) map[string]string {
	merged := make(map[string]string, len(env))
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			merged[k] = v
		}
	}
	for k, v := range env {
		merged[k] = v
	}
	return merged
}
