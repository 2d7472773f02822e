package precheck

// Command descriptions
const (
	MsgRootShort = "Skip semantic-release deployment plugins for versions that are already deployed"
	MsgRootLong  = `precheck wraps a semantic-release deployment plugin and skips its publish
step when the release version is already deployed, either because a package
registry already has it or because a user command says so. After a publish it
can check the registry again and remove the release tag when the version never
arrived.

Configuration is read from .precheck.toml, .precheck.yaml or .precheck.yml in
the current directory, or from --config. PRECHECK_ environment variables
override file values, with __ separating nested keys.`

	MsgRunShort = "Run the full release lifecycle against the configured plugin"
	MsgRunLong  = `Run calls verifyConditions, analyzeCommits, verifyRelease, generateNotes,
prepare, publish, addChannel and success in order. When a hook fails after
verifyConditions, fail is called before the error is reported.`
	MsgRunExample = `  precheck run --version 1.2.0
  precheck run --context release.yaml --format json`

	MsgCheckShort   = "Check whether a version is already deployed"
	MsgCheckLong    = "Check runs only the deployment gate: the registry check first, then the skip command."
	MsgCheckExample = `  precheck check --version 18.0.0`

	MsgValidateShort = "Validate the configuration and the deployment plugin"
	MsgPluginsShort  = "List the deployment plugins compiled into this binary"

	MsgGenConfigShort   = "Print a sample configuration file"
	MsgGenConfigExample = `  precheck genconfig > .precheck.toml
  precheck genconfig --format yaml
  precheck genconfig -w`

	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
)

// Flag descriptions
const (
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Configuration file (default: .precheck.toml, .precheck.yaml or .precheck.yml)"
	MsgFlagContext    = "YAML file with the release context (nextRelease, env, cwd, ...)"
	MsgFlagFormat     = "Output format: auto, term, text or json"
	MsgFlagVersion    = "Version being released; overrides nextRelease.version from --context"
	MsgFlagTagDeleter = "How to delete the release tag after a failed publish: cli or go-git"
	MsgFlagRemote     = "Git remote holding the release tag"
	MsgFlagGenFormat  = "Sample config format: toml or yaml"
	MsgFlagGenWrite   = "Write the sample to .precheck.<format> instead of stdout"
)

// Error messages
const (
	MsgErrNoConfig      = "no configuration file found in %s (looked for %s)"
	MsgErrNoVersion     = "no release version given: use --version or set nextRelease.version in --context"
	MsgErrTagDeleter    = "unknown tag deleter %q (use cli or go-git)"
	MsgErrConfigExists  = "%s already exists"
	MsgErrNoCommand     = "no command specified"
	MsgNoConfigFixHint  = "## No configuration\n\nCreate one with:\n\n```sh\nprecheck genconfig > .precheck.toml\n```\n"
	MsgConfigWritten    = "Wrote %s"
	MsgLoggerScope      = "precheck"
	MsgCompletionFailed = "Failed to generate completion"
)

// MsgCompletionLong is the help for the completion command.
const MsgCompletionLong = `To load completions:

Bash:
  $ source <(precheck completion bash)

Zsh:
  $ precheck completion zsh > "${fpath[1]}/_precheck"

Fish:
  $ precheck completion fish | source

PowerShell:
  PS> precheck completion powershell | Out-String | Invoke-Expression
`
