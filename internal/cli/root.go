package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/vql/internal/audit"
	"github.com/aidanlsb/vql/internal/commands"
	"github.com/aidanlsb/vql/internal/config"
	"github.com/aidanlsb/vql/internal/dispatch"
	"github.com/aidanlsb/vql/internal/grammar"
	"github.com/aidanlsb/vql/internal/paths"
	"github.com/aidanlsb/vql/internal/ui"
)

var errConfig = errors.New("invalid configuration")

// errGlobalOption reports a malformed leading "--" option.
var errGlobalOption = &grammar.InvalidValueError{Reason: "invalid global option"}

// errReported marks an error that has already been printed.
var errReported = errors.New("command failed")

// Replaced in tests.
var (
	getwd      = os.Getwd
	newDisplay = ui.NewDisplayContext
)

// globalOptions are the "--" options accepted before the command words.
// Single-dash words belong to the command grammar, so cobra's own flag
// parsing is disabled and these are parsed separately.
type globalOptions struct {
	jsonOutput    bool
	verbose       bool
	configPath    string
	workspaceName string
	workspacePath string
	showVersion   bool
	showHelp      bool
}

// valueOptions take a separate value word when written without "=".
var valueOptions = map[string]bool{
	"--config":         true,
	"--workspace":      true,
	"--workspace-path": true,
}

func newGlobalFlagSet(opts *globalOptions) *pflag.FlagSet {
	fs := pflag.NewFlagSet("vql", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log debug diagnostics to stderr")
	fs.StringVar(&opts.configPath, "config", "", "Path to config file")
	fs.StringVar(&opts.workspaceName, "workspace", "", "Named workspace from config")
	fs.StringVar(&opts.workspacePath, "workspace-path", "", "Explicit path to the project directory holding VQL/")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version and build information")
	fs.BoolVar(&opts.showHelp, "help", false, "Show usage")
	return fs
}

// parseGlobalArgs splits leading "--" options from the command words.
func parseGlobalArgs(args []string) (globalOptions, []string, error) {
	var opts globalOptions

	n := 0
	for n < len(args) {
		arg := args[n]
		if arg == "--" {
			n++
			break
		}
		if !strings.HasPrefix(arg, "--") {
			break
		}
		n++
		if valueOptions[arg] && n < len(args) {
			n++
		}
	}

	globals := args[:n]
	if n > 0 && args[n-1] == "--" {
		globals = args[:n-1]
	}
	if err := newGlobalFlagSet(&opts).Parse(globals); err != nil {
		return opts, nil, fmt.Errorf("%w: %v", errGlobalOption, err)
	}
	return opts, args[n:], nil
}

// rootCmd represents the base command
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vql [global options] <command>",
		Short: "VQL - a command-line annotation registry for code quality reviews",
		Long: `VQL keeps a registry of source assets and their principle-based reviews
in VQL/vql_storage.json. Commands come in three equivalent forms:

  vql -st uc a "Looks good"      CLI syntax
  vql ':uc.st(a, "Looks good")'  LLM syntax
  vql 'uc ? (a, s)'              review query`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// run executes one vql invocation.
func run(args []string, stdout, stderr io.Writer) error {
	opts, words, err := parseGlobalArgs(args)
	if err != nil {
		return reportError(stdout, stderr, opts.jsonOutput, err)
	}
	ui.SetupLogging(opts.verbose)

	r := &renderer{
		out:     stdout,
		errOut:  stderr,
		json:    opts.jsonOutput,
		display: newDisplay(stdout),
	}

	switch {
	case opts.showVersion:
		return printVersion(r)
	case opts.showHelp || len(words) == 0:
		if r.json {
			outputSuccess(stdout, map[string]string{"usage": commands.Usage()}, nil)
			return nil
		}
		fmt.Fprint(stdout, commands.Usage())
		return nil
	}

	cfg, cfgPath, err := loadGlobalConfig(opts.configPath)
	if err != nil {
		return r.fail(err)
	}
	ui.ConfigureTheme(cfg.UI.Accent)
	ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

	cmd, err := grammar.ParseWords(words)
	if err != nil {
		return r.fail(err)
	}
	ui.Debug("parsed command", "kind", cmd.Kind, "syntax", cmd.Syntax, "args", len(cmd.Args))

	wd, err := getwd()
	if err != nil {
		return r.fail(err)
	}

	dopts := dispatch.Options{WorkDir: wd, GlobalConfigPath: cfgPath, Logger: ui.Logger}
	if cmd.Kind != grammar.Setup {
		storageDir, err := resolveStorageDir(opts, cfg, wd)
		if err != nil {
			return r.fail(err)
		}
		wcfg, err := config.LoadWorkspaceConfig(storageDir)
		if err != nil {
			return r.fail(fmt.Errorf("%w: %w", errConfig, err))
		}
		dopts.StorageDir = storageDir
		dopts.Config = wcfg
		dopts.Audit = audit.New(storageDir, wcfg.IsAuditLogEnabled())
		ui.Debug("resolved workspace", "storage", storageDir)
	}

	start := time.Now()
	outcome, err := dispatch.New(dopts).Dispatch(cmd)
	if err != nil {
		return r.fail(err)
	}
	r.outcome(outcome, time.Since(start))
	return nil
}

// resolveStorageDir finds the VQL directory: explicit path > named
// workspace > upward search from wd > default workspace.
func resolveStorageDir(opts globalOptions, cfg *config.Config, wd string) (string, error) {
	if opts.workspacePath != "" {
		root := paths.ExpandHome(opts.workspacePath)
		if filepath.Base(filepath.Clean(root)) == paths.StorageDirName {
			root = filepath.Dir(filepath.Clean(root))
		}
		if !paths.HasDocument(root) {
			return "", fmt.Errorf("%w: %s", paths.ErrWorkspaceNotFound, root)
		}
		return paths.StorageDir(root), nil
	}

	if opts.workspaceName != "" {
		root, err := cfg.GetWorkspacePath(opts.workspaceName)
		if err != nil {
			return "", fmt.Errorf("%w: %v (configured: %s)", paths.ErrWorkspaceNotFound, err,
				strings.Join(cfg.WorkspaceNames(), ", "))
		}
		return paths.StorageDir(paths.ExpandHome(root)), nil
	}

	if dir, err := paths.FindStorageDir(wd); err == nil {
		return dir, nil
	}

	if cfg.DefaultWorkspace != "" {
		root, err := cfg.GetWorkspacePath("")
		if err != nil {
			return "", fmt.Errorf("%w: %v", paths.ErrWorkspaceNotFound, err)
		}
		return paths.StorageDir(paths.ExpandHome(root)), nil
	}
	return "", paths.ErrWorkspaceNotFound
}

func loadGlobalConfig(explicitPath string) (*config.Config, string, error) {
	resolvedPath := config.ResolveConfigPath(explicitPath)

	var (
		loadedCfg *config.Config
		err       error
	)
	if strings.TrimSpace(explicitPath) != "" {
		loadedCfg, err = config.LoadFrom(explicitPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", errConfig, err)
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}
	return loadedCfg, resolvedPath, nil
}

// reportError prints err as "ERROR: <message>" (or a JSON envelope) and
// returns errReported so the process exits non-zero.
func reportError(stdout, stderr io.Writer, jsonOutput bool, err error) error {
	code := errorCode(err)
	suggestion := errorSuggestion(err)
	ui.Debug("command error", "code", code, "err", err)

	if jsonOutput {
		outputError(stdout, code, err.Error(), errorDetails(err), suggestion)
		return errReported
	}
	fmt.Fprintln(stderr, ui.Error(err.Error()))
	if suggestion != "" {
		fmt.Fprintln(stderr, ui.Hint(suggestion))
	}
	return errReported
}
