package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/tacogips/gitignore-assist/internal/app"
	"github.com/tacogips/gitignore-assist/internal/catalog"
	"github.com/tacogips/gitignore-assist/internal/config"
	"github.com/tacogips/gitignore-assist/internal/debug"
	"github.com/tacogips/gitignore-assist/internal/version"
	"github.com/tacogips/gitignore-assist/internal/workspace"
)

// Alias version variables for compatibility
var (
	Version   = version.Version
	GitCommit = version.GitCommit
	BuildDate = version.BuildDate
)

// Global flags
var (
	globalDir       string
	globalConfig    string
	globalSourceURL string
	globalEditor    string
	globalNoOpen    bool
	globalNoColor   bool
	globalQuiet     bool
	globalDebug     bool
)

// cfg is the effective configuration, resolved before each command runs.
var cfg = config.DefaultConfig()

// newUI creates the UI collaborator; replaced in tests.
var newUI = func() app.UI { return newTerminalUI() }

// errReported marks failures already shown to the user.
var errReported = errors.New("operation failed")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gitignore-assist",
	Short: "Create and extend .gitignore files from templates",
	Long: `gitignore-assist creates a .gitignore for a workspace and merges ready-made
template rules into it.

Templates are fetched from a remote JSON list (gitignore.io by default). When
a template is merged into an existing .gitignore, only the rules not already
present are appended, under a header naming the template and the date.

Commands:
  create            Create a .gitignore containing only a header
  new [template]    Create a .gitignore from a template
  update [template] Append a template's missing rules to the .gitignore
  list              List available templates`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			printError(err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&globalDir, FlagDir, "C", ".", DescDir)
	pf.StringVar(&globalConfig, FlagConfig, "", DescConfig)
	pf.StringVar(&globalSourceURL, FlagSourceURL, "", DescSourceURL)
	pf.StringVar(&globalEditor, FlagEditor, "", DescEditor)
	pf.BoolVar(&globalNoOpen, FlagNoOpen, false, DescNoOpen)
	pf.BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	pf.BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	pf.BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	// Add subcommands
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup resolves configuration: defaults, then the config file, then the
// environment, then flags.
func setup(cmd *cobra.Command, args []string) error {
	debug.SetDebug(globalDebug)

	path := globalConfig
	if path == "" {
		path = config.DefaultConfigPath(config.DefaultConfigDir())
	}
	debug.DebugValue("[cli] config path", path)

	loader := config.NewLoader()
	loaded, err := loader.LoadOrDefault(path)
	if err != nil {
		return err
	}
	config.ApplyEnv(loaded)

	if globalSourceURL != "" {
		loaded.Source.URL = globalSourceURL
	}
	if globalEditor != "" {
		loaded.Workspace.Editor = globalEditor
	}
	loaded.Output.NoColor = loaded.Output.NoColor || globalNoColor
	loaded.Output.Quiet = loaded.Output.Quiet || globalQuiet
	loaded.Workspace.NoOpen = loaded.Workspace.NoOpen || globalNoOpen

	if err := loader.Validate(loaded); err != nil {
		return err
	}

	globalNoColor = loaded.Output.NoColor
	globalQuiet = loaded.Output.Quiet
	debug.SetNoColor(globalNoColor)
	debug.SetQuiet(globalQuiet)
	debug.DebugJSON("[cli] config", loaded)

	cfg = loaded
	return nil
}

// openWorkspace opens the workspace named by --dir.
func openWorkspace() (*workspace.Dir, error) {
	ws, err := workspace.Open(globalDir)
	if err != nil {
		return nil, err
	}
	ws.Editor = cfg.Workspace.Editor
	ws.Interactive = isInteractive()
	debug.DebugValue("[cli] workspace", ws.Root())
	return ws, nil
}

// sourceFromConfig builds the template source from the configuration.
func sourceFromConfig() *catalog.HTTPSource {
	src := catalog.NewHTTPSource(cfg.Source.URL, time.Duration(cfg.Source.Timeout)*time.Second)
	src.UserAgent = cfg.Source.UserAgent
	if Version != "" && Version != "dev" {
		src.UserAgent = fmt.Sprintf("%s/%s", cfg.Source.UserAgent, Version)
	}
	debug.DebugValue("[cli] source", src.URL)
	return src
}

func catalogLogger() debug.Logger {
	return debug.Logger{Prefix: "[catalog]"}
}

// startCatalog begins the one-time template fetch in the background.
func startCatalog(ctx context.Context) *catalog.Session {
	return catalog.StartSession(ctx, sourceFromConfig(), catalogLogger())
}

// awaitCatalog returns the session's catalog once the fetch has finished.
func awaitCatalog(ctx context.Context, sess *catalog.Session) *catalog.Catalog {
	select {
	case <-sess.Done():
	default:
		printProgress("Fetching templates...")
	}
	return sess.Wait(ctx)
}

// flowOptions builds app options shared by the template commands.
func flowOptions(templateArgs []string) app.Options {
	opts := app.Options{Open: !cfg.Workspace.NoOpen}
	if len(templateArgs) > 0 {
		opts.TemplateName = templateArgs[0]
	}
	return opts
}

// finish converts an outcome into the command result. Failures have
// already been reported to the user by the flow.
func finish(out *app.Outcome) error {
	debug.DebugValue("[cli] outcome", out.Status)
	if out.Err != nil {
		return fmt.Errorf("%w: %v", errReported, out.Err)
	}
	return nil
}

// printError prints an error message to stderr
func printError(err error) {
	fmt.Fprintf(stderr, "Error: %v\n", err)
}
