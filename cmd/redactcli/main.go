package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/studiowebux/redactcli/internal/cli"
	"github.com/studiowebux/redactcli/internal/config"
	"github.com/studiowebux/redactcli/internal/interact"
	"github.com/studiowebux/redactcli/internal/logging"
	"github.com/studiowebux/redactcli/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var oe *cli.OutcomeError
		if errors.As(err, &oe) {
			fmt.Fprintln(os.Stderr, oe.Message)
			if oe.Detail != "" {
				fmt.Fprintln(os.Stderr, oe.Detail)
			}
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "redactcli",
	Short: "Redact and restore sensitive text with an Inu service",
	Long: `redactcli replaces personal data in text with placeholders through an Inu
redaction service, and later puts the original values back.

Run without arguments to start the two-view TUI (redact, then restore), or use
the subcommands for scripting.

Examples:
  redactcli                                   # Start interactive TUI
  redactcli redact -f mail.txt -t PERSON,EMAIL
  cat mail.txt | redactcli redact -e entities.yaml
  redactcli restore -c "Hi <PERSON_1>"        # Use the session mapping
  redactcli restore -f reply.txt -e entities.yaml
  redactcli interactive -f mail.txt
  redactcli state show --format yaml`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		return runTUI(cmd.Context(), settings)
	},
}

var redactCmd = &cobra.Command{
	Use:   "redact",
	Short: "Redact text and store the entity mapping in the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			return app.Redact(ctx, cli.RedactOptions{
				File:           flagFile,
				Content:        flagContent,
				EntityTypes:    flagEntityTypes,
				Pick:           flagPick,
				Output:         flagOutput,
				NoPrint:        flagNoPrint,
				OutputEntities: flagOutputEntities,
			})
		})
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore placeholders using the session mapping or an entities file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			return app.Restore(ctx, cli.RestoreOptions{
				File:     flagFile,
				Content:  flagContent,
				Entities: flagEntities,
				Output:   flagOutput,
				NoPrint:  flagNoPrint,
			})
		})
	},
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Redact once, then restore each pasted chunk until EOF",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			return app.Interactive(ctx, cli.InteractiveOptions{
				File:        flagFile,
				Content:     flagContent,
				EntityTypes: flagEntityTypes,
				NoPrompt:    flagNoPrompt,
			})
		})
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the entity categories offered by the service",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			return app.Categories(ctx)
		})
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or clear the session state",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored redaction state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			return app.ShowState(ctx, flagFormat)
		})
	},
}

var stateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored redaction state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *cli.App) error {
			return app.ClearState(ctx)
		})
	},
}

// Persistent flags
var (
	flagServer    string
	flagUsername  string
	flagSession   string
	flagBackend   string
	flagEphemeral bool
	flagEnvFile   string
	flagConfig    string
	flagLogLevel  string
)

// Command flags
var (
	flagFile           string
	flagContent        string
	flagEntityTypes    []string
	flagPick           bool
	flagOutput         string
	flagNoPrint        bool
	flagOutputEntities string
	flagEntities       string
	flagNoPrompt       bool
	flagFormat         string
)

// flagKeys maps persistent flags to configuration keys
var flagKeys = map[string]string{
	"server":    "server.url",
	"username":  "auth.username",
	"session":   "session.id",
	"backend":   "session.backend",
	"log-level": "log.level",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagServer, "server", "s", "", "Redaction service URL")
	pf.StringVarP(&flagUsername, "username", "u", "", "Username for Basic auth (password is prompted)")
	pf.StringVar(&flagSession, "session", "", "Session id (default: $REDACTCLI_SESSION or parent process)")
	pf.StringVar(&flagBackend, "backend", "", "Session backend (memory/file/sqlite/redis)")
	pf.BoolVar(&flagEphemeral, "ephemeral", false, "Keep session state in memory only")
	pf.StringVar(&flagEnvFile, "env-file", "", "Load environment variables from file")
	pf.StringVar(&flagConfig, "config", "", "Project config file (default: ./.redactcli.yaml)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (debug/info/warn/error)")

	for _, c := range []*cobra.Command{redactCmd, restoreCmd, interactiveCmd} {
		c.Flags().StringVarP(&flagFile, "file", "f", "", "Read input from file")
		c.Flags().StringVarP(&flagContent, "content", "c", "", "Input text")
	}
	for _, c := range []*cobra.Command{redactCmd, restoreCmd} {
		c.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the result to file")
		c.Flags().BoolVar(&flagNoPrint, "no-print", false, "Do not print the result")
	}
	for _, c := range []*cobra.Command{redactCmd, interactiveCmd} {
		c.Flags().StringSliceVarP(&flagEntityTypes, "entity-types", "t", nil, "Entity categories to redact (default: all)")
	}

	redactCmd.Flags().BoolVarP(&flagPick, "pick", "p", false, "Choose categories interactively")
	redactCmd.Flags().StringVarP(&flagOutputEntities, "output-entities", "e", "", "Save the entity mapping to a YAML file")

	restoreCmd.Flags().StringVarP(&flagEntities, "entities", "e", "", "Entity mapping file (YAML/JSON/JSONC) instead of the session")

	interactiveCmd.Flags().BoolVar(&flagNoPrompt, "no-prompt", false, "Do not print instructions")

	stateShowCmd.Flags().StringVar(&flagFormat, "format", "json", "Output format (json/yaml)")

	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateClearCmd)

	rootCmd.AddCommand(redactCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(stateCmd)
}

// loadSettings initializes the config directory and layers flags over the
// configuration files and environment.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	if err := config.Initialize(); err != nil {
		return config.Settings{}, fmt.Errorf("failed to initialize config: %w", err)
	}

	overrides := make(map[string]any)
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	if flagEphemeral {
		overrides["session.backend"] = config.BackendMemory
	}

	return config.Load(config.LoadOptions{
		ConfigPath:    flagConfig,
		EnvFile:       flagEnvFile,
		FlagOverrides: overrides,
	})
}

// withApp runs fn with a CLI app logging to stderr
func withApp(cmd *cobra.Command, fn func(context.Context, *cli.App) error) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	opts := logging.DefaultOptions()
	opts.Level = settings.Log.Level
	opts.Prefix = cmd.Name()
	logger := logging.New(opts)

	terminal := interact.NewTerminal()
	app, err := cli.New(cmd.Context(), cli.Options{
		Settings: settings,
		Logger:   logger,
		Streams:  cli.StdStreams(),
		Prompter: terminal,
		Notifier: terminal,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(cmd.Context(), app)
}

// runTUI starts the TUI with logs going to the log file
func runTUI(ctx context.Context, settings config.Settings) error {
	logger, closer, err := tuiLogger(settings)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info("starting TUI", "server", settings.Server.URL, "backend", settings.Session.Backend)
	return tui.Run(ctx, settings, logger)
}

func tuiLogger(settings config.Settings) (*log.Logger, io.Closer, error) {
	path := settings.Log.File
	if path == "" {
		path = config.LogFile
	}

	opts := logging.DefaultOptions()
	opts.Level = settings.Log.Level
	opts.Prefix = "tui"
	logger, closer, err := logging.NewFile(path, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return logger, closer, nil
}
