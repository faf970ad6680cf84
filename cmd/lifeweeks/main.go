package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/studiowebux/lifeweeks/internal/cli"
	"github.com/studiowebux/lifeweeks/internal/config"
	"github.com/studiowebux/lifeweeks/internal/gateway"
	"github.com/studiowebux/lifeweeks/internal/history"
	"github.com/studiowebux/lifeweeks/internal/keybinds"
	"github.com/studiowebux/lifeweeks/internal/logging"
	"github.com/studiowebux/lifeweeks/internal/tui"
	"github.com/studiowebux/lifeweeks/internal/version"
)

var (
	appVersion = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Loaded by the root PersistentPreRunE
var (
	settings config.Settings
	logger   *slog.Logger
	logFile  io.Closer
)

// Global flags
var (
	flagBackendURL string
	flagTransport  string
)

var rootCmd = &cobra.Command{
	Use:   "lifeweeks",
	Short: "Life in Weeks - wallpaper generator client",
	Long: `Life in Weeks renders a grid of the weeks in a time window and sets it
as the desktop wallpaper. Rendering is done by the backend; this client
collects the settings, previews the result and applies it.

Run without arguments to start the interactive TUI.

Examples:
  lifeweeks                                  # Start interactive TUI
  lifeweeks generate --preview               # Render the default mode to a PNG
  lifeweeks generate -m life --dob 1990-05-17
  lifeweeks config show --query theme
  lifeweeks config set theme sunset
  lifeweeks schedule install
  lifeweeks mock                             # Start the development backend`,
	Version:       appVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		loaded, err := config.LoadSettings(config.GetSettingsFilePath())
		if err != nil {
			return err
		}
		if flagBackendURL != "" {
			loaded.BackendURL = flagBackendURL
		}
		if flagTransport != "" {
			loaded.Transport = flagTransport
		}
		settings = loaded

		l, closer, err := logging.OpenFile(settings.ResolvedLogFile(), settings.LogLevel)
		if err != nil {
			return err
		}
		logger, logFile = l, closer
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logFile != nil {
			return logFile.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBackendURL, "backend", "", "Backend URL (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&flagTransport, "transport", "", "Backend transport: http or websocket")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mockCmd)
	rootCmd.AddCommand(versionCmd)
}

// connect opens the backend gateway from settings
func connect(ctx context.Context) (gateway.Backend, io.Closer, error) {
	client, closer, err := gateway.New(ctx, settings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to backend: %w", err)
	}
	return client, closer, nil
}

// openHistory returns the activity log, or nil when it is disabled
func openHistory() (*history.Manager, error) {
	if !settings.HistoryEnabled {
		return nil, nil
	}
	return history.NewManager(config.DatabasePath)
}

// runTUI starts the interactive TUI
func runTUI(ctx context.Context) error {
	backend, closer, err := connect(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	keys, err := keybinds.Load(settings.Keybinds)
	if err != nil {
		return fmt.Errorf("invalid keybinds: %w", err)
	}

	opts := tui.Options{
		Backend:             backend,
		Logger:              logger,
		Keybinds:            keys,
		NotificationTimeout: settings.NotificationTimeout(),
		Version:             appVersion,
		CheckForUpdates:     true,
	}

	store, err := openHistory()
	if err != nil {
		logger.Warn("activity log unavailable", "error", err)
	} else if store != nil {
		defer store.Close()
		opts.Store = store
	}

	program := tea.NewProgram(tui.New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Flags for generate
var (
	genMode     string
	genTheme    string
	genDOB      string
	genLifespan string
	genMonths   string
	genWidth    string
	genHeight   string
	genPreview  bool
	genOutput   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the wallpaper and set it",
	Long: `Render the wallpaper for the chosen mode and set it as the desktop background.

Fields left empty use the values stored by the backend. Malformed numbers are
treated as empty.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, closer, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer closer.Close()

		opts := cli.GenerateOptions{
			Mode:        genMode,
			Theme:       genTheme,
			DOB:         genDOB,
			Lifespan:    genLifespan,
			Months:      genMonths,
			Width:       genWidth,
			Height:      genHeight,
			PreviewOnly: genPreview,
			OutputPath:  genOutput,
		}

		store, err := openHistory()
		if err != nil {
			logger.Warn("activity log unavailable", "error", err)
		} else if store != nil {
			defer store.Close()
			opts.Recorder = store
		}

		return cli.Generate(cmd.Context(), backend, opts, cmd.OutOrStdout())
	},
}

// Flags for config show
var (
	configQuery  string
	configOutput string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the backend settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the backend settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, closer, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer closer.Close()

		return cli.ConfigShow(cmd.Context(), backend, cli.ConfigShowOptions{
			Query:  configQuery,
			Format: configOutput,
		}, cmd.OutOrStdout())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Change one backend setting",
	Long: `Change one backend setting. Keys: dob, lifespan, theme, width, height, mode, months.

An empty dob ("") clears the stored date of birth. Leaving out the value of
theme or mode opens a picker.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, closer, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer closer.Close()

		key := args[0]
		var value string
		if len(args) == 2 {
			value = args[1]
		} else {
			current := ""
			if cfg, err := backend.GetConfig(cmd.Context()); err == nil {
				if key == "theme" {
					current = string(cfg.Theme)
				} else {
					current = string(cfg.DefaultMode)
				}
			}
			if value, err = cli.PromptForValue(key, current); err != nil {
				return err
			}
		}

		return cli.ConfigSet(cmd.Context(), backend, key, value, cmd.OutOrStdout())
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default backend settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, closer, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer closer.Close()

		return cli.ConfigReset(cmd.Context(), backend, cmd.OutOrStdout())
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the client settings file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cli.ConfigPath(cmd.OutOrStdout())
	},
}

var scheduleCmd = &cobra.Command{
	Use:       "schedule <install|uninstall|status>",
	Short:     "Manage the weekly wallpaper update",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"install", "uninstall", "status"},
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, closer, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer closer.Close()

		var recorder cli.ActivityRecorder
		store, err := openHistory()
		if err != nil {
			logger.Warn("activity log unavailable", "error", err)
		} else if store != nil {
			defer store.Close()
			recorder = store
		}

		return cli.Schedule(cmd.Context(), backend, args[0], recorder, cmd.OutOrStdout())
	},
}

// Flags for history
var (
	historyLimit  int
	historyOutput string
	historyClear  bool
	historyAction string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent wallpaper actions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()

		if historyClear {
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
			return nil
		}
		return cli.History(store, historyLimit, historyAction, historyOutput, cmd.OutOrStdout())
	},
}

// Flags for mock
var (
	mockConfig  string
	mockHost    string
	mockPort    int
	mockVerbose bool
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run the development backend",
	Long: `Run an in-memory backend that speaks the HTTP and WebSocket protocols.

The optional config file (YAML or JSON) sets the initial state, the preview
numbers, and per-command errors and delays.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunMock(cmd.Context(), cli.MockOptions{
			ConfigPath: mockConfig,
			Host:       mockHost,
			Port:       mockPort,
			Verbose:    mockVerbose,
		}, logging.New(cmd.ErrOrStderr(), settings.LogLevel), cmd.OutOrStdout())
	},
}

var versionCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "lifeweeks %s\n", appVersion)
		if !versionCheck {
			return nil
		}

		info, err := version.CheckForUpdate(cmd.Context(), appVersion)
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}
		if info.Available {
			fmt.Fprintf(out, "A newer version is available: %s\n%s\n", info.Latest, info.URL)
		} else {
			fmt.Fprintln(out, "You are running the latest version")
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&genMode, "mode", "m", "", "Mode: life, year-end or next-months (default: backend setting)")
	generateCmd.Flags().StringVarP(&genTheme, "theme", "t", "", "Theme: dark, terminal, minimal or sunset (default: backend setting)")
	generateCmd.Flags().StringVar(&genDOB, "dob", "", "Date of birth (YYYY-MM-DD), required for life mode")
	generateCmd.Flags().StringVar(&genLifespan, "lifespan", "", "Lifespan in years")
	generateCmd.Flags().StringVar(&genMonths, "months", "", "Months covered by next-months mode")
	generateCmd.Flags().StringVar(&genWidth, "width", "", "Image width in pixels")
	generateCmd.Flags().StringVar(&genHeight, "height", "", "Image height in pixels")
	generateCmd.Flags().BoolVar(&genPreview, "preview", false, "Only write the preview PNG, do not set the wallpaper")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Preview PNG path (default: ~/.lifeweeks/preview.png)")

	configShowCmd.Flags().StringVarP(&configQuery, "query", "q", "", "JMESPath query applied to the settings")
	configShowCmd.Flags().StringVarP(&configOutput, "output", "o", "text", "Output format (json/yaml/text)")
	configCmd.AddCommand(configShowCmd, configSetCmd, configResetCmd, configPathCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", history.DefaultLimit, "Number of entries to show")
	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", "text", "Output format (json/yaml/text)")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all entries")
	historyCmd.Flags().StringVarP(&historyAction, "action", "a", "", "Only show one action (preview/apply/schedule/persist)")

	mockCmd.Flags().StringVarP(&mockConfig, "config", "c", "", "Mock config file (YAML or JSON)")
	mockCmd.Flags().StringVar(&mockHost, "host", "", "Listen host (default 127.0.0.1)")
	mockCmd.Flags().IntVarP(&mockPort, "port", "p", 0, "Listen port (default 7878)")
	mockCmd.Flags().BoolVarP(&mockVerbose, "verbose", "v", false, "Print each call")

	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check for a newer release")
}
