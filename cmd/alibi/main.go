package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sant0-9/alibi/internal/config"
	"github.com/sant0-9/alibi/internal/session"
	"github.com/sant0-9/alibi/internal/tui"
	"github.com/sant0-9/alibi/internal/writer"
)

var version = "dev"

var (
	cfg     *config.Config
	noColor bool

	// closeLog releases the log file opened for the interactive UI.
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:           "alibi",
	Short:         "Intelligent excuse generator",
	Long:          "Generate excuses, apologies, fake emergency calls and proof images from the terminal.\nRun without a subcommand to open the interactive UI.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		// The UI owns the terminal, so it logs to a file.
		if cmd == cmd.Root() {
			closeLog, err = setupFileLogging(cfg.Log)
			return err
		}
		setupStderrLogging(cfg.Log)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer closeLog()

		sess, err := newSession()
		if err != nil {
			return err
		}
		log := slog.Default().With("session", sess.ID())
		log.Info("starting ui", "version", version)

		app := tui.NewApp(tui.Options{
			Config:  cfg,
			Session: sess,
			Writer:  writer.NewWriter(cfg.OutputDir),
			Logger:  log,
		})
		p := tea.NewProgram(
			app,
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		)

		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(excuseCmd)
	rootCmd.AddCommand(apologyCmd)
	rootCmd.AddCommand(emergencyCmd)
	rootCmd.AddCommand(proofCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(configCmd)
}

func newSession() (*session.Session, error) {
	sess, err := session.New(session.NewFavoritesFile(cfg.FavoritesPath))
	if err != nil {
		return nil, fmt.Errorf("loading favorites: %w", err)
	}
	return sess, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError("%v", err)
		for _, hint := range hints(err) {
			printStatus("hint", "%s", hint)
		}
		stop()
		os.Exit(1)
	}
}
