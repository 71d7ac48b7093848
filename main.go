package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	adksession "google.golang.org/adk/session"

	"github.com/muhammadolammi/bulletdoctor/internal/dialogue"
	"github.com/muhammadolammi/bulletdoctor/internal/session"
	"github.com/muhammadolammi/bulletdoctor/internal/tui"
)

var (
	debug  bool
	plain  bool
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bulletdoctor",
	Short: "Turn rough job accomplishments into quantified resume bullets",
	Long: `bulletdoctor interviews you about a rough accomplishment and drafts a
single quantified resume bullet for your target role.

Run without arguments to start the interactive chat.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runChat,
}

var pointsCmd = &cobra.Command{
	Use:   "points <file|r2://key>",
	Short: "List the rough points found in an existing resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runPoints,
}

func initLogger() error {
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = defaultLogFile
	}
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.OutputPaths = []string{logFile}
	config.ErrorOutputPaths = []string{logFile}

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(os.Getenv, true)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	provider, err := GetProvider(ctx, cfg.GoogleApiKey, cfg.Model, logger)
	if err != nil {
		return err
	}
	publisher, closePublisher := getPublisher(cfg, logger)
	defer closePublisher()

	loader, err := getLoader(ctx, cfg, logger)
	if err != nil {
		return err
	}

	manager := session.NewManager(adksession.InMemoryService(), appName, prompt(), publisher, logger)
	store, err := manager.Open(ctx, localUser())
	if err != nil {
		return err
	}
	defer func() {
		if err := manager.Close(context.Background(), store.ID()); err != nil {
			logger.Warn("failed to close session", zap.Error(err))
		}
	}()

	ctrl := dialogue.New(store, provider, publisher, logger)
	ctrl.Start()

	if plain {
		return runREPL(ctx, ctrl, loader, os.Stdin, os.Stdout)
	}

	p := tea.NewProgram(tui.NewModel(ctx, ctrl, loader, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat ui: %w", err)
	}
	snap, err := manager.Snapshot(context.Background(), store.ID())
	if err != nil {
		return err
	}
	for _, b := range snap.Bullets {
		fmt.Println("• " + b)
	}
	return nil
}

func runPoints(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(os.Getenv, false)
	if err != nil {
		return err
	}
	loader, err := getLoader(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	points, err := loader.Points(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No rough points found.")
		return nil
	}
	for _, p := range points {
		fmt.Fprintln(cmd.OutOrStdout(), "• "+p)
	}
	return nil
}

func main() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&plain, "plain", false, "chat line by line on stdin/stdout instead of the terminal UI")
	rootCmd.AddCommand(pointsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
