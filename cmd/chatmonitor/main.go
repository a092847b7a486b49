package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chatmonitor/internal/app"
	"github.com/vovakirdan/chatmonitor/internal/config"
	applog "github.com/vovakirdan/chatmonitor/internal/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		overrides  config.Config
	)

	cmd := &cobra.Command{
		Use:           "chatmonitor",
		Short:         "Simulate a chat room whose message log is guarded by a monitor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootstrap := applog.New("info", cmd.ErrOrStderr())

			cfg, path, err := config.Load(bootstrap, configPath)
			if err != nil {
				bootstrap.Error().Err(err).Str("path", path).Msg("failed to load config")
				return err
			}
			cfg.UpdateFrom(overrides)

			logger := applog.New(cfg.LogLevel, cmd.ErrOrStderr())
			application, err := app.New(cfg, logger, cmd.OutOrStdout())
			if err != nil {
				logger.Error().Err(err).Msg("failed to init app")
				return err
			}

			logger.Info().
				Str("config", path).
				Strs("users", cfg.Users).
				Int("capacity", cfg.Capacity).
				Msg("starting chat")
			if err := application.Run(cmd.Context()); err != nil {
				logger.Error().Err(err).Msg("chat exited with error")
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to config file (default ./config.yaml)")
	flags.IntVar(&overrides.Capacity, "capacity", 0, "maximum number of messages kept in the log")
	flags.StringSliceVar(&overrides.Users, "users", nil, "chat participants, one window each")
	flags.IntVar(&overrides.Letters, "letters", 0, "letters per random message")
	flags.StringVar(&overrides.Alphabet, "alphabet", "", "letters random messages are drawn from")
	flags.DurationVar(&overrides.TypingDelay, "typing-delay", 0, "pause after each typed character")
	flags.DurationVar(&overrides.ReadInterval, "read-interval", 0, "pause after each posted message")
	flags.StringVar(&overrides.TypingLock, "typing-lock", "", "hold the log while typing (hold) or only while posting (narrow)")
	flags.StringSliceVar(&overrides.Script, "script", nil, "lines to post instead of random words")
	flags.StringVar(&overrides.ScriptMode, "script-mode", "", "post script lines at once (say) or letter by letter (type)")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.DurationVar(&overrides.Duration, "duration", 0, "stop after this long (0 runs until interrupted)")

	return cmd
}
