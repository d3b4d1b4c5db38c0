package main

import (
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/client"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/config"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/logging"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/widget"
)

// app carries what every subcommand needs once flags and env are resolved.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger

	endpoint string
	timeout  time.Duration
	resolve  string
	logLevel string
	logFile  string
	envFile  string
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&app{})
}

func buildRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chatwidget",
		Short:         "Chat widget that posts questions to a local answer endpoint",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, cmd.ErrOrStderr())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.endpoint, "endpoint", client.DefaultEndpoint, "answer endpoint URL")
	flags.DurationVar(&a.timeout, "timeout", 0, "per-request timeout (0 = none)")
	flags.StringVar(&a.resolve, "resolve", string(widget.ResolveLast), "how answers find their entry: last or id")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level")
	flags.StringVar(&a.logFile, "log-file", "", "append logs to this file instead of stderr")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	cmd.AddCommand(newTUICmd(a), newAskCmd(a), newServeCmd(a))
	return cmd
}

func (a *app) setup(cmd *cobra.Command, stderr io.Writer) error {
	if err := godotenv.Load(a.envFile); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("file", a.envFile).Msg("[config] failed to load env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Chat.Endpoint = a.endpoint
	}
	if flags.Changed("timeout") {
		cfg.Chat.Timeout = a.timeout
	}
	if flags.Changed("resolve") {
		cfg.Chat.ResolveMode = a.resolve
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}

	out := stderr
	if a.logFile != "" {
		f, err := logging.OpenFile(a.logFile)
		if err != nil {
			return err
		}
		cobra.OnFinalize(func() { _ = f.Close() })
		out = f
	}
	logger, err := logging.New(out, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	log.Logger = logger

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) asker(logger zerolog.Logger) *client.Client {
	return client.New(a.cfg.Chat.Endpoint, client.WithLogger(logger))
}

func (a *app) widgetOptions() widget.Options {
	return widget.Options{
		Resolve:        a.cfg.Chat.Resolve(),
		RequestTimeout: a.cfg.Chat.Timeout,
		Logger:         a.logger,
	}
}
