package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/view/term"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Chat in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// The terminal belongs to the UI; only a log file may receive output.
			logger := a.logger
			if a.logFile == "" {
				logger = zerolog.Nop()
			}
			opts := a.widgetOptions()
			opts.Logger = logger

			return term.Run(ctx, a.asker(logger), opts, logger)
		},
	}
}
