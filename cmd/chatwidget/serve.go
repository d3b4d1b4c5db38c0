package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/handler"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/handler/chat"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr   string
		assets string
		title  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host the browser widget page and its wasm bundle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Port = addr
				if err := a.cfg.Normalize(); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("assets") {
				a.cfg.Server.AssetsDir = assets
			}

			page := chat.New(chat.Options{
				Title:       title,
				Endpoint:    a.cfg.Chat.Endpoint,
				ResolveMode: a.cfg.Chat.Resolve(),
				AssetsDir:   a.cfg.Server.AssetsDir,
			}, a.logger)
			router := handler.NewRouter(page, a.logger)

			srv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           router,
				ReadHeaderTimeout: 5 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			a.logger.Info().
				Str("addr", srv.Addr).
				Str("assets", a.cfg.Server.AssetsDir).
				Str("endpoint", a.cfg.Chat.Endpoint).
				Msg("[serve] chat widget page listening")
			if err := runServer(ctx, srv, a.logger); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address or port (overrides PORT)")
	cmd.Flags().StringVar(&assets, "assets", "", "directory holding widget.wasm and wasm_exec.js")
	cmd.Flags().StringVar(&title, "title", "Chat", "page title")
	return cmd
}

func runServer(ctx context.Context, srv *http.Server, logger zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("[serve] shutdown error")
		}
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info().Msg("[serve] shutdown complete")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
