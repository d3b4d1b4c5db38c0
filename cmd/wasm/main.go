//go:build js && wasm

package main

import (
	"context"
	"os"
	"syscall/js"

	"github.com/rs/zerolog"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/client"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/view/dom"
	"github.com/zhouzirui/z-tavern/chatwidget/internal/widget"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true}).With().Timestamp().Logger()

	page, err := dom.Bind(js.Global().Get("document"))
	if err != nil {
		logger.Error().Err(err).Msg("[wasm] widget elements missing")
		return
	}

	mode, ok := widget.ParseResolveMode(page.Attr(dom.ResolveAttr))
	if !ok {
		logger.Warn().Str("resolve", page.Attr(dom.ResolveAttr)).Msg("[wasm] unknown resolve mode, using last")
		mode = widget.ResolveLast
	}

	asker := client.New(page.Attr(dom.EndpointAttr), client.WithLogger(logger))
	ctrl := widget.New(context.Background(), asker, page, widget.Options{Resolve: mode, Logger: logger})

	page.OnSubmit(func() {
		if _, err := ctrl.HandleSubmit(page); err != nil {
			logger.Warn().Err(err).Msg("[wasm] submit rejected")
		}
	})
	logger.Info().Str("endpoint", asker.Endpoint()).Msg("[wasm] chat widget ready")

	// Callbacks run on this runtime; keep it alive for the page's lifetime.
	select {}
}
