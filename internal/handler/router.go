package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/handler/chat"
	middlewarePkg "github.com/zhouzirui/z-tavern/chatwidget/internal/middleware"
	"github.com/zhouzirui/z-tavern/chatwidget/pkg/utils"
)

// NewRouter wires the widget page, its assets and a health check.
func NewRouter(page *chat.Handler, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	page.RegisterRoutes(r)

	respond := utils.NewResponder(logger)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
