package chat

import (
	"embed"
	"html/template"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/widget"
	"github.com/zhouzirui/z-tavern/chatwidget/pkg/utils"
)

// WasmFile is the bundle name the page loads from the static directory.
const WasmFile = "widget.wasm"

const staticPrefix = "/static"

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

type pageData struct {
	Title        string
	Endpoint     string
	ResolveMode  string
	StaticPrefix string
	WasmFile     string
}

// Options configure the widget page.
type Options struct {
	Title       string
	Endpoint    string
	ResolveMode widget.ResolveMode
	AssetsDir   string
}

// Handler 挂件页面的HTTP处理器
type Handler struct {
	page    pageData
	assets  string
	logger  zerolog.Logger
	respond utils.Responder
}

// New 创建挂件页面处理器
func New(opts Options, logger zerolog.Logger) *Handler {
	title := opts.Title
	if title == "" {
		title = "Chat"
	}
	return &Handler{
		page: pageData{
			Title:        title,
			Endpoint:     opts.Endpoint,
			ResolveMode:  string(opts.ResolveMode),
			StaticPrefix: staticPrefix,
			WasmFile:     WasmFile,
		},
		assets:  opts.AssetsDir,
		logger:  logger,
		respond: utils.NewResponder(logger),
	}
}

// RegisterRoutes 注册挂件页面与静态资源路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Get(staticPrefix+"/*", h.handleStatic)
}

// handleIndex 渲染挂件页面
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, h.page); err != nil {
		h.logger.Error().Err(err).Msg("[page] render failed")
	}
}

// handleStatic 提供 wasm 包与 wasm_exec.js
func (h *Handler) handleStatic(w http.ResponseWriter, r *http.Request) {
	if h.assets == "" {
		h.respond.Error(w, r, http.StatusNotFound, "assets directory not configured")
		return
	}
	if _, err := os.Stat(h.assets); err != nil {
		h.logger.Warn().Err(err).Str("dir", h.assets).Msg("[page] assets directory unavailable")
		h.respond.Error(w, r, http.StatusNotFound, "assets unavailable")
		return
	}

	fs := http.StripPrefix(staticPrefix, http.FileServer(http.Dir(h.assets)))
	fs.ServeHTTP(w, r)
}
