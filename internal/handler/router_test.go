package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/handler/chat"
	"github.com/zhouzirui/z-tavern/chatwidget/pkg/utils"
)

func TestRouterHealthz(t *testing.T) {
	router := NewRouter(chat.New(chat.Options{}, zerolog.Nop()), zerolog.Nop())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
}

func TestRouterServesPage(t *testing.T) {
	router := NewRouter(chat.New(chat.Options{Endpoint: "http://127.0.0.1:5000/chat"}, zerolog.Nop()), zerolog.Nop())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `id="chat-log"`)
}

func TestRouterUnknownRoute(t *testing.T) {
	router := NewRouter(chat.New(chat.Options{}, zerolog.Nop()), zerolog.Nop())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/chat", nil))

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestRouterErrorsCarryRequestID(t *testing.T) {
	router := NewRouter(chat.New(chat.Options{}, zerolog.Nop()), zerolog.Nop())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/static/widget.wasm", nil))

	assert.Equal(t, http.StatusNotFound, resp.Code)
	var body utils.ErrorBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "assets directory not configured", body.Error)
	assert.NotEmpty(t, body.RequestID)
}
