package utils

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// ErrorBody 是错误响应的统一结构
type ErrorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// Responder 以 JSON 写回响应，编码失败记录到注入的日志
type Responder struct {
	logger zerolog.Logger
}

// NewResponder 创建响应写入器
func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger: logger}
}

// JSON 先完成编码再写状态码，编码失败时改写为 500
func (rs Responder) JSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		rs.logger.Error().Err(err).Str("path", r.URL.Path).Msg("[http] failed to encode response")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorBody{Error: "internal error", RequestID: middleware.GetReqID(r.Context())})
	}

	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		rs.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("[http] client went away")
	}
}

// Error 写回错误信息，并附带请求 ID 便于对照日志
func (rs Responder) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	rs.JSON(w, r, status, ErrorBody{Error: message, RequestID: middleware.GetReqID(r.Context())})
}
