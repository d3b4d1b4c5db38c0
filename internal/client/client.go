// Package client talks to the question-answering endpoint behind the widget.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultEndpoint is where the widget posts questions unless configured otherwise.
const DefaultEndpoint = "http://127.0.0.1:5000/chat"

// maxResponseBytes bounds how much of an answer body is read.
const maxResponseBytes = 1 << 20

// ErrMalformedResponse reports a body that is not JSON, or is JSON null.
var ErrMalformedResponse = errors.New("malformed chat response")

// StatusError reports a non-2xx answer whose body could not be decoded.
type StatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("chat endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("chat endpoint returned status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return e.Err }

type askRequest struct {
	Question string `json:"question"`
}

// Client posts questions to a single chat endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New builds a client for endpoint, falling back to DefaultEndpoint.
func New(endpoint string, opts ...Option) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL questions are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Ask posts the question and returns the answer field. An absent or falsy
// answer yields an empty string and no error. The body is decoded whatever
// the status code; a non-2xx response is only an error when it does not
// decode. Callers bound the request through ctx.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	payload, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return "", fmt.Errorf("encode question: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post question: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug().
		Str("endpoint", c.endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("[client] chat response")

	answer, err := decodeAnswer(body)
	if err != nil && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body)), Err: err}
	}
	return answer, err
}

func decodeAnswer(body []byte) (string, error) {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if parsed == nil {
		return "", fmt.Errorf("%w: null body", ErrMalformedResponse)
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		// Non-object bodies carry no answer field.
		return "", nil
	}
	return answerText(obj["answer"]), nil
}

// answerText converts the answer value to display text the way a browser
// would coerce it. Falsy values (missing, null, false, 0, "") become "".
func answerText(v any) string {
	if !truthy(v) {
		return ""
	}
	return coerce(v)
}

func truthy(v any) bool {
	switch a := v.(type) {
	case nil:
		return false
	case bool:
		return a
	case float64:
		return a != 0
	case string:
		return a != ""
	default:
		return true
	}
}

func coerce(v any) string {
	switch a := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(a)
	case float64:
		return formatNumber(a)
	case string:
		return a
	case []any:
		parts := make([]string, len(a))
		for i, elem := range a {
			parts[i] = coerce(elem)
		}
		return strings.Join(parts, ",")
	default:
		return "[object Object]"
	}
}

// formatNumber prints the shortest decimal form, switching to exponent
// notation outside [1e-6, 1e21).
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}
