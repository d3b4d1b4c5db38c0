package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskPostsQuestion(t *testing.T) {
	var (
		gotMethod string
		gotType   string
		gotBody   map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"answer":"42"}`))
	}))
	defer srv.Close()

	answer, err := New(srv.URL).Ask(context.Background(), "Hello")
	require.NoError(t, err)

	assert.Equal(t, "42", answer)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, map[string]any{"question": "Hello"}, gotBody)
}

func TestAskAnswerShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "missing", body: `{}`, want: ""},
		{name: "null", body: `{"answer":null}`, want: ""},
		{name: "empty string", body: `{"answer":""}`, want: ""},
		{name: "false", body: `{"answer":false}`, want: ""},
		{name: "zero", body: `{"answer":0}`, want: ""},
		{name: "negative zero", body: `{"answer":-0.0}`, want: ""},
		{name: "number", body: `{"answer":42}`, want: "42"},
		{name: "integral float", body: `{"answer":1.0}`, want: "1"},
		{name: "exponent", body: `{"answer":1e2}`, want: "100"},
		{name: "fraction", body: `{"answer":0.5}`, want: "0.5"},
		{name: "huge", body: `{"answer":1e21}`, want: "1e+21"},
		{name: "tiny", body: `{"answer":1e-7}`, want: "1e-7"},
		{name: "true", body: `{"answer":true}`, want: "true"},
		{name: "array", body: `{"answer":[1,"two",null,[3,4],false]}`, want: "1,two,,3,4,false"},
		{name: "empty array", body: `{"answer":[]}`, want: ""},
		{name: "object", body: `{"answer":{"a":1}}`, want: "[object Object]"},
		{name: "extra fields", body: `{"answer":"yes","sources":["a"]}`, want: "yes"},
		{name: "array body", body: `["x"]`, want: ""},
		{name: "string body", body: `"hello"`, want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			answer, err := New(srv.URL).Ask(context.Background(), "q")
			require.NoError(t, err)
			assert.Equal(t, tc.want, answer)
		})
	}
}

func TestAskMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Ask(context.Background(), "q")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAskNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Ask(context.Background(), "q")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAskDecodesBodyWhateverTheStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "server error with answer", status: http.StatusInternalServerError, body: `{"answer":"from 500"}`, want: "from 500"},
		{name: "not found with error field", status: http.StatusNotFound, body: `{"error":"no route"}`, want: ""},
		{name: "bad request with number", status: http.StatusBadRequest, body: `{"answer":7}`, want: "7"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			answer, err := New(srv.URL).Ask(context.Background(), "q")
			require.NoError(t, err)
			assert.Equal(t, tc.want, answer)
		})
	}
}

func TestAskNonSuccessStatusWithUndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Ask(context.Background(), "q")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "<html>bad gateway</html>", statusErr.Body)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestAskConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Ask(context.Background(), "q")
	require.Error(t, err)
}

func TestAskHonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(srv.URL).Ask(ctx, "q")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewDefaultsEndpoint(t *testing.T) {
	assert.Equal(t, DefaultEndpoint, New("  ").Endpoint())
	assert.Equal(t, "http://example.test/chat", New("http://example.test/chat").Endpoint())
}
