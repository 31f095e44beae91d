package log

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger() (*log.Logger, *bytes.Buffer) {
	var logBuffer bytes.Buffer
	logger := log.New()
	logger.SetOutput(&logBuffer)
	logger.SetLevel(log.DebugLevel)
	logger.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})
	return logger, &logBuffer
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestHTTPLogger(t *testing.T) {
	t.Run("LogRequest logs HTTP request details", func(t *testing.T) {
		logger, logBuffer := newBufferedLogger()
		httpLogger := NewHTTPLogger(logger)

		req, _ := http.NewRequest("GET", "https://api.github.com/search/users?q=octocat", nil)

		httpLogger.LogRequest(req)

		logOutput := logBuffer.String()
		assert.Contains(t, logOutput, "method=GET")
		assert.Contains(t, logOutput, "https://api.github.com/search/users?q=octocat")
		assert.Contains(t, logOutput, "host=api.github.com")
		assert.Contains(t, logOutput, "path=/search/users")
		assert.Contains(t, logOutput, "HTTP request")
	})

	t.Run("LogResponse logs successful HTTP response details", func(t *testing.T) {
		logger, logBuffer := newBufferedLogger()
		httpLogger := NewHTTPLogger(logger)

		req, _ := http.NewRequest("GET", "https://api.github.com/users/octocat/repos", nil)
		header := http.Header{}
		header.Set("X-RateLimit-Remaining", "59")
		res := &http.Response{
			StatusCode: 200,
			Request:    req,
			Header:     header,
		}

		httpLogger.LogResponse(req, res, nil, 150*time.Millisecond)

		logOutput := logBuffer.String()
		assert.Contains(t, logOutput, "method=GET")
		assert.Contains(t, logOutput, "https://api.github.com/users/octocat/repos")
		assert.Contains(t, logOutput, "status=200")
		assert.Contains(t, logOutput, "durationMs=150")
		assert.Contains(t, logOutput, "rateLimitRemaining=59")
		assert.Contains(t, logOutput, "HTTP response")
	})

	t.Run("LogResponse logs error HTTP response details", func(t *testing.T) {
		logger, logBuffer := newBufferedLogger()
		httpLogger := NewHTTPLogger(logger)

		req, _ := http.NewRequest("GET", "https://api.github.com/users/octocat/repos", nil)
		testErr := &url.Error{
			Op:  "Get",
			URL: "https://api.github.com/users/octocat/repos",
			Err: assert.AnError,
		}

		httpLogger.LogResponse(req, nil, testErr, 75*time.Millisecond)

		logOutput := logBuffer.String()
		assert.Contains(t, logOutput, "method=GET")
		assert.Contains(t, logOutput, "durationMs=75")
		assert.Contains(t, logOutput, "error=")
		assert.Contains(t, logOutput, "HTTP response error")
	})
}

func TestTransport(t *testing.T) {
	t.Run("logs and forwards a successful round trip", func(t *testing.T) {
		logger, logBuffer := newBufferedLogger()
		base := roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusTeapot, Header: http.Header{}, Request: r}, nil
		})

		client := &http.Client{Transport: NewTransport(base, logger)}
		res, err := client.Get("https://api.github.com/search/users?q=a")

		require.NoError(t, err)
		assert.Equal(t, http.StatusTeapot, res.StatusCode)
		logOutput := logBuffer.String()
		assert.Contains(t, logOutput, "HTTP request")
		assert.Contains(t, logOutput, "status=418")
	})

	t.Run("logs and returns transport errors", func(t *testing.T) {
		logger, logBuffer := newBufferedLogger()
		base := roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection reset")
		})

		req, _ := http.NewRequest("GET", "https://api.github.com/users/x/repos", nil)
		_, err := NewTransport(base, logger).RoundTrip(req)

		require.Error(t, err)
		assert.Contains(t, logBuffer.String(), "connection reset")
	})

	t.Run("nil base falls back to the default transport", func(t *testing.T) {
		logger, _ := newBufferedLogger()
		assert.Equal(t, http.DefaultTransport, NewTransport(nil, logger).base)
	})
}

func TestMiddleware(t *testing.T) {
	logger, logBuffer := newBufferedLogger()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(Middleware(logger))
	r.Get("/api/users", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"x"}`))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	logOutput := logBuffer.String()
	assert.Contains(t, logOutput, "method=GET")
	assert.Contains(t, logOutput, "path=/api/users")
	assert.Contains(t, logOutput, "status=400")
	assert.Contains(t, logOutput, "bytes=13")
	assert.Contains(t, logOutput, "request_id=")
	assert.Contains(t, logOutput, "request completed")

	logBuffer.Reset()
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Contains(t, logBuffer.String(), "status=200")
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var out bytes.Buffer
		logger, closer, err := New(Options{Output: &out})
		require.NoError(t, err)
		defer func() { _ = closer.Close() }()

		assert.Equal(t, log.InfoLevel, logger.GetLevel())
		logger.Info("hello")
		assert.Contains(t, out.String(), "msg=hello")
	})

	t.Run("json format and debug level", func(t *testing.T) {
		var out bytes.Buffer
		logger, closer, err := New(Options{Output: &out, Level: "debug", Format: "json"})
		require.NoError(t, err)
		defer func() { _ = closer.Close() }()

		assert.Equal(t, log.DebugLevel, logger.GetLevel())
		Component(logger, "ReposAPI").Error("User not found (status: 404)")
		assert.Contains(t, out.String(), `"component":"ReposAPI"`)
		assert.Contains(t, out.String(), `"msg":"User not found (status: 404)"`)
	})

	t.Run("log file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "browser.log")
		logger, closer, err := New(Options{FilePath: path})
		require.NoError(t, err)

		logger.Warn("written to file")
		require.NoError(t, closer.Close())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "written to file")
	})

	t.Run("invalid level", func(t *testing.T) {
		_, _, err := New(Options{Level: "loud"})
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, _, err := New(Options{Format: "xml"})
		assert.Error(t, err)
	})

	t.Run("unwritable log file", func(t *testing.T) {
		_, _, err := New(Options{FilePath: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
		assert.Error(t, err)
	})
}
