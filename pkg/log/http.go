package log

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// HTTPLogger is a wrapper around logrus.Logger that logs upstream HTTP
// round trips.
type HTTPLogger struct {
	logger *log.Logger
}

// NewHTTPLogger creates a new HTTPLogger instance
func NewHTTPLogger(logger *log.Logger) *HTTPLogger {
	return &HTTPLogger{
		logger: logger,
	}
}

// LogRequest logs information about an HTTP request
func (l *HTTPLogger) LogRequest(req *http.Request) {
	l.logger.WithFields(log.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
		"host":   req.URL.Host,
		"path":   req.URL.Path,
	}).Debug("HTTP request")
}

// LogResponse logs information about an HTTP response
func (l *HTTPLogger) LogResponse(req *http.Request, res *http.Response, err error, duration time.Duration) {
	durationMs := duration / time.Millisecond

	fields := log.Fields{
		"method":     req.Method,
		"url":        req.URL.String(),
		"host":       req.URL.Host,
		"path":       req.URL.Path,
		"durationMs": int64(durationMs),
	}

	if err != nil {
		fields["error"] = err.Error()
		l.logger.WithFields(fields).Error("HTTP response error")
		return
	}

	fields["status"] = res.StatusCode
	if remaining := res.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		fields["rateLimitRemaining"] = remaining
	}
	l.logger.WithFields(fields).Info("HTTP response")
}

// Transport is an http.RoundTripper that logs every request and response
// through an HTTPLogger.
type Transport struct {
	base   http.RoundTripper
	logger *HTTPLogger
}

// NewTransport wraps base, or http.DefaultTransport when base is nil.
func NewTransport(base http.RoundTripper, logger *log.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		base:   base,
		logger: NewHTTPLogger(logger),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.logger.LogRequest(req)
	start := time.Now()
	res, err := t.base.RoundTrip(req)
	t.logger.LogResponse(req, res, err, time.Since(start))
	return res, err
}
