// Package server provides functionality for creating and running the search
// proxy without any dependencies on specific CLI or configuration systems.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/github/github-user-browser/internal/api"
	"github.com/github/github-user-browser/pkg/github"
	ghlog "github.com/github/github-user-browser/pkg/log"
	"github.com/sirupsen/logrus"
)

// Config holds all configuration options for the proxy server
type Config struct {
	Address         string
	GitHubHost      string
	SearchLimit     int
	PerPage         int
	FakeUpstream    bool
	ShutdownTimeout time.Duration
	LogFilePath     string
	LogLevel        string
	LogFormat       string
	LogOutput       io.Writer
	Version         string
}

// DefaultConfig creates a basic Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Address:         "localhost:8080",
		SearchLimit:     github.DefaultSearchLimit,
		PerPage:         github.DefaultPerPage,
		ShutdownTimeout: 30 * time.Second,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Server represents a proxy server that can be started and stopped
type Server struct {
	config  Config
	logger  *logrus.Logger
	closer  io.Closer
	handler http.Handler
}

// NewServer creates a new proxy server with the provided configuration
func NewServer(config Config) (*Server, error) {
	if config.SearchLimit <= 0 || config.PerPage <= 0 {
		return nil, errors.New("search limit and page size must be positive")
	}

	logger, closer, err := ghlog.New(ghlog.Options{
		FilePath: config.LogFilePath,
		Level:    config.LogLevel,
		Format:   config.LogFormat,
		Output:   config.LogOutput,
	})
	if err != nil {
		return nil, err
	}

	newAPI := github.ClientFactory(config.GitHubHost, ghlog.NewTransport(nil, logger))
	if config.FakeUpstream {
		newAPI = github.FakeFactory(github.NewFake())
	}

	return &Server{
		config: config,
		logger: logger,
		closer: closer,
		handler: api.NewRouter(newAPI, logger, api.Options{
			SearchLimit: config.SearchLimit,
			PerPage:     config.PerPage,
		}),
	}, nil
}

// Handler returns the HTTP handler serving the proxy routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then gives in-flight
// requests up to the shutdown timeout to complete.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.WithFields(logrus.Fields{
		"address": ln.Addr().String(),
		"version": s.config.Version,
		"fake":    s.config.FakeUpstream,
	}).Info("server starting")

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
		return nil
	}
}

// Close releases the log file, if any.
func (s *Server) Close() error {
	return s.closer.Close()
}

// RunServer is a convenience function that creates and starts a server in one
// call and closes it when done.
func RunServer(ctx context.Context, config Config) error {
	server, err := NewServer(config)
	if err != nil {
		return err
	}
	defer func() { _ = server.Close() }()
	return server.Start(ctx)
}

// ServerOption represents an option for configuring a proxy server
type ServerOption func(*Config)

// WithAddress sets the listen address
func WithAddress(address string) ServerOption {
	return func(c *Config) {
		c.Address = address
	}
}

// WithGitHubHost sets the GitHub host, for GitHub Enterprise
func WithGitHubHost(host string) ServerOption {
	return func(c *Config) {
		c.GitHubHost = host
	}
}

// WithSearchLimit sets how many users a search returns
func WithSearchLimit(limit int) ServerOption {
	return func(c *Config) {
		c.SearchLimit = limit
	}
}

// WithPerPage sets how many repositories a page holds
func WithPerPage(perPage int) ServerOption {
	return func(c *Config) {
		c.PerPage = perPage
	}
}

// WithFakeUpstream serves seeded data instead of calling GitHub
func WithFakeUpstream(fake bool) ServerOption {
	return func(c *Config) {
		c.FakeUpstream = fake
	}
}

// WithShutdownTimeout sets how long in-flight requests may take on shutdown
func WithShutdownTimeout(timeout time.Duration) ServerOption {
	return func(c *Config) {
		c.ShutdownTimeout = timeout
	}
}

// WithLogFilePath sets the log file path
func WithLogFilePath(logFilePath string) ServerOption {
	return func(c *Config) {
		c.LogFilePath = logFilePath
	}
}

// WithLogLevel sets the log level
func WithLogLevel(level string) ServerOption {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// WithLogFormat sets the log format, text or json
func WithLogFormat(format string) ServerOption {
	return func(c *Config) {
		c.LogFormat = format
	}
}

// WithLogOutput sets where logs go when no log file is configured
func WithLogOutput(w io.Writer) ServerOption {
	return func(c *Config) {
		c.LogOutput = w
	}
}

// WithVersion sets the version reported at startup
func WithVersion(version string) ServerOption {
	return func(c *Config) {
		c.Version = version
	}
}

// CreateServerWithOptions creates a new server with the provided options
func CreateServerWithOptions(options ...ServerOption) (*Server, error) {
	config := DefaultConfig()
	for _, option := range options {
		option(&config)
	}
	return NewServer(config)
}
