package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/github/github-user-browser/internal/config"
	"github.com/github/github-user-browser/pkg/browser"
	ghlog "github.com/github/github-user-browser/pkg/log"
	"github.com/github/github-user-browser/pkg/server"
	"github.com/github/github-user-browser/pkg/tui"
	"github.com/github/github-user-browser/pkg/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	rootCmd = &cobra.Command{
		Use:     "github-user-browser",
		Short:   "GitHub user search and repository browser",
		Long:    `Search GitHub users and browse their public repositories through a small JSON proxy in front of the GitHub REST API.`,
		Version: buildInfo.String(),
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the search proxy",
		Long:  `Start an HTTP server exposing /api/users and /api/users/{username}/repos, backed by the GitHub REST API.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := server.CreateServerWithOptions(serverOptions(cfg)...)
			if err != nil {
				return err
			}
			defer func() { _ = srv.Close() }()

			fmt.Fprintf(os.Stderr, "GitHub user browser proxy running on %s\n", cfg.Address)
			return srv.Start(ctx)
		},
	}

	browseCmd = &cobra.Command{
		Use:   "browse",
		Short: "Browse users and repositories in the terminal",
		Long:  `Start an interactive terminal browser that talks to a running proxy, or to an in-process one with --fake-upstream.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			return runBrowser(cmd.Context(), cfg)
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.SetGlobalNormalizationFunc(wordSepNormalizeFunc)

	rootCmd.SetVersionTemplate("{{.Short}}\n{{.Version}}\n")

	// Add global flags that will be shared by all commands
	rootCmd.PersistentFlags().String("log-file", "", "Path to log file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
	rootCmd.PersistentFlags().String("gh-host", "", "Specify the GitHub hostname (for GitHub Enterprise etc.)")
	rootCmd.PersistentFlags().Bool("fake-upstream", false, "Serve seeded users and repositories instead of calling GitHub")

	// Bind flag to viper
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("host", rootCmd.PersistentFlags().Lookup("gh-host"))
	_ = viper.BindPFlag("fake-upstream", rootCmd.PersistentFlags().Lookup("fake-upstream"))

	// Setup flags for serve command
	serveCmd.Flags().String("address", "localhost:8080", "Address to listen on")
	serveCmd.Flags().Int("search-limit", 5, "Maximum number of users returned by a search")
	serveCmd.Flags().Int("per-page", 30, "Number of repositories per page")
	serveCmd.Flags().Duration("shutdown-timeout", 30*time.Second, "Time allowed for in-flight requests on shutdown")

	_ = viper.BindPFlag("address", serveCmd.Flags().Lookup("address"))
	_ = viper.BindPFlag("search-limit", serveCmd.Flags().Lookup("search-limit"))
	_ = viper.BindPFlag("per-page", serveCmd.Flags().Lookup("per-page"))
	_ = viper.BindPFlag("shutdown-timeout", serveCmd.Flags().Lookup("shutdown-timeout"))

	// Setup flags for browse command
	browseCmd.Flags().String("api-url", "http://localhost:8080", "Base URL of the search proxy")
	browseCmd.Flags().Duration("debounce", ui.DefaultDebounce, "Quiet period after typing before a search runs")

	_ = viper.BindPFlag("api-url", browseCmd.Flags().Lookup("api-url"))
	_ = viper.BindPFlag("debounce", browseCmd.Flags().Lookup("debounce"))

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(browseCmd)
}

func initConfig() {
	config.Configure(viper.GetViper())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func serverOptions(cfg config.Config) []server.ServerOption {
	return []server.ServerOption{
		server.WithAddress(cfg.Address),
		server.WithGitHubHost(cfg.GitHubHost),
		server.WithSearchLimit(cfg.SearchLimit),
		server.WithPerPage(cfg.PerPage),
		server.WithFakeUpstream(cfg.FakeUpstream),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
		server.WithLogFilePath(cfg.LogFile),
		server.WithLogLevel(cfg.LogLevel),
		server.WithLogFormat(cfg.LogFormat),
		server.WithVersion(buildInfo.version),
	}
}

// runBrowser runs the terminal browser until the user quits. Logs only go to
// the log file so they never draw over the terminal.
func runBrowser(ctx context.Context, cfg config.Config) error {
	logger, closer, err := ghlog.New(ghlog.Options{
		FilePath: cfg.LogFile,
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		Output:   io.Discard,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	apiURL := cfg.APIURL
	if cfg.FakeUpstream {
		apiURL, err = startEmbeddedProxy(ctx, cfg)
		if err != nil {
			return err
		}
		logger.WithField("url", apiURL).Info("using embedded proxy with fake upstream")
	}

	httpClient := &http.Client{
		Transport: ghlog.NewTransport(nil, logger),
		Timeout:   30 * time.Second,
	}
	store := ui.NewStore(browser.NewClient(apiURL, httpClient))

	program := tea.NewProgram(tui.NewModel(ctx, store, cfg.Debounce), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

// startEmbeddedProxy serves the proxy on a loopback port until ctx is done
// and returns its base URL.
func startEmbeddedProxy(ctx context.Context, cfg config.Config) (string, error) {
	cfg.FakeUpstream = true
	srv, err := server.CreateServerWithOptions(append(serverOptions(cfg), server.WithLogOutput(io.Discard))...)
	if err != nil {
		return "", err
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		_ = srv.Close()
		return "", fmt.Errorf("failed to start embedded proxy: %w", err)
	}

	go func() {
		defer func() { _ = srv.Close() }()
		_ = srv.Serve(ctx, ln)
	}()
	return "http://" + ln.Addr().String(), nil
}

func wordSepNormalizeFunc(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	from := []string{"_"}
	to := "-"
	for _, sep := range from {
		name = strings.ReplaceAll(name, sep, to)
	}
	return pflag.NormalizedName(name)
}
