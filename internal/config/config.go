// Package config gathers the runtime options of the browser from flags,
// environment variables and an optional .env file. It is imported by the
// command only; the rest of the code receives already-built values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, so per-page is read
// from GITHUB_USER_BROWSER_PER_PAGE.
const EnvPrefix = "GITHUB_USER_BROWSER"

// Config holds every option of the serve and browse commands.
type Config struct {
	// Proxy
	Address         string        `mapstructure:"address"`
	GitHubHost      string        `mapstructure:"host"` // --gh-host, GITHUB_USER_BROWSER_HOST
	SearchLimit     int           `mapstructure:"search-limit"`
	PerPage         int           `mapstructure:"per-page"`
	FakeUpstream    bool          `mapstructure:"fake-upstream"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`

	// Logging
	LogFile   string `mapstructure:"log-file"`
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`

	// Terminal browser
	APIURL   string        `mapstructure:"api-url"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// Defaults mirrors the flag defaults so that values set only through the
// environment are still picked up by Unmarshal.
var Defaults = map[string]any{
	"address":          "localhost:8080",
	"host":             "",
	"search-limit":     5,
	"per-page":         30,
	"fake-upstream":    false,
	"shutdown-timeout": 30 * time.Second,
	"log-file":         "",
	"log-level":        "info",
	"log-format":       "text",
	"api-url":          "http://localhost:8080",
	"debounce":         300 * time.Millisecond,
}

// Configure prepares v to read prefixed environment variables and registers
// the defaults.
func Configure(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}
}

// Load reads .env from the working directory when present, then decodes v
// into a validated Config.
func Load(v *viper.Viper) (Config, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	var cfg Config
	hook := mapstructure.ComposeDecodeHookFunc(
		trimSpaceHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(hook)); err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv exports the variables of each file that exists. Variables that
// are already set keep their value.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Validate reports every invalid option at once.
func (c Config) Validate() error {
	var errs []error
	if c.Address == "" {
		errs = append(errs, errors.New("address must not be empty"))
	}
	if c.SearchLimit <= 0 {
		errs = append(errs, fmt.Errorf("search-limit must be positive, got %d", c.SearchLimit))
	}
	if c.PerPage <= 0 || c.PerPage > 100 {
		errs = append(errs, fmt.Errorf("per-page must be between 1 and 100, got %d", c.PerPage))
	}
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce must not be negative, got %s", c.Debounce))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("shutdown-timeout must not be negative, got %s", c.ShutdownTimeout))
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log-format must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

func trimSpaceHook() mapstructure.DecodeHookFuncKind {
	return func(from, _ reflect.Kind, data any) (any, error) {
		if from != reflect.String {
			return data, nil
		}
		return strings.TrimSpace(data.(string)), nil
	}
}
