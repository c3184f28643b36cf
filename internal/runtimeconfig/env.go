package runtimeconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAPIURL           = "DASHBOARD_API_URL"
	EnvBlogAPIKey       = "BLOG_API_KEY"
	EnvDashboardAPIKey  = "DASHBOARD_API_KEY"
	EnvAPITimeout       = "BLOG_API_TIMEOUT"
	EnvListRequiresAuth = "BLOG_LIST_REQUIRES_AUTH"
	EnvListLimit        = "BLOG_LIST_LIMIT"
	EnvWordsPerMinute   = "BLOG_WORDS_PER_MINUTE"
	EnvHighlightStyle   = "BLOG_HIGHLIGHT_STYLE"
	EnvLogProvider      = "BLOG_LOG_PROVIDER"
	EnvLogLevel         = "BLOG_LOG_LEVEL"
	EnvLogFormat        = "BLOG_LOG_FORMAT"
)

// DefaultEnvFile is loaded when present; its absence is not an error.
const DefaultEnvFile = ".env"

// LookupFunc resolves an environment variable, matching os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnvFile populates the process environment from a dotenv file without
// overriding variables that are already set. An empty path loads
// DefaultEnvFile when it exists.
func LoadEnvFile(path string) error {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// FromEnv builds a Config from DefaultConfig overlaid with environment values.
// A nil lookup reads the process environment.
func FromEnv(lookup LookupFunc) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		value, _ := lookup(key)
		return strings.TrimSpace(value)
	}

	cfg := DefaultConfig()
	cfg.API.BaseURL = get(EnvAPIURL)
	cfg.API.Key = get(EnvBlogAPIKey)
	if cfg.API.Key == "" {
		cfg.API.Key = get(EnvDashboardAPIKey)
	}

	if raw := get(EnvAPITimeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q", ErrAPITimeoutInvalid, EnvAPITimeout, raw)
		}
		cfg.API.Timeout = timeout
	}
	if raw := get(EnvListRequiresAuth); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("blogpub config: %s must be a boolean, got %q", EnvListRequiresAuth, raw)
		}
		cfg.API.ListRequiresAuth = enabled
	}
	if raw := get(EnvListLimit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q", ErrListLimitInvalid, EnvListLimit, raw)
		}
		cfg.API.ListLimit = limit
	}
	if raw := get(EnvWordsPerMinute); raw != "" {
		wpm, err := strconv.Atoi(raw)
		if err != nil {
			return cfg, fmt.Errorf("%w: %s=%q", ErrWordsPerMinuteInvalid, EnvWordsPerMinute, raw)
		}
		cfg.Markdown.WordsPerMinute = wpm
	}
	if style := get(EnvHighlightStyle); style != "" {
		cfg.Markdown.HighlightStyle = style
	}
	if provider := get(EnvLogProvider); provider != "" {
		cfg.Logging.Provider = provider
	}
	if level := get(EnvLogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := get(EnvLogFormat); format != "" {
		cfg.Logging.Format = format
	}

	return cfg, nil
}
