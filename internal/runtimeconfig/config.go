package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

var ErrAPIURLRequired = errors.New("blogpub config: DASHBOARD_API_URL is required")
var ErrAPIURLInvalid = errors.New("blogpub config: DASHBOARD_API_URL must be an absolute http(s) URL ending in /currency.php")
var ErrAPIKeyRequired = errors.New("blogpub config: BLOG_API_KEY (or DASHBOARD_API_KEY) is required")
var ErrAPITimeoutInvalid = errors.New("blogpub config: API timeout must be positive")
var ErrListLimitInvalid = fmt.Errorf("blogpub config: list limit must be between 1 and %d", MaxListLimit)
var ErrWordsPerMinuteInvalid = errors.New("blogpub config: words per minute must be positive")
var ErrLoggingProviderUnknown = errors.New("blogpub config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blogpub config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blogpub config: logging format is invalid")

// MaxListLimit bounds the number of posts a single list call may request.
const MaxListLimit = 1000

// LegacyEndpointFile is the final path segment DASHBOARD_API_URL must carry;
// the blog endpoint lives next to it.
const LegacyEndpointFile = "currency.php"

// Config is assembled once at startup and treated as immutable afterwards.
type Config struct {
	API      APIConfig
	Markdown MarkdownConfig
	Publish  PublishConfig
	Logging  LoggingConfig
}

// APIConfig describes how to reach the blog API.
type APIConfig struct {
	// BaseURL is the configured dashboard URL ending in /currency.php.
	BaseURL string
	Key     string
	Timeout time.Duration
	// ListRequiresAuth attaches the API key to list requests as well.
	ListRequiresAuth bool
	ListLimit        int
	UserAgent        string
}

// MarkdownConfig mirrors interfaces.RenderOptions plus reading time tuning.
type MarkdownConfig struct {
	Extensions     []string
	HardWraps      bool
	SafeMode       bool
	Highlight      bool
	HighlightStyle string
	Typographer    bool
	WordsPerMinute int
}

// PublishConfig controls file discovery for directory targets.
type PublishConfig struct {
	Recursive      bool
	FileExtensions []string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the defaults used when the environment is silent.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			Timeout:   30 * time.Second,
			ListLimit: 100,
			UserAgent: "go-blogpub",
		},
		Markdown: MarkdownConfig{
			HardWraps:      true,
			Highlight:      true,
			HighlightStyle: "github",
			Typographer:    true,
			WordsPerMinute: 200,
		},
		Publish: PublishConfig{
			Recursive:      true,
			FileExtensions: []string{".md", ".markdown"},
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks that every command needs. The API key
// is checked separately by RequireKey because listing may run without it.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		return ErrAPIURLRequired
	}
	if !isLegacyEndpoint(cfg.API.BaseURL) {
		return fmt.Errorf("%w: %s", ErrAPIURLInvalid, cfg.API.BaseURL)
	}
	if cfg.API.Timeout <= 0 {
		return ErrAPITimeoutInvalid
	}
	if cfg.API.ListLimit <= 0 || cfg.API.ListLimit > MaxListLimit {
		return fmt.Errorf("%w: %d", ErrListLimitInvalid, cfg.API.ListLimit)
	}
	if cfg.Markdown.WordsPerMinute <= 0 {
		return ErrWordsPerMinuteInvalid
	}
	provider := normalizeProvider(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// RequireKey reports ErrAPIKeyRequired when no API key is configured.
func (cfg Config) RequireKey() error {
	if strings.TrimSpace(cfg.API.Key) == "" {
		return ErrAPIKeyRequired
	}
	return nil
}

func isLegacyEndpoint(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if parsed.Host == "" {
		return false
	}
	return path.Base(parsed.Path) == LegacyEndpointFile
}

func normalizeProvider(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return "console"
	}
	return provider
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
