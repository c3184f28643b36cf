package di

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/goliatone/go-blogpub/internal/blogapi"
	publishcmd "github.com/goliatone/go-blogpub/internal/commands/publish"
	"github.com/goliatone/go-blogpub/internal/failure"
	"github.com/goliatone/go-blogpub/internal/logging"
	"github.com/goliatone/go-blogpub/internal/logging/console"
	"github.com/goliatone/go-blogpub/internal/logging/gologger"
	"github.com/goliatone/go-blogpub/internal/markdown"
	"github.com/goliatone/go-blogpub/internal/publisher"
	"github.com/goliatone/go-blogpub/internal/runtimeconfig"
	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

// Container wires the publishing services from a validated configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	httpClient     *http.Client
	output         io.Writer
	registry       publishcmd.CommandRegistry

	loader    publisher.DocumentLoader
	renderer  interfaces.MarkdownRenderer
	client    interfaces.BlogClient
	reporter  *publisher.Reporter
	publisher *publisher.Service
	handlers  *publishcmd.HandlerSet
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithHTTPClient overrides the transport used by the blog API client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) {
		c.httpClient = client
	}
}

// WithBlogClient replaces the blog API client entirely.
func WithBlogClient(client interfaces.BlogClient) Option {
	return func(c *Container) {
		c.client = client
	}
}

// WithRenderer replaces the goldmark renderer.
func WithRenderer(renderer interfaces.MarkdownRenderer) Option {
	return func(c *Container) {
		c.renderer = renderer
	}
}

// WithLoader replaces the filesystem loader.
func WithLoader(loader publisher.DocumentLoader) Option {
	return func(c *Container) {
		c.loader = loader
	}
}

// WithOutput sets the writer receiving user facing results. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Container) {
		c.output = w
	}
}

// WithCommandRegistry registers the command handlers with reg once built.
func WithCommandRegistry(reg publishcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, failure.Config(err)
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, failure.Config(err)
	}
	if c.output == nil {
		c.output = os.Stdout
	}

	if c.loader == nil {
		c.loader = markdown.NewLoader(markdown.LoaderConfig{
			Extensions: cfg.Publish.FileExtensions,
			Recursive:  cfg.Publish.Recursive,
		})
	}
	if c.renderer == nil {
		c.renderer = markdown.NewGoldmarkRenderer(interfaces.RenderOptions{
			Extensions:     cfg.Markdown.Extensions,
			HardWraps:      cfg.Markdown.HardWraps,
			SafeMode:       cfg.Markdown.SafeMode,
			Highlight:      cfg.Markdown.Highlight,
			HighlightStyle: cfg.Markdown.HighlightStyle,
			Typographer:    cfg.Markdown.Typographer,
		})
	}
	if c.client == nil {
		client, err := blogapi.NewClient(blogapi.Config{
			BaseURL:          cfg.API.BaseURL,
			APIKey:           cfg.API.Key,
			Timeout:          cfg.API.Timeout,
			ListRequiresAuth: cfg.API.ListRequiresAuth,
			UserAgent:        cfg.API.UserAgent,
			HTTPClient:       c.httpClient,
			Logger:           logging.APILogger(c.loggerProvider),
		})
		if err != nil {
			return nil, err
		}
		c.client = client
	}

	service, err := publisher.NewService(publisher.Config{
		Loader:         c.loader,
		Renderer:       c.renderer,
		Client:         c.client,
		Logger:         logging.PublisherLogger(c.loggerProvider),
		WordsPerMinute: cfg.Markdown.WordsPerMinute,
	})
	if err != nil {
		return nil, err
	}
	c.publisher = service
	c.reporter = publisher.NewReporter(c.output)

	handlers, err := publishcmd.RegisterPublishCommands(c.registry, c.publisher, c.reporter, c.loggerProvider)
	if err != nil {
		return nil, err
	}
	c.handlers = handlers

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger", "go-logger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	case "", "console":
		opts := console.Options{}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	default:
		return fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, c.Config.Logging.Provider)
	}
	return nil
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BlogClient returns the blog API client.
func (c *Container) BlogClient() interfaces.BlogClient {
	return c.client
}

// Renderer returns the Markdown renderer.
func (c *Container) Renderer() interfaces.MarkdownRenderer {
	return c.renderer
}

// Publisher returns the publishing service.
func (c *Container) Publisher() *publisher.Service {
	return c.publisher
}

// Reporter returns the result printer bound to the configured output.
func (c *Container) Reporter() *publisher.Reporter {
	return c.reporter
}

// Commands returns the publish, delete and list command handlers.
func (c *Container) Commands() *publishcmd.HandlerSet {
	return c.handlers
}
