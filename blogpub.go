// Package blogpub publishes Markdown posts with YAML frontmatter to the
// dashboard blog API.
package blogpub

import (
	"context"

	publishcmd "github.com/goliatone/go-blogpub/internal/commands/publish"
	"github.com/goliatone/go-blogpub/internal/di"
	"github.com/goliatone/go-blogpub/internal/publisher"
	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

// Post exports the normalised post record.
type Post = interfaces.Post

// Payload exports the create payload sent to the blog API.
type Payload = interfaces.Payload

// PostSummary exports a single row of the list response.
type PostSummary = interfaces.PostSummary

// BlogClient exports the blog API client contract.
type BlogClient = interfaces.BlogClient

// PublishResult exports the aggregate result of a publish run.
type PublishResult = publisher.Result

// Module represents the top level publishing façade.
type Module struct {
	container *di.Container
}

// New constructs a Module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Publish publishes the file or directory at path, printing one line per
// post. The error is non-nil when any post failed.
func (m *Module) Publish(ctx context.Context, path string, draft bool) error {
	return m.container.Commands().Publish.Execute(ctx, publishcmd.PublishPathCommand{
		Path:  path,
		Draft: draft,
	})
}

// Delete removes the post identified by slug.
func (m *Module) Delete(ctx context.Context, slug string) error {
	return m.container.Commands().Delete.Execute(ctx, publishcmd.DeletePostCommand{Slug: slug})
}

// List prints up to limit posts. A zero limit uses the configured default.
func (m *Module) List(ctx context.Context, limit int) error {
	if limit <= 0 {
		limit = m.container.Config.API.ListLimit
	}
	return m.container.Commands().List.Execute(ctx, publishcmd.ListPostsCommand{Limit: limit})
}
