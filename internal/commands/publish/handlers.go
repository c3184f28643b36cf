package publishcmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-blogpub/internal/commands"
	"github.com/goliatone/go-blogpub/internal/logging"
	"github.com/goliatone/go-blogpub/internal/markdown"
	"github.com/goliatone/go-blogpub/internal/publisher"
	"github.com/goliatone/go-blogpub/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	publishOperation = "publish.path"
	deleteOperation  = "publish.delete"
	listOperation    = "publish.list"
)

// ErrPublishIncomplete is returned when at least one file of a publish run failed.
var ErrPublishIncomplete = errors.New("publish command: one or more posts failed")

var (
	_ command.Commander[PublishPathCommand] = (*PublishPathHandler)(nil)
	_ command.Commander[DeletePostCommand]  = (*DeletePostHandler)(nil)
	_ command.Commander[ListPostsCommand]   = (*ListPostsHandler)(nil)
)

// PublishingService is the subset of publisher.Service used by the handlers.
type PublishingService interface {
	PublishPath(ctx context.Context, target string, opts publisher.Options) (*publisher.Result, error)
	Delete(ctx context.Context, slug string) (*interfaces.APIResult, error)
	List(ctx context.Context, limit int) ([]interfaces.PostSummary, error)
}

// Presenter renders command results for the user.
type Presenter interface {
	PublishStarted(target string, draft bool)
	Skipped(path string)
	Outcome(outcome publisher.Outcome)
	Summary(result *publisher.Result)
	Deleted(slug string, err error)
	Posts(summaries []interfaces.PostSummary)
	ListFailed(err error)
}

// PublishPathHandler publishes files through the shared command handler foundation.
type PublishPathHandler struct {
	inner *commands.Handler[PublishPathCommand]
}

// NewPublishPathHandler creates a handler bound to the supplied publishing service.
func NewPublishPathHandler(service PublishingService, presenter Presenter, logger interfaces.Logger, opts ...commands.HandlerOption[PublishPathCommand]) *PublishPathHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg PublishPathCommand) error {
		target := strings.TrimSpace(msg.Path)
		result, err := service.PublishPath(ctx, target, publisher.Options{
			Draft: msg.Draft,
			OnDiscovered: func(discovery *markdown.Discovery) {
				if presenter == nil {
					return
				}
				presenter.PublishStarted(target, msg.Draft)
				for _, skipped := range discovery.Skipped {
					presenter.Skipped(skipped)
				}
			},
			OnOutcome: func(outcome publisher.Outcome) {
				if presenter != nil {
					presenter.Outcome(outcome)
				}
			},
		})
		if err != nil && result == nil {
			return err
		}
		if presenter != nil {
			presenter.Summary(result)
		}
		if err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"published_count": result.Published(),
			"failed_count":    result.Failed(),
			"skipped_count":   len(result.Skipped),
			"draft":           msg.Draft,
		}).Info("publish.command.path.completed")

		if result.Failed() > 0 {
			return fmt.Errorf("%w: %d of %d", ErrPublishIncomplete, result.Failed(), len(result.Outcomes))
		}
		return nil
	}

	// A run spans many requests, each bounded by the HTTP client timeout.
	handlerOpts := []commands.HandlerOption[PublishPathCommand]{
		commands.WithTimeout[PublishPathCommand](0),
		commands.WithLogger[PublishPathCommand](baseLogger),
		commands.WithOperation[PublishPathCommand](publishOperation),
		commands.WithMessageFields(func(msg PublishPathCommand) map[string]any {
			fields := map[string]any{"path": msg.Path}
			if msg.Draft {
				fields["draft"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishPathCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishPathHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[PublishPathCommand].
func (h *PublishPathHandler) Execute(ctx context.Context, msg PublishPathCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeletePostHandler removes posts through the shared command handler foundation.
type DeletePostHandler struct {
	inner *commands.Handler[DeletePostCommand]
}

// NewDeletePostHandler creates a delete handler.
func NewDeletePostHandler(service PublishingService, presenter Presenter, logger interfaces.Logger, opts ...commands.HandlerOption[DeletePostCommand]) *DeletePostHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg DeletePostCommand) error {
		slug := strings.TrimSpace(msg.Slug)
		_, err := service.Delete(ctx, slug)
		if presenter != nil {
			presenter.Deleted(slug, err)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[DeletePostCommand]{
		commands.WithLogger[DeletePostCommand](baseLogger),
		commands.WithOperation[DeletePostCommand](deleteOperation),
		commands.WithMessageFields(func(msg DeletePostCommand) map[string]any {
			return map[string]any{"slug": msg.Slug}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeletePostCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeletePostHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeletePostCommand].
func (h *DeletePostHandler) Execute(ctx context.Context, msg DeletePostCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ListPostsHandler lists remote posts through the shared command handler foundation.
type ListPostsHandler struct {
	inner *commands.Handler[ListPostsCommand]
}

// NewListPostsHandler creates a list handler.
func NewListPostsHandler(service PublishingService, presenter Presenter, logger interfaces.Logger, opts ...commands.HandlerOption[ListPostsCommand]) *ListPostsHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ListPostsCommand) error {
		summaries, err := service.List(ctx, msg.Limit)
		if err != nil {
			if presenter != nil {
				presenter.ListFailed(err)
			}
			return err
		}
		if presenter != nil {
			presenter.Posts(summaries)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ListPostsCommand]{
		commands.WithLogger[ListPostsCommand](baseLogger),
		commands.WithOperation[ListPostsCommand](listOperation),
		commands.WithMessageFields(func(msg ListPostsCommand) map[string]any {
			return map[string]any{"limit": msg.Limit}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ListPostsCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ListPostsHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ListPostsCommand].
func (h *ListPostsHandler) Execute(ctx context.Context, msg ListPostsCommand) error {
	return h.inner.Execute(ctx, msg)
}
