package publishcmd

import (
	"errors"

	"github.com/goliatone/go-blogpub/internal/commands"
	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterPublishCommands.
type HandlerSet struct {
	Publish *PublishPathHandler
	Delete  *DeletePostHandler
	List    *ListPostsHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	publishHandlerOpts []commands.HandlerOption[PublishPathCommand]
	deleteHandlerOpts  []commands.HandlerOption[DeletePostCommand]
	listHandlerOpts    []commands.HandlerOption[ListPostsCommand]
}

// WithPublishHandlerOptions forwards options to the PublishPathHandler constructor.
func WithPublishHandlerOptions(opts ...commands.HandlerOption[PublishPathCommand]) Option {
	return func(cfg *options) {
		cfg.publishHandlerOpts = append(cfg.publishHandlerOpts, opts...)
	}
}

// WithDeleteHandlerOptions forwards options to the DeletePostHandler constructor.
func WithDeleteHandlerOptions(opts ...commands.HandlerOption[DeletePostCommand]) Option {
	return func(cfg *options) {
		cfg.deleteHandlerOpts = append(cfg.deleteHandlerOpts, opts...)
	}
}

// WithListHandlerOptions forwards options to the ListPostsHandler constructor.
func WithListHandlerOptions(opts ...commands.HandlerOption[ListPostsCommand]) Option {
	return func(cfg *options) {
		cfg.listHandlerOpts = append(cfg.listHandlerOpts, opts...)
	}
}

// RegisterPublishCommands builds the publish, delete and list handlers and
// registers them with reg when one is supplied.
func RegisterPublishCommands(reg CommandRegistry, service PublishingService, presenter Presenter, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("publish command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "publish")

	set := &HandlerSet{
		Publish: NewPublishPathHandler(service, presenter, logger, cfg.publishHandlerOpts...),
		Delete:  NewDeletePostHandler(service, presenter, logger, cfg.deleteHandlerOpts...),
		List:    NewListPostsHandler(service, presenter, logger, cfg.listHandlerOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Publish, set.Delete, set.List} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
