// Package publisher runs the per-file publishing pipeline: load, normalise,
// render, validate and send.
package publisher

import (
	"context"
	"errors"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blogpub/internal/failure"
	"github.com/goliatone/go-blogpub/internal/logging"
	"github.com/goliatone/go-blogpub/internal/markdown"
	"github.com/goliatone/go-blogpub/internal/posts"
	"github.com/goliatone/go-blogpub/internal/validation"
	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

// DocumentLoader discovers and reads Markdown sources.
type DocumentLoader interface {
	Discover(ctx context.Context, target string) (*markdown.Discovery, error)
	Load(ctx context.Context, path string) (*interfaces.Document, error)
}

// Config wires the collaborators of a Service.
type Config struct {
	Loader         DocumentLoader
	Renderer       interfaces.MarkdownRenderer
	Client         interfaces.BlogClient
	Logger         interfaces.Logger
	WordsPerMinute int
}

// Options adjusts a single publish run.
type Options struct {
	Draft bool
	// OnDiscovered, when set, is called once the target has been resolved.
	OnDiscovered func(*markdown.Discovery)
	// OnOutcome, when set, is called after each file is processed.
	OnOutcome func(Outcome)
}

// Service publishes Markdown files and proxies list and delete calls.
type Service struct {
	loader         DocumentLoader
	renderer       interfaces.MarkdownRenderer
	client         interfaces.BlogClient
	logger         interfaces.Logger
	wordsPerMinute int
}

// NewService constructs a Service. Loader, renderer and client are required.
func NewService(cfg Config) (*Service, error) {
	switch {
	case cfg.Loader == nil:
		return nil, errors.New("publisher: loader is required")
	case cfg.Renderer == nil:
		return nil, errors.New("publisher: renderer is required")
	case cfg.Client == nil:
		return nil, errors.New("publisher: blog client is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	wpm := cfg.WordsPerMinute
	if wpm <= 0 {
		wpm = markdown.DefaultWordsPerMinute
	}
	return &Service{
		loader:         cfg.Loader,
		renderer:       cfg.Renderer,
		client:         cfg.Client,
		logger:         logger,
		wordsPerMinute: wpm,
	}, nil
}

// PublishPath publishes every Markdown file selected by target. Individual
// file failures are recorded in the result and do not stop the walk; only a
// missing target or a cancelled context aborts the run.
func (s *Service) PublishPath(ctx context.Context, target string, opts Options) (*Result, error) {
	discovery, err := s.loader.Discover(ctx, target)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Target:  target,
		Draft:   opts.Draft,
		Skipped: append([]string(nil), discovery.Skipped...),
	}
	for _, skipped := range discovery.Skipped {
		s.logger.Info("publish.file.skipped", "path", skipped)
	}
	if opts.OnDiscovered != nil {
		opts.OnDiscovered(discovery)
	}

	for _, path := range discovery.Files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		outcome := s.PublishFile(ctx, path, opts)
		result.Outcomes = append(result.Outcomes, outcome)
		if opts.OnOutcome != nil {
			opts.OnOutcome(outcome)
		}
	}

	logging.WithFields(s.logger, map[string]any{
		"target":    target,
		"published": result.Published(),
		"failed":    result.Failed(),
		"skipped":   len(result.Skipped),
	}).Info("publish.run.completed")
	return result, nil
}

// PublishFile runs the full pipeline for a single file.
func (s *Service) PublishFile(ctx context.Context, path string, opts Options) Outcome {
	outcome := Outcome{Path: path}
	logger := logging.WithPostContext(s.logger, path, "", "create")

	post, err := s.preparePost(ctx, path, opts, logger)
	if post.Title != "" {
		outcome.Title = post.Title
		outcome.Slug = post.Slug
		outcome.Published = post.Published
	}
	if err != nil {
		outcome.Err = err
		logger.Warn("publish.file.failed", "error", err)
		return outcome
	}

	logger = logging.WithPostContext(logger, "", post.Slug, "")
	payload := posts.BuildPayload(post)
	if err := validation.ValidatePayload(payload, path); err != nil {
		outcome.Err = err
		logger.Warn("publish.file.failed", "error", err)
		return outcome
	}

	apiResult, err := s.client.Create(ctx, payload)
	if err != nil {
		outcome.Err = err
		logger.Warn("publish.file.failed", "error", err, "status", failure.StatusCode(err))
		return outcome
	}
	outcome.Result = apiResult
	logger.Info("publish.file.completed", "published", post.Published, "reading_time", post.ReadingTime)
	return outcome
}

func (s *Service) preparePost(ctx context.Context, path string, opts Options, logger interfaces.Logger) (interfaces.Post, error) {
	doc, err := s.loader.Load(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return interfaces.Post{}, err
		}
		return interfaces.Post{}, failure.Parse(err, path)
	}
	if len(doc.FrontMatter.Extra) > 0 {
		logger.Debug("publish.frontmatter.ignored_keys", "keys", strings.Join(sortedKeys(doc.FrontMatter.Extra), ","))
	}

	post, err := posts.Normalize(doc.FrontMatter, path, posts.Options{Draft: opts.Draft})
	if err != nil {
		return post, failure.Validation(err, failure.CodePostInvalid, path)
	}

	html, err := s.renderer.Render(doc.Body)
	if err != nil {
		return post, failure.Render(err, path)
	}
	post.ContentMarkdown = string(doc.Body)
	post.ContentHTML = string(html)
	post.ReadingTime = markdown.ReadingTime(doc.Body, s.wordsPerMinute)

	if err := posts.Validate(post); err != nil {
		return post, err
	}
	return post, nil
}

// Delete removes a post by slug.
func (s *Service) Delete(ctx context.Context, slug string) (*interfaces.APIResult, error) {
	result, err := s.client.Delete(ctx, slug)
	logger := logging.WithPostContext(s.logger, "", slug, "delete")
	if err != nil {
		logger.Warn("publish.delete.failed", "error", err)
		return nil, err
	}
	logger.Info("publish.delete.completed")
	return result, nil
}

// List returns up to limit post summaries from the server.
func (s *Service) List(ctx context.Context, limit int) ([]interfaces.PostSummary, error) {
	summaries, err := s.client.List(ctx, limit)
	if err != nil {
		s.logger.Warn("publish.list.failed", "error", err)
		return nil, err
	}
	s.logger.Debug("publish.list.completed", "count", len(summaries))
	return summaries, nil
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// IsUsageError reports whether err stems from bad input rather than a failed
// remote operation.
func IsUsageError(err error) bool {
	return errors.Is(err, markdown.ErrTargetNotFound) || goerrors.IsCategory(err, failure.CategoryConfig)
}
