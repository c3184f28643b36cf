// Package blogapi talks to the blog.php endpoint of the dashboard API.
package blogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blogpub/internal/failure"
	"github.com/goliatone/go-blogpub/internal/identity"
	"github.com/goliatone/go-blogpub/internal/logging"
	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

const (
	headerAPIKey         = "X-API-KEY"
	headerRequestID      = "X-Request-ID"
	headerIdempotencyKey = "X-Idempotency-Key"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "go-blogpub"
	maxResponseBytes = 10 << 20
)

var (
	// ErrAPIKeyMissing is returned by operations that need authentication
	// when the client was built without a key.
	ErrAPIKeyMissing = errors.New("blogapi: API key is required")
	// ErrSlugMissing is returned when delete is called with an empty slug.
	ErrSlugMissing = errors.New("blogapi: slug is required")
)

// Config configures a Client.
type Config struct {
	// BaseURL is the dashboard URL ending in /currency.php.
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// ListRequiresAuth sends the API key with list requests.
	ListRequiresAuth bool
	UserAgent        string
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
	Logger     interfaces.Logger
}

// Client implements interfaces.BlogClient over net/http. Requests are never
// retried.
type Client struct {
	endpoint         string
	apiKey           string
	listRequiresAuth bool
	userAgent        string
	http             *http.Client
	logger           interfaces.Logger
}

var _ interfaces.BlogClient = (*Client)(nil)

// NewClient derives the blog endpoint from cfg.BaseURL and prepares the client.
func NewClient(cfg Config) (*Client, error) {
	endpoint, err := DeriveEndpoint(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Client{
		endpoint:         endpoint,
		apiKey:           strings.TrimSpace(cfg.APIKey),
		listRequiresAuth: cfg.ListRequiresAuth,
		userAgent:        userAgent,
		http:             httpClient,
		logger:           logger,
	}, nil
}

// Endpoint returns the derived blog.php URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Create submits payload to the create action.
func (c *Client) Create(ctx context.Context, payload interfaces.Payload) (*interfaces.APIResult, error) {
	if c.apiKey == "" {
		return nil, failure.Config(ErrAPIKeyMissing)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, failure.Validation(err, failure.CodePayloadInvalid, "")
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set(headerAPIKey, c.apiKey)
	if key := identity.PostUUID(payload.Slug); key != uuid.Nil {
		headers.Set(headerIdempotencyKey, key.String())
	}

	logger := logging.WithPostContext(c.logger, "", payload.Slug, "create")
	resp, err := c.do(ctx, logger, http.MethodPost, actionURL(c.endpoint, "create", nil), headers, body)
	if err != nil {
		return nil, err
	}
	return interpretAction(resp)
}

// Delete removes the post identified by slug.
func (c *Client) Delete(ctx context.Context, slug string) (*interfaces.APIResult, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, failure.Validation(ErrSlugMissing, failure.CodePostInvalid, "")
	}
	if c.apiKey == "" {
		return nil, failure.Config(ErrAPIKeyMissing)
	}

	headers := http.Header{}
	headers.Set(headerAPIKey, c.apiKey)

	logger := logging.WithPostContext(c.logger, "", slug, "delete")
	target := actionURL(c.endpoint, "delete", url.Values{"slug": []string{slug}})
	resp, err := c.do(ctx, logger, http.MethodPost, target, headers, nil)
	if err != nil {
		return nil, err
	}
	return interpretAction(resp)
}

// List fetches up to limit post summaries.
func (c *Client) List(ctx context.Context, limit int) ([]interfaces.PostSummary, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	headers := http.Header{}
	if c.listRequiresAuth {
		if c.apiKey == "" {
			return nil, failure.Config(ErrAPIKeyMissing)
		}
		headers.Set(headerAPIKey, c.apiKey)
	}

	logger := logging.WithPostContext(c.logger, "", "", "posts")
	resp, err := c.do(ctx, logger, http.MethodGet, actionURL(c.endpoint, "posts", params), headers, nil)
	if err != nil {
		return nil, err
	}
	return interpretList(resp)
}

func (c *Client) do(ctx context.Context, logger interfaces.Logger, method, target string, headers http.Header, body []byte) (failure.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return failure.Response{}, failure.Network(fmt.Errorf("build request: %w", err), target)
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	requestID := identity.RequestID()
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	logger = logging.WithFields(logger, map[string]any{
		"request_id": requestID,
		"method":     method,
	})
	logger.Debug("api.request.start", "url", target)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("api.request.failed", "error", err)
		return failure.Response{}, failure.Network(err, target)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		logger.Error("api.response.read_failed", "error", err)
		return failure.Response{}, failure.Network(fmt.Errorf("read response: %w", err), target)
	}

	logger.Debug("api.request.completed",
		"status", resp.StatusCode,
		"bytes", len(data),
		"duration", time.Since(started).String(),
	)
	return toFailureResponse(resp, target, data), nil
}
