// Package failure defines the error taxonomy shared by the publishing
// pipeline. Every constructor returns a go-errors value tagged with one of the
// categories below so callers can branch with goerrors.IsCategory.
package failure

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	goerrors "github.com/goliatone/go-errors"
)

const (
	CategoryParse          goerrors.Category = "parse"
	CategoryValidation     goerrors.Category = "validation"
	CategoryServerResponse goerrors.Category = "server_response"
	CategoryHTTP           goerrors.Category = "http"
	CategoryNetwork        goerrors.Category = "network"
	CategoryConfig         goerrors.Category = "config"
	CategoryRejected       goerrors.Category = "rejected"
)

const (
	CodeFrontMatterInvalid = "FRONTMATTER_INVALID"
	CodeRenderFailed       = "MARKDOWN_RENDER_FAILED"
	CodePostInvalid        = "POST_INVALID"
	CodePayloadInvalid     = "PAYLOAD_INVALID"
	CodeResponseNotJSON    = "RESPONSE_NOT_JSON"
	CodeHTTPStatus         = "HTTP_STATUS_ERROR"
	CodeNetwork            = "NETWORK_ERROR"
	CodeConfigInvalid      = "CONFIG_INVALID"
	CodeRejected           = "REQUEST_REJECTED"
)

// SnippetLimit caps the response body excerpt carried by HTTP-derived errors.
const SnippetLimit = 800

// Parse reports a malformed metadata block or unreadable source file.
func Parse(err error, path string) error {
	return goerrors.Wrap(err, CategoryParse, "parse markdown file").
		WithTextCode(CodeFrontMatterInvalid).
		WithMetadata(map[string]any{"path": path})
}

// Render reports a Markdown rendering failure.
func Render(err error, path string) error {
	return goerrors.Wrap(err, CategoryParse, "render markdown").
		WithTextCode(CodeRenderFailed).
		WithMetadata(map[string]any{"path": path})
}

// Validation reports a post or payload that cannot be sent.
func Validation(err error, code string, path string) error {
	if code == "" {
		code = CodePostInvalid
	}
	return goerrors.Wrap(err, CategoryValidation, "validate post").
		WithTextCode(code).
		WithMetadata(map[string]any{"path": path})
}

// Config reports missing or inconsistent configuration.
func Config(err error) error {
	if goerrors.IsCategory(err, CategoryConfig) {
		return err
	}
	return goerrors.Wrap(err, CategoryConfig, "invalid configuration").
		WithTextCode(CodeConfigInvalid)
}

// Network reports a transport failure (dial, TLS, timeout).
func Network(err error, url string) error {
	return goerrors.Wrap(err, CategoryNetwork, "request failed").
		WithTextCode(CodeNetwork).
		WithMetadata(map[string]any{"url": url})
}

// Response carries the diagnostic context of an HTTP exchange.
type Response struct {
	StatusCode  int
	Status      string
	URL         string
	ContentType string
	Body        []byte
}

// ServerResponse reports a response body that is not valid JSON.
func ServerResponse(resp Response, cause error) error {
	if cause == nil {
		cause = errors.New("response body is not valid JSON")
	}
	return goerrors.Wrap(cause, CategoryServerResponse, fmt.Sprintf("invalid response (HTTP %d)", resp.StatusCode)).
		WithCode(resp.StatusCode).
		WithTextCode(CodeResponseNotJSON).
		WithMetadata(responseMetadata(resp))
}

// HTTP reports a client or server error status with a JSON body.
func HTTP(resp Response, message string) error {
	if strings.TrimSpace(message) == "" {
		message = "Unknown error"
	}
	return goerrors.Wrap(errors.New(message), CategoryHTTP, fmt.Sprintf("HTTP %d", resp.StatusCode)).
		WithCode(resp.StatusCode).
		WithTextCode(CodeHTTPStatus).
		WithMetadata(responseMetadata(resp))
}

// Rejected reports a 2xx JSON response whose application status is not success.
func Rejected(resp Response, message string) error {
	if strings.TrimSpace(message) == "" {
		message = "Unknown error"
	}
	return goerrors.Wrap(errors.New(message), CategoryRejected, "request rejected").
		WithCode(resp.StatusCode).
		WithTextCode(CodeRejected).
		WithMetadata(responseMetadata(resp))
}

// Snippet trims body and caps it at SnippetLimit bytes without splitting a
// UTF-8 sequence.
func Snippet(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) <= SnippetLimit {
		return trimmed
	}
	cut := SnippetLimit
	for cut > 0 && !utf8.RuneStart(trimmed[cut]) {
		cut--
	}
	return trimmed[:cut]
}

func responseMetadata(resp Response) map[string]any {
	meta := map[string]any{
		"status":       resp.StatusCode,
		"url":          resp.URL,
		"content_type": resp.ContentType,
		"body":         Snippet(resp.Body),
	}
	if resp.Status != "" {
		meta["reason"] = resp.Status
	}
	return meta
}
