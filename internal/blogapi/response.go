package blogapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-blogpub/internal/failure"
	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

func toFailureResponse(resp *http.Response, requestURL string, body []byte) failure.Response {
	return failure.Response{
		StatusCode:  resp.StatusCode,
		Status:      http.StatusText(resp.StatusCode),
		URL:         requestURL,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}
}

// interpretAction classifies a create/delete response. Only a 2xx JSON object
// flagged as successful is accepted.
func interpretAction(resp failure.Response) (*interfaces.APIResult, error) {
	var decoded map[string]any
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return nil, failure.ServerResponse(resp, err)
	}
	if decoded == nil {
		return nil, failure.ServerResponse(resp, errors.New("response body is not a JSON object"))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, failure.HTTP(resp, serverMessage(decoded, "error", "message"))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, failure.HTTP(resp, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
	if !isSuccess(decoded) {
		return nil, failure.Rejected(resp, serverMessage(decoded, "error", "message"))
	}

	return &interfaces.APIResult{
		StatusCode: resp.StatusCode,
		Message:    serverMessage(decoded, "message"),
		Body:       decoded,
	}, nil
}

// interpretList decodes a list response, accepting either a bare array of
// posts or an object carrying a posts array.
func interpretList(resp failure.Response) ([]interfaces.PostSummary, error) {
	trimmed := bytes.TrimSpace(resp.Body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, failure.HTTP(resp, "")
		}
		var posts []interfaces.PostSummary
		if err := json.Unmarshal(trimmed, &posts); err != nil {
			return nil, failure.ServerResponse(resp, err)
		}
		return nonNil(posts), nil
	}

	var envelope struct {
		Posts json.RawMessage `json:"posts"`
	}
	var decoded map[string]any
	if err := json.Unmarshal(trimmed, &decoded); err != nil || decoded == nil {
		if err == nil {
			err = errors.New("response body is not a JSON object")
		}
		return nil, failure.ServerResponse(resp, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, failure.HTTP(resp, serverMessage(decoded, "error", "message"))
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, failure.ServerResponse(resp, err)
	}
	if len(envelope.Posts) == 0 || string(envelope.Posts) == "null" {
		if _, flagged := decoded["success"]; flagged && !isSuccess(decoded) {
			return nil, failure.Rejected(resp, serverMessage(decoded, "error", "message"))
		}
		return []interfaces.PostSummary{}, nil
	}

	var posts []interfaces.PostSummary
	if err := json.Unmarshal(envelope.Posts, &posts); err != nil {
		return nil, failure.ServerResponse(resp, err)
	}
	return nonNil(posts), nil
}

func isSuccess(decoded map[string]any) bool {
	if flag, ok := decoded["success"].(bool); ok && flag {
		return true
	}
	if status, ok := decoded["status"].(string); ok {
		switch strings.ToLower(strings.TrimSpace(status)) {
		case "success", "ok":
			return true
		}
	}
	return false
}

func serverMessage(decoded map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := decoded[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func nonNil(posts []interfaces.PostSummary) []interfaces.PostSummary {
	if posts == nil {
		return []interfaces.PostSummary{}
	}
	return posts
}
