package blogapi

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/goliatone/go-blogpub/internal/failure"
)

const (
	legacyEndpointFile = "currency.php"
	blogEndpointFile   = "blog.php"
)

// ErrEndpointUnsupported is returned when the base URL does not end in the
// currency endpoint the blog endpoint is derived from.
var ErrEndpointUnsupported = errors.New("blogapi: base URL must end in /" + legacyEndpointFile)

// DeriveEndpoint replaces the final currency.php segment of base with
// blog.php. Query strings and fragments are dropped.
func DeriveEndpoint(base string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", failure.Config(fmt.Errorf("parse base URL: %w", err))
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", failure.Config(fmt.Errorf("%w: %q", ErrEndpointUnsupported, base))
	}
	if path.Base(parsed.Path) != legacyEndpointFile {
		return "", failure.Config(fmt.Errorf("%w: %q", ErrEndpointUnsupported, base))
	}

	parsed.Path = strings.TrimSuffix(parsed.Path, legacyEndpointFile) + blogEndpointFile
	parsed.RawPath = ""
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String(), nil
}

func actionURL(endpoint, action string, params url.Values) string {
	query := url.Values{}
	query.Set("action", action)
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	return endpoint + "?" + query.Encode()
}
