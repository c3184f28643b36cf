package failure

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

var kindLabels = map[goerrors.Category]string{
	CategoryParse:          "parse error",
	CategoryValidation:     "validation error",
	CategoryServerResponse: "invalid server response",
	CategoryHTTP:           "HTTP error",
	CategoryNetwork:        "network error",
	CategoryConfig:         "configuration error",
	CategoryRejected:       "rejected by server",
}

var kindOrder = []goerrors.Category{
	CategoryConfig,
	CategoryParse,
	CategoryValidation,
	CategoryNetwork,
	CategoryServerResponse,
	CategoryHTTP,
	CategoryRejected,
}

// Kind returns a short human label for the error category, or "error" for
// values outside the taxonomy.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, category := range kindOrder {
		if goerrors.IsCategory(err, category) {
			return kindLabels[category]
		}
	}
	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return kindLabels[CategoryValidation]
	}
	if goerrors.IsCategory(err, goerrors.CategoryCommand) {
		return "command error"
	}
	return "error"
}

// StatusCode extracts the HTTP status carried by the error, or zero.
func StatusCode(err error) int {
	var e *goerrors.Error
	if errors.As(err, &e) && e != nil {
		return e.Code
	}
	return 0
}

// Metadata returns the diagnostic fields attached to the error.
func Metadata(err error) map[string]any {
	var e *goerrors.Error
	if errors.As(err, &e) && e != nil && len(e.Metadata) > 0 {
		out := make(map[string]any, len(e.Metadata))
		for key, value := range e.Metadata {
			out[key] = value
		}
		return out
	}
	return nil
}

// Cause returns the innermost error message, skipping the go-errors envelope.
func Cause(err error) string {
	if err == nil {
		return ""
	}
	var e *goerrors.Error
	if errors.As(err, &e) && e != nil && e.Source != nil {
		return Cause(e.Source)
	}
	return err.Error()
}
