package posts

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-blogpub/internal/failure"
	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

// Validate checks the invariants a post must satisfy before it is rendered
// into a payload. Failures are reported as validation errors.
func Validate(post interfaces.Post) error {
	image := ""
	if post.FeaturedImage != nil {
		image = *post.FeaturedImage
	}

	err := validation.Errors{
		"title": validation.Validate(strings.TrimSpace(post.Title), validation.Required),
		"slug": validation.Validate(post.Slug,
			validation.Required,
			validation.Match(slugPattern).Error("must be lowercase words separated by hyphens"),
		),
		"category":       validation.Validate(post.Category, validation.Required),
		"featured_image": validation.Validate(image, validation.By(validImageRef)),
		"reading_time":   validation.Validate(post.ReadingTime, validation.Min(0)),
	}.Filter()
	if err != nil {
		return failure.Validation(err, failure.CodePostInvalid, post.SourcePath)
	}
	return nil
}

// validImageRef accepts absolute URLs and site relative paths.
func validImageRef(value any) error {
	ref, _ := value.(string)
	if ref == "" || strings.HasPrefix(ref, "/") {
		return nil
	}
	return is.URL.Validate(ref)
}
