package publishcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-blogpub/internal/runtimeconfig"
)

const (
	publishPathMessageType = "blogpub.publish.path"
	deletePostMessageType  = "blogpub.publish.delete"
	listPostsMessageType   = "blogpub.publish.list"
)

// MaxListLimit bounds the number of posts a single list call may request.
const MaxListLimit = runtimeconfig.MaxListLimit

// PublishPathCommand publishes a Markdown file or every Markdown file under
// a directory.
type PublishPathCommand struct {
	// Path selects the file or directory to publish.
	Path string `json:"path"`
	// Draft forces every post to be saved unpublished.
	Draft bool `json:"draft,omitempty"`
}

// Type implements command.Message.
func (PublishPathCommand) Type() string { return publishPathMessageType }

// Validate ensures a path is present before handlers execute.
func (cmd PublishPathCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blogpub.publish.path.path_required", "path is required")
			}
			return nil
		})),
	)
}

// DeletePostCommand removes a post by slug.
type DeletePostCommand struct {
	Slug string `json:"slug"`
}

// Type implements command.Message.
func (DeletePostCommand) Type() string { return deletePostMessageType }

// Validate ensures a slug is present.
func (cmd DeletePostCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Slug, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blogpub.publish.delete.slug_required", "slug is required")
			}
			return nil
		})),
	)
}

// ListPostsCommand fetches post summaries from the server.
type ListPostsCommand struct {
	Limit int `json:"limit"`
}

// Type implements command.Message.
func (ListPostsCommand) Type() string { return listPostsMessageType }

// Validate bounds the requested limit. Zero lets the server decide.
func (cmd ListPostsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Limit, validation.Min(0), validation.Max(MaxListLimit)),
	)
}
