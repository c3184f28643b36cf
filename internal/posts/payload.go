package posts

import "github.com/goliatone/go-blogpub/pkg/interfaces"

// BuildPayload maps a post onto the create payload. The rendered HTML is sent
// as content; Markdown stays local.
func BuildPayload(post interfaces.Post) interfaces.Payload {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	return interfaces.Payload{
		Slug:          post.Slug,
		Title:         post.Title,
		Excerpt:       post.Excerpt,
		Content:       post.ContentHTML,
		FeaturedImage: post.FeaturedImage,
		Category:      post.Category,
		Tags:          tags,
		IsPublished:   post.Published,
		Date:          post.Date,
		ReadingTime:   post.ReadingTime,
	}
}
