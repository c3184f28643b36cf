package interfaces

import "context"

// Post is the validated record produced by normalising a Markdown document.
type Post struct {
	Title           string
	Slug            string
	Category        string
	Tags            []string
	FeaturedImage   *string
	Excerpt         string
	Published       bool
	Date            *string
	ContentMarkdown string
	ContentHTML     string
	ReadingTime     int
	SourcePath      string
}

// Payload is the flat JSON record accepted by the blog API create action.
type Payload struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	FeaturedImage *string  `json:"featured_image"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	IsPublished   bool     `json:"is_published"`
	Date          *string  `json:"date"`
	ReadingTime   int      `json:"reading_time"`
}

// PostSummary is a single row returned by the list action.
type PostSummary struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	PublishedAt string `json:"published_at"`
}

// APIResult describes an accepted application-level response.
type APIResult struct {
	StatusCode int
	Message    string
	Body       map[string]any
}

// BlogClient performs the network calls against the blog API.
type BlogClient interface {
	Create(ctx context.Context, payload Payload) (*APIResult, error)
	Delete(ctx context.Context, slug string) (*APIResult, error)
	List(ctx context.Context, limit int) ([]PostSummary, error)
}
