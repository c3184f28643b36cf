package interfaces

import "time"

// MarkdownRenderer converts raw Markdown bytes into HTML. Implementations must
// be deterministic so re-publishing an unchanged file yields the same payload.
type MarkdownRenderer interface {
	Render(markdown []byte) ([]byte, error)
}

// RenderOptions customises Markdown rendering, keeping option names readable
// for configuration and CLI flags.
type RenderOptions struct {
	// Extensions lists goldmark extension names (gfm, table, footnote, ...).
	// An empty list selects the default publishing set.
	Extensions []string
	// HardWraps renders single newlines as <br>.
	HardWraps bool
	// SafeMode suppresses raw HTML embedded in the Markdown source.
	SafeMode bool
	// Highlight enables chroma syntax highlighting for fenced code blocks.
	Highlight bool
	// HighlightStyle names the chroma style used when highlighting.
	HighlightStyle string
	// Typographer converts straight quotes and dashes into typographic ones.
	Typographer bool
}

// Document represents a Markdown file with parsed metadata and content.
type Document struct {
	FilePath    string
	FrontMatter FrontMatter
	Body        []byte
}

// FrontMatter models the recognised metadata keys of a post. Every field is
// optional; absence is expressed by the zero value, except Published whose
// absence is meaningful and therefore uses a pointer.
type FrontMatter struct {
	Title         string
	Slug          string
	Category      string
	Tags          []string
	Excerpt       string
	Published     *bool
	Date          FrontMatterDate
	FeaturedImage string
	// Extra keeps unrecognised keys so callers can report them. They are
	// never forwarded to the API.
	Extra map[string]any
}

// FrontMatterDate captures a date value as it appeared in the metadata block:
// either a decoded timestamp or the raw text.
type FrontMatterDate struct {
	Time time.Time
	Text string
}

// IsZero reports whether no date was supplied.
func (d FrontMatterDate) IsZero() bool {
	return d.Time.IsZero() && d.Text == ""
}
