package markdown

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from source.
// YAML (---), TOML (+++) and JSON (;;;) blocks are recognised. A source
// without an opening delimiter yields empty metadata and the whole input as
// body.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from a path and its raw
// content.
func BuildDocument(path string, source []byte) (*interfaces.Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}
	return &interfaces.Document{
		FilePath:    path,
		FrontMatter: fm,
		Body:        body,
	}, nil
}

type frontMatterEnvelope struct {
	Title         string         `yaml:"title" toml:"title" json:"title"`
	Slug          string         `yaml:"slug" toml:"slug" json:"slug"`
	Category      string         `yaml:"category" toml:"category" json:"category"`
	Tags          tagList        `yaml:"tags" toml:"tags" json:"tags"`
	Excerpt       string         `yaml:"excerpt" toml:"excerpt" json:"excerpt"`
	Published     *bool          `yaml:"published" toml:"published" json:"published"`
	Date          any            `yaml:"date" toml:"date" json:"date"`
	FeaturedImage string         `yaml:"featured_image" toml:"featured_image" json:"featured_image"`
	Extra         map[string]any `yaml:",inline" toml:"-" json:"-"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	fm := interfaces.FrontMatter{
		Title:         strings.TrimSpace(env.Title),
		Slug:          strings.TrimSpace(env.Slug),
		Category:      strings.TrimSpace(env.Category),
		Tags:          env.Tags.values(),
		Excerpt:       strings.TrimSpace(env.Excerpt),
		FeaturedImage: strings.TrimSpace(env.FeaturedImage),
		Date:          toFrontMatterDate(env.Date),
		Extra:         cloneMap(env.Extra),
	}
	if env.Published != nil {
		published := *env.Published
		fm.Published = &published
	}
	return fm
}

// toFrontMatterDate keeps decoded timestamps (TOML datetimes) as time values
// and every other scalar as text. YAML timestamps arrive as strings.
func toFrontMatterDate(value any) interfaces.FrontMatterDate {
	switch v := value.(type) {
	case nil:
		return interfaces.FrontMatterDate{}
	case time.Time:
		return interfaces.FrontMatterDate{Time: v}
	case *time.Time:
		if v == nil {
			return interfaces.FrontMatterDate{}
		}
		return interfaces.FrontMatterDate{Time: *v}
	case string:
		return interfaces.FrontMatterDate{Text: strings.TrimSpace(v)}
	default:
		return interfaces.FrontMatterDate{Text: strings.TrimSpace(fmt.Sprint(v))}
	}
}

// tagList accepts either a sequence of tags or a single comma separated
// string.
type tagList []string

func (t *tagList) UnmarshalYAML(unmarshal func(any) error) error {
	var list []string
	if err := unmarshal(&list); err == nil {
		*t = list
		return nil
	}
	var single string
	if err := unmarshal(&single); err != nil {
		return fmt.Errorf("tags must be a list or a comma separated string: %w", err)
	}
	*t = splitTags(single)
	return nil
}

func (t *tagList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("tags must be a list or a comma separated string: %w", err)
	}
	*t = splitTags(single)
	return nil
}

func (t *tagList) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*t = splitTags(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		*t = out
	default:
		return fmt.Errorf("tags must be a list or a comma separated string, got %T", value)
	}
	return nil
}

func (t tagList) values() []string {
	out := make([]string, 0, len(t))
	for _, tag := range t {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func splitTags(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func cloneMap(input map[string]any) map[string]any {
	if len(input) == 0 {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
