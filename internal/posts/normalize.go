package posts

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

// DefaultCategory is assigned to posts whose metadata omits a category.
const DefaultCategory = "general"

var (
	// ErrTitleRequired is returned when neither metadata nor file name yield a title.
	ErrTitleRequired = errors.New("posts: title could not be resolved")
	// ErrSlugRequired is returned when no slug can be derived.
	ErrSlugRequired = errors.New("posts: slug could not be resolved")
)

// Options adjusts normalisation for a single publish run.
type Options struct {
	// Draft forces the post to be unpublished regardless of its metadata.
	Draft bool
}

// Normalize resolves every post field from frontmatter, falling back to
// defaults derived from sourcePath. Content fields are left for the caller.
func Normalize(fm interfaces.FrontMatter, sourcePath string, opts Options) (interfaces.Post, error) {
	post := interfaces.Post{
		Title:      strings.TrimSpace(fm.Title),
		Category:   strings.TrimSpace(fm.Category),
		Excerpt:    strings.TrimSpace(fm.Excerpt),
		Published:  true,
		Date:       FormatDate(fm.Date),
		SourcePath: sourcePath,
	}

	if post.Title == "" {
		post.Title = titleFromPath(sourcePath)
	}
	if post.Title == "" {
		return interfaces.Post{}, ErrTitleRequired
	}

	if provided := strings.TrimSpace(fm.Slug); provided != "" {
		post.Slug = Slugify(provided)
	}
	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	if post.Slug == "" {
		return interfaces.Post{}, ErrSlugRequired
	}

	if post.Category == "" {
		post.Category = DefaultCategory
	}

	post.Tags = make([]string, 0, len(fm.Tags))
	for _, tag := range fm.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			post.Tags = append(post.Tags, tag)
		}
	}

	if fm.Published != nil {
		post.Published = *fm.Published
	}
	if opts.Draft {
		post.Published = false
	}

	if image := strings.TrimSpace(fm.FeaturedImage); image != "" {
		post.FeaturedImage = &image
	}

	return post, nil
}

// titleFromPath turns "my-first_post.md" into "My First Post".
func titleFromPath(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)

	words := strings.Fields(stem)
	for i, word := range words {
		r, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}
