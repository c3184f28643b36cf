package markdown

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

// HighlightClass wraps highlighted code blocks so existing stylesheets for
// the blog keep matching.
const HighlightClass = "highlight"

// GoldmarkRenderer implements interfaces.MarkdownRenderer with goldmark. The
// engine is built once and is safe for reuse across files.
type GoldmarkRenderer struct {
	engine goldmark.Markdown
	opts   interfaces.RenderOptions
}

var _ interfaces.MarkdownRenderer = (*GoldmarkRenderer)(nil)

// NewGoldmarkRenderer constructs a renderer for the supplied options.
func NewGoldmarkRenderer(opts interfaces.RenderOptions) *GoldmarkRenderer {
	return &GoldmarkRenderer{
		engine: newGoldmarkEngine(opts),
		opts:   opts,
	}
}

// Options returns the options the renderer was built with.
func (r *GoldmarkRenderer) Options() interfaces.RenderOptions {
	return r.opts
}

// Render converts markdown to HTML.
func (r *GoldmarkRenderer) Render(markdown []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

func newGoldmarkEngine(opts interfaces.RenderOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}
	if opts.Highlight {
		exts = append(exts, newHighlighter(opts.HighlightStyle))
	}

	rendererOptions := []renderer.Option{gmhtml.WithXHTML()}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, gmhtml.WithHardWraps())
	}
	if !opts.SafeMode {
		rendererOptions = append(rendererOptions, gmhtml.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
		goldmark.WithExtensions(exts...),
	)
}

func newHighlighter(style string) goldmark.Extender {
	if strings.TrimSpace(style) == "" {
		style = "github"
	}
	return highlighting.NewHighlighting(
		highlighting.WithStyle(style),
		highlighting.WithGuessLanguage(true),
		highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		highlighting.WithWrapperRenderer(wrapCodeBlock),
	)
}

// wrapCodeBlock emits <div class="highlight language-x"> around chroma output
// so the fence language stays visible in the markup.
func wrapCodeBlock(w util.BufWriter, ctx highlighting.CodeBlockContext, entering bool) {
	if !entering {
		_, _ = w.WriteString("</div>\n")
		return
	}
	class := HighlightClass
	if lang, ok := ctx.Language(); ok && len(lang) > 0 {
		class += " language-" + html.EscapeString(string(lang))
	}
	_, _ = w.WriteString(`<div class="` + class + `">`)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// defaultExtensions enables GFM with footnotes and definition lists.
func defaultExtensions() []goldmark.Extender {
	return []goldmark.Extender{
		extension.GFM,
		extension.Footnote,
		extension.DefinitionList,
	}
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return defaultExtensions()
	}

	var extenders []goldmark.Extender
	seen := map[goldmark.Extender]struct{}{}

	for _, name := range names {
		ext, ok := extensionRegistry[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}
		// Aliases resolve to the same extender; register it once.
		if _, dup := seen[ext]; dup {
			continue
		}
		extenders = append(extenders, ext)
		seen[ext] = struct{}{}
	}

	return extenders
}
