package publisher

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/araddon/dateparse"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blogpub/internal/failure"
	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

const (
	slugColumn     = 40
	titleColumn    = 40
	titleMaxRunes  = 38
	categoryColumn = 15
	tableRule      = 110
)

// Reporter renders user facing results as plain text.
type Reporter struct {
	out io.Writer
}

// NewReporter writes to out.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = io.Discard
	}
	return &Reporter{out: out}
}

// PublishStarted announces a publish run.
func (r *Reporter) PublishStarted(target string, draft bool) {
	kind := "post"
	if draft {
		kind = "draft"
	}
	r.printf("Publishing %s(s) from: %s\n\n", kind, target)
}

// Skipped notes a target ignored because of its extension.
func (r *Reporter) Skipped(path string) {
	r.printf("Skipping non-markdown file: %s\n", path)
}

// Outcome prints the result of one file.
func (r *Reporter) Outcome(outcome Outcome) {
	if outcome.Succeeded() {
		status := "Published"
		if !outcome.Published {
			status = "Draft"
		}
		r.printf("✓ %s: %s (%s)\n", status, outcome.Title, outcome.Slug)
		return
	}
	r.failure("publishing", "Failed", outcome.DisplayTitle(), outcome.Err)
}

// Summary prints the totals of a publish run.
func (r *Reporter) Summary(result *Result) {
	r.printf("\nResults: %d published, %d failed\n", result.Published(), result.Failed())
}

// Deleted prints the result of a delete call.
func (r *Reporter) Deleted(slug string, err error) {
	if err == nil {
		r.printf("✓ Deleted: %s\n", slug)
		return
	}
	r.failure("deleting", "Failed to delete", slug, err)
}

// Posts prints the list table.
func (r *Reporter) Posts(summaries []interfaces.PostSummary) {
	if len(summaries) == 0 {
		r.printf("No posts found.\n")
		return
	}

	r.printf("\n%-*s %-*s %-*s %s\n", slugColumn, "SLUG", titleColumn, "TITLE", categoryColumn, "CATEGORY", "DATE")
	r.printf("%s\n", strings.Repeat("-", tableRule))
	for _, post := range summaries {
		r.printf("%-*s %-*s %-*s %s\n",
			slugColumn, post.Slug,
			titleColumn, truncate(post.Title, titleMaxRunes),
			categoryColumn, post.Category,
			displayDate(post.PublishedAt),
		)
	}
	r.printf("\nTotal: %d posts\n", len(summaries))
}

// ListFailed prints a list error.
func (r *Reporter) ListFailed(err error) {
	if goerrors.IsCategory(err, failure.CategoryServerResponse) {
		r.printf("Error: server returned non-JSON response\n")
		r.responseDetails("", err)
		return
	}
	r.Error(err)
}

// Error prints a top level failure.
func (r *Reporter) Error(err error) {
	if err == nil {
		return
	}
	r.printf("Error: %s\n", describe(err))
}

func (r *Reporter) failure(verb, label, subject string, err error) {
	switch {
	case goerrors.IsCategory(err, failure.CategoryServerResponse):
		r.printf("✗ Invalid response while %s: %s\n", verb, subject)
		r.responseDetails("  ", err)
	case goerrors.IsCategory(err, failure.CategoryNetwork):
		r.printf("✗ Network error while %s: %s\n", verb, subject)
		r.printf("  Error: %s\n", failure.Cause(err))
	case goerrors.IsCategory(err, failure.CategoryHTTP), goerrors.IsCategory(err, failure.CategoryRejected):
		r.printf("✗ %s: %s\n", label, subject)
		r.printf("  HTTP: %s\n", statusLine(err))
		r.printf("  Error: %s\n", failure.Cause(err))
	default:
		r.printf("✗ %s: %s\n", label, subject)
		r.printf("  Error: %s\n", describe(err))
	}
}

func (r *Reporter) responseDetails(indent string, err error) {
	meta := failure.Metadata(err)
	body, _ := meta["body"].(string)
	if body == "" {
		body = "<empty response>"
	}
	r.printf("%sHTTP: %s\n", indent, statusLine(err))
	r.printf("%sURL: %v\n", indent, meta["url"])
	r.printf("%sContent-Type: %v\n", indent, meta["content_type"])
	r.printf("%sBody: %s\n", indent, body)
}

func (r *Reporter) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func statusLine(err error) string {
	code := failure.StatusCode(err)
	reason, _ := failure.Metadata(err)["reason"].(string)
	return strings.TrimSpace(fmt.Sprintf("%d %s", code, reason))
}

func describe(err error) string {
	kind := failure.Kind(err)
	cause := failure.Cause(err)
	if kind == "" || kind == "error" {
		return cause
	}
	return kind + ": " + cause
}

func truncate(value string, limit int) string {
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	return string([]rune(value)[:limit])
}

// displayDate renders the publication day, or Draft when the post has none.
func displayDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Draft"
	}
	if parsed, err := dateparse.ParseAny(value); err == nil {
		return parsed.Format("2006-01-02")
	}
	if len(value) > 10 {
		return value[:10]
	}
	return value
}
