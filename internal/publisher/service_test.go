package publisher

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blogpub/internal/failure"
	"github.com/goliatone/go-blogpub/internal/markdown"
	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

type stubClient struct {
	created  []interfaces.Payload
	deleted  []string
	failFor  map[string]error
	listResp []interfaces.PostSummary
	listErr  error
}

func (s *stubClient) Create(_ context.Context, payload interfaces.Payload) (*interfaces.APIResult, error) {
	s.created = append(s.created, payload)
	if err := s.failFor[payload.Slug]; err != nil {
		return nil, err
	}
	return &interfaces.APIResult{StatusCode: 200, Message: "ok"}, nil
}

func (s *stubClient) Delete(_ context.Context, slug string) (*interfaces.APIResult, error) {
	s.deleted = append(s.deleted, slug)
	if err := s.failFor[slug]; err != nil {
		return nil, err
	}
	return &interfaces.APIResult{StatusCode: 200}, nil
}

func (s *stubClient) List(context.Context, int) ([]interfaces.PostSummary, error) {
	return s.listResp, s.listErr
}

func writePost(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func newTestService(t *testing.T, client *stubClient) *Service {
	t.Helper()
	service, err := NewService(Config{
		Loader:   markdown.NewLoader(markdown.LoaderConfig{Recursive: true}),
		Renderer: markdown.NewGoldmarkRenderer(interfaces.RenderOptions{Highlight: true}),
		Client:   client,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return service
}

const helloWorld = `---
title: Hello World
category: go
tags: [go, tutorial]
published: false
date: 2026-01-25
---
# Hello

Some *content* here.
`

func TestPublishFileHelloWorld(t *testing.T) {
	dir := t.TempDir()
	path := writePost(t, dir, "hello.md", helloWorld)
	client := &stubClient{}

	outcome := newTestService(t, client).PublishFile(context.Background(), path, Options{})
	if outcome.Err != nil {
		t.Fatalf("unexpected error: %v", outcome.Err)
	}
	if len(client.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(client.created))
	}

	payload := client.created[0]
	if payload.Slug != "hello-world" || payload.Title != "Hello World" || payload.Category != "go" {
		t.Fatalf("unexpected payload %+v", payload)
	}
	if payload.IsPublished {
		t.Fatalf("expected unpublished payload")
	}
	if payload.Date == nil || *payload.Date != "2026-01-25" {
		t.Fatalf("expected date 2026-01-25, got %v", payload.Date)
	}
	if len(payload.Tags) != 2 || payload.Tags[0] != "go" || payload.Tags[1] != "tutorial" {
		t.Fatalf("unexpected tags %v", payload.Tags)
	}
	if !strings.Contains(payload.Content, `<h1 id="hello">Hello</h1>`) || !strings.Contains(payload.Content, "<em>content</em>") {
		t.Fatalf("unexpected content %q", payload.Content)
	}
	if payload.ReadingTime != 1 {
		t.Fatalf("expected reading time 1, got %d", payload.ReadingTime)
	}
	if outcome.Published || outcome.Slug != "hello-world" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
}

func TestPublishFileAppliesDefaultsFromMinimalFrontMatter(t *testing.T) {
	dir := t.TempDir()
	path := writePost(t, dir, "hello.md", "---\ntitle: \"Hello World\"\ndate: 2026-01-25\n---\nHi there.\n")
	client := &stubClient{}

	outcome := newTestService(t, client).PublishFile(context.Background(), path, Options{})
	if outcome.Err != nil {
		t.Fatalf("unexpected error: %v", outcome.Err)
	}
	if len(client.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(client.created))
	}

	payload := client.created[0]
	if payload.Slug != "hello-world" {
		t.Fatalf("expected slug hello-world, got %q", payload.Slug)
	}
	if payload.Date == nil || *payload.Date != "2026-01-25" {
		t.Fatalf("expected date 2026-01-25, got %v", payload.Date)
	}
	if payload.Category != "general" {
		t.Fatalf("expected category general, got %q", payload.Category)
	}
	if !payload.IsPublished {
		t.Fatal("expected post to default to published")
	}
	if payload.Tags == nil || len(payload.Tags) != 0 {
		t.Fatalf("expected empty tag list, got %#v", payload.Tags)
	}
	if payload.FeaturedImage != nil || payload.Excerpt != "" {
		t.Fatalf("expected no featured image or excerpt, got %+v", payload)
	}
}

func TestPublishFileDraftOverride(t *testing.T) {
	dir := t.TempDir()
	path := writePost(t, dir, "live.md", "---\ntitle: Live\npublished: true\n---\nbody\n")
	client := &stubClient{}

	outcome := newTestService(t, client).PublishFile(context.Background(), path, Options{Draft: true})
	if outcome.Err != nil {
		t.Fatalf("unexpected error: %v", outcome.Err)
	}
	if client.created[0].IsPublished {
		t.Fatalf("expected draft to force is_published=false")
	}
}

func TestPublishPathContinuesAfterFailures(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "a-good.md", "---\ntitle: Good\n---\nfine\n")
	writePost(t, dir, "b-broken.md", "---\ntitle: [unclosed\n---\nbody\n")
	writePost(t, dir, "c-server.md", "---\ntitle: Server Down\n---\nbody\n")
	writePost(t, dir, "nested/d-later.md", "---\ntitle: Later\n---\nbody\n")
	writePost(t, dir, "notes.txt", "ignored")

	client := &stubClient{failFor: map[string]error{
		"server-down": failure.ServerResponse(failure.Response{StatusCode: 500, Body: []byte("<html>")}, nil),
	}}

	var streamed []string
	result, err := newTestService(t, client).PublishPath(context.Background(), dir, Options{
		OnOutcome: func(o Outcome) { streamed = append(streamed, filepath.Base(o.Path)) },
	})
	if err != nil {
		t.Fatalf("PublishPath: %v", err)
	}
	if result.Published() != 2 || result.Failed() != 2 {
		t.Fatalf("expected 2 published and 2 failed, got %d/%d", result.Published(), result.Failed())
	}

	want := []string{"a-good.md", "b-broken.md", "c-server.md", "d-later.md"}
	if strings.Join(streamed, ",") != strings.Join(want, ",") {
		t.Fatalf("expected lexical order %v, got %v", want, streamed)
	}

	broken := result.Outcomes[1]
	if !goerrors.IsCategory(broken.Err, failure.CategoryParse) {
		t.Fatalf("expected parse error for broken file, got %v", broken.Err)
	}
	server := result.Outcomes[2]
	if !goerrors.IsCategory(server.Err, failure.CategoryServerResponse) {
		t.Fatalf("expected server response error, got %v", server.Err)
	}
	if len(client.created) != 3 {
		t.Fatalf("expected create for every parsable file, got %d", len(client.created))
	}
}

func TestPublishPathSkipsNonMarkdownFile(t *testing.T) {
	dir := t.TempDir()
	path := writePost(t, dir, "image.png", "png")
	client := &stubClient{}

	result, err := newTestService(t, client).PublishPath(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("PublishPath: %v", err)
	}
	if len(result.Skipped) != 1 || result.Failed() != 0 || result.Published() != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestPublishPathMissingTarget(t *testing.T) {
	_, err := newTestService(t, &stubClient{}).PublishPath(context.Background(), filepath.Join(t.TempDir(), "nope"), Options{})
	if !errors.Is(err, markdown.ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}
	if !IsUsageError(err) {
		t.Fatalf("expected missing target to be a usage error")
	}
}

func TestPublishPathStopsOnCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "a.md", "---\ntitle: A\n---\n")
	writePost(t, dir, "b.md", "---\ntitle: B\n---\n")

	client := &stubClient{}
	service := newTestService(t, client)

	ctx, cancel := context.WithCancel(context.Background())
	result, err := service.PublishPath(ctx, dir, Options{OnOutcome: func(Outcome) { cancel() }})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(result.Outcomes) != 1 {
		t.Fatalf("expected walk to stop after first file, got %d outcomes", len(result.Outcomes))
	}
}

func TestPublishFileInvalidFeaturedImage(t *testing.T) {
	dir := t.TempDir()
	path := writePost(t, dir, "img.md", "---\ntitle: Image\nfeatured_image: not a url\n---\nbody\n")
	client := &stubClient{}

	outcome := newTestService(t, client).PublishFile(context.Background(), path, Options{})
	if !goerrors.IsCategory(outcome.Err, failure.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", outcome.Err)
	}
	if len(client.created) != 0 {
		t.Fatalf("expected no network call for invalid post")
	}
	if outcome.DisplayTitle() != "Image" {
		t.Fatalf("expected resolved title in outcome, got %q", outcome.DisplayTitle())
	}
}

func TestServiceDelete(t *testing.T) {
	notFound := failure.HTTP(failure.Response{StatusCode: 404, Status: "Not Found"}, "Post not found")
	client := &stubClient{failFor: map[string]error{"missing": notFound}}
	service := newTestService(t, client)

	if _, err := service.Delete(context.Background(), "present"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err := service.Delete(context.Background(), "missing")
	if !goerrors.IsCategory(err, failure.CategoryHTTP) {
		t.Fatalf("expected http error, got %v", err)
	}
	if strings.Join(client.deleted, ",") != "present,missing" {
		t.Fatalf("unexpected delete calls %v", client.deleted)
	}
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	if _, err := NewService(Config{}); err == nil {
		t.Fatalf("expected missing loader error")
	}
}

func TestReporterOutput(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	result := &Result{Outcomes: []Outcome{
		{Path: "a.md", Title: "Hello World", Slug: "hello-world", Published: true},
		{Path: "b.md", Title: "Draft Post", Slug: "draft-post"},
		{Path: "c.md", Title: "Broken", Err: failure.HTTP(failure.Response{StatusCode: 409, Status: "Conflict"}, "Slug already exists")},
		{Path: "e.md", Title: "Offline", Err: failure.Network(errors.New("dial tcp: connection refused"), "https://x/blog.php?action=create")},
		{Path: "d.md", Err: failure.ServerResponse(failure.Response{StatusCode: 500, Status: "Internal Server Error", URL: "https://x/blog.php?action=create", ContentType: "text/html"}, nil)},
	}}
	reporter.PublishStarted("posts", false)
	for _, outcome := range result.Outcomes {
		reporter.Outcome(outcome)
	}
	reporter.Summary(result)

	out := buf.String()
	for _, want := range []string{
		"Publishing post(s) from: posts\n\n",
		"✓ Published: Hello World (hello-world)\n",
		"✓ Draft: Draft Post (draft-post)\n",
		"✗ Failed: Broken\n  HTTP: 409 Conflict\n  Error: Slug already exists\n",
		"✗ Invalid response while publishing: d.md\n",
		"  HTTP: 500 Internal Server Error\n",
		"  URL: https://x/blog.php?action=create\n",
		"  Content-Type: text/html\n",
		"  Body: <empty response>\n",
		"✗ Network error while publishing: Offline\n  Error: dial tcp: connection refused\n",
		"\nResults: 2 published, 3 failed\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestReporterPosts(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	reporter.Posts([]interfaces.PostSummary{
		{Slug: "hello-world", Title: strings.Repeat("T", 50), Category: "go", PublishedAt: "2026-01-25 10:30:00"},
		{Slug: "draft", Title: "Draft", Category: "general"},
	})

	out := buf.String()
	if !strings.Contains(out, "SLUG") || !strings.Contains(out, strings.Repeat("-", 110)) {
		t.Fatalf("expected table header, got:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("T", 38)+"   go") || strings.Contains(out, strings.Repeat("T", 39)) {
		t.Fatalf("expected truncated title, got:\n%s", out)
	}
	if !strings.Contains(out, "2026-01-25\n") || !strings.Contains(out, "Draft\n") {
		t.Fatalf("expected date column, got:\n%s", out)
	}
	if !strings.Contains(out, "Total: 2 posts") {
		t.Fatalf("expected total, got:\n%s", out)
	}

	buf.Reset()
	reporter.Posts(nil)
	if buf.String() != "No posts found.\n" {
		t.Fatalf("unexpected empty output %q", buf.String())
	}
}

func TestReporterDeleted(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)
	reporter.Deleted("hello-world", nil)
	reporter.Deleted("missing", failure.HTTP(failure.Response{StatusCode: 404, Status: "Not Found"}, "Post not found"))

	out := buf.String()
	if !strings.Contains(out, "✓ Deleted: hello-world\n") {
		t.Fatalf("expected delete success line, got:\n%s", out)
	}
	if !strings.Contains(out, "✗ Failed to delete: missing\n  HTTP: 404 Not Found\n  Error: Post not found\n") {
		t.Fatalf("expected delete failure block, got:\n%s", out)
	}
}
