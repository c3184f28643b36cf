package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	blogpub "github.com/goliatone/go-blogpub"
)

type recordedRequest struct {
	Action string
	Body   map[string]any
}

type fakeBlog struct {
	mu       sync.Mutex
	requests []recordedRequest
	handler  func(w http.ResponseWriter, action string, body map[string]any)
}

func (f *fakeBlog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	action := r.URL.Query().Get("action")
	var body map[string]any
	if r.Method == http.MethodPost && action == "create" {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Action: action, Body: body})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.handler != nil {
		f.handler(w, action, body)
		return
	}
	_, _ = w.Write([]byte(`{"success":true}`))
}

func (f *fakeBlog) snapshot() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func withFakeServer(t *testing.T, fake *fakeBlog, key string) {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	original := configLoader
	t.Cleanup(func() { configLoader = original })
	configLoader = func(string) (blogpub.Config, error) {
		cfg := blogpub.DefaultConfig()
		cfg.API.BaseURL = server.URL + "/api/currency.php"
		cfg.API.Key = key
		cfg.Logging.Level = "error"
		return cfg, nil
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunPublishesSingleFile(t *testing.T) {
	fake := &fakeBlog{}
	withFakeServer(t, fake, "secret")

	path := writeFile(t, t.TempDir(), "hello.md", "---\ntitle: Hello World\ntags: [a, b]\n---\n# Hi\n\nSome text.\n")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{path}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d\nstdout:\n%s\nstderr:\n%s", code, stdout.String(), stderr.String())
	}
	if !strings.Contains(stdout.String(), "✓ Published: Hello World (hello-world)") {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}

	requests := fake.snapshot()
	if len(requests) != 1 || requests[0].Action != "create" {
		t.Fatalf("expected one create request, got %+v", requests)
	}
	body := requests[0].Body
	if body["slug"] != "hello-world" || body["category"] != "general" || body["is_published"] != true {
		t.Fatalf("unexpected payload: %+v", body)
	}
}

func TestRunDraftFlagUnpublishes(t *testing.T) {
	fake := &fakeBlog{}
	withFakeServer(t, fake, "secret")

	path := writeFile(t, t.TempDir(), "note.md", "---\ntitle: Note\npublished: true\n---\nbody\n")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{path, "--draft"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d\n%s", code, stdout.String())
	}
	if !strings.Contains(stdout.String(), "✓ Draft: Note (note)") {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}
	if got := fake.snapshot()[0].Body["is_published"]; got != false {
		t.Fatalf("expected is_published false, got %v", got)
	}
}

func TestRunDirectoryWithFailuresExitsNonZero(t *testing.T) {
	fake := &fakeBlog{handler: func(w http.ResponseWriter, _ string, body map[string]any) {
		if body["slug"] == "bad" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"success":false,"error":"Duplicate slug"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}}
	withFakeServer(t, fake, "secret")

	dir := t.TempDir()
	writeFile(t, dir, "a.md", "---\ntitle: Alpha\n---\nalpha\n")
	writeFile(t, dir, "b.md", "---\ntitle: Bad\n---\nbad\n")
	writeFile(t, dir, "c.md", "---\ntitle: Gamma\n---\ngamma\n")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{dir}, &stdout, &stderr)
	if code != exitFailure {
		t.Fatalf("expected exit 1, got %d", code)
	}
	out := stdout.String()
	for _, want := range []string{
		"✓ Published: Alpha (alpha)",
		"✗ Failed: Bad\n  HTTP: 422 Unprocessable Entity\n  Error: Duplicate slug",
		"✓ Published: Gamma (gamma)",
		"Results: 2 published, 1 failed",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Error: publish command") {
		t.Fatalf("aggregate error should not be printed:\n%s", out)
	}
	if got := len(fake.snapshot()); got != 3 {
		t.Fatalf("expected 3 create requests, got %d", got)
	}
}

func TestRunDeleteNotFound(t *testing.T) {
	fake := &fakeBlog{handler: func(w http.ResponseWriter, _ string, _ map[string]any) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"Post not found"}`))
	}}
	withFakeServer(t, fake, "secret")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--delete", "ghost"}, &stdout, &stderr)
	if code != exitFailure {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stdout.String(), "✗ Failed to delete: ghost") {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}
	if requests := fake.snapshot(); len(requests) != 1 || requests[0].Action != "delete" {
		t.Fatalf("expected one delete request, got %+v", requests)
	}
}

func TestRunListWithoutKey(t *testing.T) {
	fake := &fakeBlog{handler: func(w http.ResponseWriter, _ string, _ map[string]any) {
		_, _ = w.Write([]byte(`[{"slug":"hello-world","title":"Hello World","category":"general","published_at":"2024-01-15 10:00:00"}]`))
	}}
	withFakeServer(t, fake, "")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"--list", "--limit", "5"}, &stdout, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d\n%s", code, stdout.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "hello-world") || !strings.Contains(out, "2024-01-15") || !strings.Contains(out, "Total: 1 posts") {
		t.Fatalf("unexpected list output:\n%s", out)
	}
}

func TestRunMissingPathReportsError(t *testing.T) {
	withFakeServer(t, &fakeBlog{}, "secret")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.md")}, &stdout, &stderr)
	if code != exitFailure {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stdout.String(), "Error: ") || !strings.Contains(stdout.String(), "path not found") {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}
}

func TestRunMissingKeyFailsBeforeNetwork(t *testing.T) {
	fake := &fakeBlog{}
	withFakeServer(t, fake, "")

	path := writeFile(t, t.TempDir(), "post.md", "# Post\n")

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{path}, &stdout, &stderr); code != exitFailure {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stdout.String(), "BLOG_API_KEY") {
		t.Fatalf("expected missing key message, got:\n%s", stdout.String())
	}
	if len(fake.snapshot()) != 0 {
		t.Fatal("expected no requests without an API key")
	}
}

func TestRunUsageErrors(t *testing.T) {
	withFakeServer(t, &fakeBlog{}, "secret")

	cases := map[string][]string{
		"no mode":            {},
		"path and list":      {"post.md", "--list"},
		"list and delete":    {"--list", "--delete", "x"},
		"draft without path": {"--list", "--draft"},
		"limit without list": {"post.md", "--limit", "3"},
		"two paths":          {"a.md", "b.md"},
		"unknown flag":       {"--nope"},
		"empty delete slug":  {"--delete", " "},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), args, &stdout, &stderr); code != exitUsage {
				t.Fatalf("expected exit 2, got %d\nstderr:\n%s", code, stderr.String())
			}
			if !strings.Contains(stderr.String(), "Usage:") {
				t.Fatalf("expected usage on stderr, got:\n%s", stderr.String())
			}
		})
	}
}
