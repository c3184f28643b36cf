package publishcmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	"github.com/goliatone/go-blogpub/internal/failure"
	"github.com/goliatone/go-blogpub/internal/markdown"
	"github.com/goliatone/go-blogpub/internal/publisher"
	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

type countingClient struct {
	mu      sync.Mutex
	creates map[string]int
	deletes map[string]int
	lists   int
	failFor map[string]error
}

func newCountingClient() *countingClient {
	return &countingClient{
		creates: map[string]int{},
		deletes: map[string]int{},
		failFor: map[string]error{},
	}
}

func (c *countingClient) Create(_ context.Context, payload interfaces.Payload) (*interfaces.APIResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.creates[payload.Slug]++
	if err := c.failFor[payload.Slug]; err != nil {
		return nil, err
	}
	return &interfaces.APIResult{StatusCode: 200}, nil
}

func (c *countingClient) Delete(_ context.Context, slug string) (*interfaces.APIResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes[slug]++
	if err := c.failFor[slug]; err != nil {
		return nil, err
	}
	return &interfaces.APIResult{StatusCode: 200}, nil
}

func (c *countingClient) List(context.Context, int) ([]interfaces.PostSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists++
	return nil, failure.Network(errors.New("connection refused"), "http://blog.test/blog.php")
}

func newDispatchedHandlers(t *testing.T, client *countingClient) {
	t.Helper()
	service, err := publisher.NewService(publisher.Config{
		Loader:   markdown.NewLoader(markdown.LoaderConfig{Recursive: true}),
		Renderer: markdown.NewGoldmarkRenderer(interfaces.RenderOptions{}),
		Client:   client,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	set, err := RegisterPublishCommands(nil, service, &recordingPresenter{}, nil)
	if err != nil {
		t.Fatalf("RegisterPublishCommands: %v", err)
	}

	subs := []interface{ Unsubscribe() }{
		dispatcher.SubscribeCommand(set.Publish, runner.WithMaxRetries(0)),
		dispatcher.SubscribeCommand(set.Delete, runner.WithMaxRetries(0)),
		dispatcher.SubscribeCommand(set.List, runner.WithMaxRetries(0)),
	}
	t.Cleanup(func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	})
}

func TestDispatchedPublishSendsOneCreatePerFile(t *testing.T) {
	client := newCountingClient()
	client.failFor["beta"] = failure.HTTP(failure.Response{StatusCode: 500, Status: "Internal Server Error"}, "db down")
	newDispatchedHandlers(t, client)

	dir := t.TempDir()
	for name, title := range map[string]string{"a.md": "Alpha", "b.md": "Beta", "c.md": "Gamma"} {
		content := "---\ntitle: " + title + "\n---\nbody\n"
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	err := dispatcher.Dispatch(context.Background(), PublishPathCommand{Path: dir})
	if err == nil {
		t.Fatal("expected dispatch error when one post fails")
	}
	for _, slug := range []string{"alpha", "beta", "gamma"} {
		if got := client.creates[slug]; got != 1 {
			t.Fatalf("expected exactly one create for %s, got %d", slug, got)
		}
	}
}

func TestDispatchedDeleteIsNotRetried(t *testing.T) {
	client := newCountingClient()
	client.failFor["ghost"] = failure.HTTP(failure.Response{StatusCode: 404, Status: "Not Found"}, "Post not found")
	newDispatchedHandlers(t, client)

	if err := dispatcher.Dispatch(context.Background(), DeletePostCommand{Slug: "ghost"}); err == nil {
		t.Fatal("expected dispatch error for missing post")
	}
	if got := client.deletes["ghost"]; got != 1 {
		t.Fatalf("expected exactly one delete call, got %d", got)
	}
}

func TestDispatchedListIsNotRetried(t *testing.T) {
	client := newCountingClient()
	newDispatchedHandlers(t, client)

	if err := dispatcher.Dispatch(context.Background(), ListPostsCommand{Limit: 10}); err == nil {
		t.Fatal("expected dispatch error for network failure")
	}
	if client.lists != 1 {
		t.Fatalf("expected exactly one list call, got %d", client.lists)
	}
}
