package publishcmd

import "testing"

func TestPublishPathCommandValidateRequiresPath(t *testing.T) {
	cmd := PublishPathCommand{}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when path missing")
	}

	cmd.Path = "   "
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when path is blank")
	}

	cmd.Path = "posts"
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected error when path provided: %v", err)
	}
}

func TestDeletePostCommandValidateRequiresSlug(t *testing.T) {
	cmd := DeletePostCommand{}
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected error when slug missing")
	}

	cmd.Slug = "hello-world"
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected error when slug provided: %v", err)
	}
}

func TestListPostsCommandValidateLimit(t *testing.T) {
	if err := (ListPostsCommand{Limit: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative limit")
	}
	if err := (ListPostsCommand{Limit: MaxListLimit + 1}).Validate(); err == nil {
		t.Fatal("expected error for limit above maximum")
	}
	if err := (ListPostsCommand{Limit: 100}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
