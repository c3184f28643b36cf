package publisher

import "github.com/goliatone/go-blogpub/pkg/interfaces"

// Outcome is the result of publishing one file.
type Outcome struct {
	Path      string
	Title     string
	Slug      string
	Published bool
	Result    *interfaces.APIResult
	Err       error
}

// Succeeded reports whether the server accepted the post.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// DisplayTitle is the title when resolved, otherwise the source path.
func (o Outcome) DisplayTitle() string {
	if o.Title != "" {
		return o.Title
	}
	return o.Path
}

// Result aggregates a publish run.
type Result struct {
	Target   string
	Draft    bool
	Outcomes []Outcome
	Skipped  []string
}

// Published counts accepted posts.
func (r *Result) Published() int {
	if r == nil {
		return 0
	}
	count := 0
	for _, outcome := range r.Outcomes {
		if outcome.Succeeded() {
			count++
		}
	}
	return count
}

// Failed counts rejected or unprocessable posts.
func (r *Result) Failed() int {
	if r == nil {
		return 0
	}
	return len(r.Outcomes) - r.Published()
}
