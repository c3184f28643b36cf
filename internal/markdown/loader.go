package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-blogpub/pkg/interfaces"
)

// ErrTargetNotFound is returned when the publish target does not exist.
var ErrTargetNotFound = errors.New("markdown loader: path not found")

// LoaderConfig configures how Markdown files are discovered.
type LoaderConfig struct {
	// Extensions lists accepted file suffixes, compared case-insensitively.
	// Defaults to .md and .markdown.
	Extensions []string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader discovers and reads Markdown files from the local filesystem.
type Loader struct {
	extensions []string
	recursive  bool
}

// Discovery lists the files selected for a target, in lexical path order.
// Skipped holds a file target whose extension is not accepted.
type Discovery struct {
	Files   []string
	Skipped []string
}

// NewLoader constructs a Loader.
func NewLoader(cfg LoaderConfig) *Loader {
	exts := make([]string, 0, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = []string{".md", ".markdown"}
	}
	return &Loader{extensions: exts, recursive: cfg.Recursive}
}

// Discover resolves target into the Markdown files to process. A directory
// is walked (recursively when configured); a file is returned as-is when its
// extension matches, otherwise it is reported as skipped.
func (l *Loader) Discover(ctx context.Context, target string) (*Discovery, error) {
	info, err := os.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, target)
		}
		return nil, fmt.Errorf("markdown loader stat %s: %w", target, err)
	}

	if !info.IsDir() {
		if l.accepts(target) {
			return &Discovery{Files: []string{target}}, nil
		}
		return &Discovery{Skipped: []string{target}}, nil
	}

	root := filepath.Clean(target)
	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if path != root && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if l.accepts(path) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("markdown loader walk %s: %w", root, walkErr)
	}

	sort.Strings(files)
	return &Discovery{Files: files}, nil
}

// Load reads path and parses its frontmatter.
func (l *Loader) Load(ctx context.Context, path string) (*interfaces.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", path, err)
	}
	return BuildDocument(path, data)
}

func (l *Loader) accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range l.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
