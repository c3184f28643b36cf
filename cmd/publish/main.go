package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/cobra"

	blogpub "github.com/goliatone/go-blogpub"
	publishcmd "github.com/goliatone/go-blogpub/internal/commands/publish"
	"github.com/goliatone/go-blogpub/internal/di"
	"github.com/goliatone/go-blogpub/internal/failure"
	"github.com/goliatone/go-blogpub/internal/publisher"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var (
	moduleBuilder = blogpub.New
	configLoader  = blogpub.ConfigFromEnv
)

// usageError marks problems with the invocation itself.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

type cliOptions struct {
	envFile   string
	logLevel  string
	logFormat string
	timeout   time.Duration

	draft      bool
	list       bool
	limit      int
	deleteSlug string

	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &cliOptions{stdout: stdout, stderr: stderr}
	root := newRootCommand(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	var usage usageError
	if errors.As(err, &usage) {
		fmt.Fprintf(stderr, "Error: %v\n\n", usage.err)
		fmt.Fprint(stderr, root.UsageString())
		return exitUsage
	}
	if needsReport(err) {
		fmt.Fprintf(stdout, "Error: %s\n", failure.Cause(err))
	}
	return exitFailure
}

func newRootCommand(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish [path] [--draft] | --list [--limit N] | --delete <slug>",
		Short: "Publish Markdown posts to the blog API",
		Long: `publish converts Markdown files with YAML frontmatter to HTML and sends
them to the blog API derived from DASHBOARD_API_URL.

  publish post.md            publish a single file
  publish posts/             publish every .md/.markdown file under a directory
  publish posts/ --draft     save posts unpublished
  publish --list             list existing posts
  publish --delete <slug>    delete a post`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usagef("expected at most one path, got %d", len(args))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd, opts, args)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	flags := cmd.Flags()
	flags.BoolVar(&opts.draft, "draft", false, "Save posts as drafts (is_published=false)")
	flags.BoolVar(&opts.list, "list", false, "List existing posts")
	flags.IntVar(&opts.limit, "limit", 0, "Maximum number of posts to list (defaults to BLOG_LIST_LIMIT)")
	flags.StringVar(&opts.deleteSlug, "delete", "", "Delete the post with this slug")
	flags.StringVar(&opts.envFile, "env-file", "", "Dotenv file to load (defaults to .env when present)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format override for the gologger provider")
	flags.DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout override, for example 10s")

	return cmd
}

type mode int

const (
	modePublish mode = iota
	modeList
	modeDelete
)

func selectMode(cmd *cobra.Command, opts *cliOptions, args []string) (mode, string, error) {
	path := ""
	if len(args) == 1 {
		path = strings.TrimSpace(args[0])
	}
	deleting := cmd.Flags().Changed("delete")

	selected := 0
	for _, set := range []bool{path != "", opts.list, deleting} {
		if set {
			selected++
		}
	}
	if selected != 1 {
		return 0, "", usagef("specify exactly one of <path>, --list or --delete <slug>")
	}
	if opts.draft && path == "" {
		return 0, "", usagef("--draft only applies when publishing a path")
	}
	if cmd.Flags().Changed("limit") && !opts.list {
		return 0, "", usagef("--limit only applies with --list")
	}
	if opts.limit < 0 || opts.limit > publishcmd.MaxListLimit {
		return 0, "", usagef("--limit must be between 1 and %d", publishcmd.MaxListLimit)
	}
	if deleting && strings.TrimSpace(opts.deleteSlug) == "" {
		return 0, "", usagef("--delete requires a slug")
	}

	switch {
	case opts.list:
		return modeList, "", nil
	case deleting:
		return modeDelete, strings.TrimSpace(opts.deleteSlug), nil
	default:
		return modePublish, path, nil
	}
}

func execute(cmd *cobra.Command, opts *cliOptions, args []string) error {
	selected, target, err := selectMode(cmd, opts, args)
	if err != nil {
		return err
	}

	cfg, err := configLoader(opts.envFile)
	if err != nil {
		return failure.Config(err)
	}
	applyOverrides(&cfg, opts)
	if selected != modeList || cfg.API.ListRequiresAuth {
		if err := cfg.RequireKey(); err != nil {
			return failure.Config(err)
		}
	}

	module, err := moduleBuilder(cfg, di.WithOutput(opts.stdout))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	switch selected {
	case modeList:
		return module.List(ctx, opts.limit)
	case modeDelete:
		return module.Delete(ctx, target)
	default:
		return module.Publish(ctx, target, opts.draft)
	}
}

func applyOverrides(cfg *blogpub.Config, opts *cliOptions) {
	if level := strings.TrimSpace(opts.logLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.logFormat); format != "" {
		cfg.Logging.Format = format
	}
	if opts.timeout > 0 {
		cfg.API.Timeout = opts.timeout
	}
}

// needsReport reports whether err reached the CLI without being printed by
// the command presenter.
func needsReport(err error) bool {
	switch {
	case errors.Is(err, publishcmd.ErrPublishIncomplete):
		return false
	case publisher.IsUsageError(err):
		return true
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		return true
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return true
	default:
		return false
	}
}
