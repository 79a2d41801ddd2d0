package include

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/valyala/fasttemplate"
	"golang.org/x/sync/errgroup"

	"github.com/byte4ever/emailtemplates/substitute"
)

const (
	startTag = "{include|"
	endTag   = "}"
)

// ErrEmptyInclude marks an included template whose
// content is empty when Options.EmptyIsError is set.
var ErrEmptyInclude = errors.New("included template is empty")

// Loader returns the raw content of a named template.
type Loader interface {
	Load(ctx context.Context, name string) (string, error)
}

// Options tunes an Expander.
type Options struct {
	// EmptyIsError reports empty included content as a
	// failure and leaves its directives in place.
	EmptyIsError bool
	// MaxDepth is the number of expansion levels per
	// call. Values below 1 mean 1.
	MaxDepth int
}

// IncludeError reports one directive name that could not
// be expanded.
type IncludeError struct {
	Name string
	Err  error
}

func (e *IncludeError) Error() string {
	return fmt.Sprintf("include %q: %v", e.Name, e.Err)
}

func (e *IncludeError) Unwrap() error {
	return e.Err
}

// PartialExpansionError aggregates the failed names of
// one expansion. Its message lists one failure per line.
type PartialExpansionError struct {
	Failures []*IncludeError
}

func (e *PartialExpansionError) Error() string {
	msgs := make([]string, len(e.Failures))
	for idx, fl := range e.Failures {
		msgs[idx] = fl.Error()
	}

	return strings.Join(msgs, "\n")
}

// Unwrap exposes the individual failures to errors.Is and
// errors.As.
func (e *PartialExpansionError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for idx, fl := range e.Failures {
		errs[idx] = fl
	}

	return errs
}

// Names returns the failed names in sorted order.
func (e *PartialExpansionError) Names() []string {
	names := make([]string, len(e.Failures))
	for idx, fl := range e.Failures {
		names[idx] = fl.Name
	}

	return names
}

// Expander rewrites include directives.
type Expander struct {
	loader Loader
	opts   Options
}

// New returns an Expander reading templates through
// loader.
func New(loader Loader, opts Options) *Expander {
	if opts.MaxDepth < 1 {
		opts.MaxDepth = 1
	}

	return &Expander{loader: loader, opts: opts}
}

// Names returns the distinct names referenced by include
// directives in text, in order of first appearance.
func Names(text string) []string {
	if !strings.Contains(text, startTag) {
		return nil
	}

	var names []string

	seen := make(map[string]struct{})

	var collect fasttemplate.TagFunc

	collect = func(_ io.Writer, tag string) (int, error) {
		// A stray marker inside the tag means only the
		// trailing part is a directive.
		if idx := strings.LastIndex(tag, startTag); idx >= 0 {
			tag = tag[idx+len(startTag):]
		}

		if tag == "" || strings.ContainsAny(tag, "{}") {
			return 0, nil
		}

		if _, ok := seen[tag]; !ok {
			seen[tag] = struct{}{}
			names = append(names, tag)
		}

		return 0, nil
	}

	_, _ = fasttemplate.ExecuteFunc(
		text, startTag, endTag, io.Discard, collect,
	)

	return names
}

// Expand inlines the templates referenced by text. It
// returns the rewritten text and, when at least one name
// failed, a *PartialExpansionError. A text without
// directives is returned unchanged without any load.
func (ex *Expander) Expand(
	ctx context.Context,
	text string,
) (string, error) {
	var failures []*IncludeError

	failed := make(map[string]struct{})

	for depth := 0; depth < ex.opts.MaxDepth; depth++ {
		names := pending(Names(text), failed)
		if len(names) == 0 {
			break
		}

		contents, levelFailures := ex.loadAll(ctx, names)
		for _, fl := range levelFailures {
			failed[fl.Name] = struct{}{}
		}

		failures = append(failures, levelFailures...)

		if len(contents) == 0 {
			break
		}

		text = substitute.ReplaceTags(
			text,
			startTag,
			endTag,
			func(name string) (string, bool) {
				content, ok := contents[name]

				return content, ok
			},
		)
	}

	if len(failures) == 0 {
		return text, nil
	}

	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Name < failures[j].Name
	})

	return text, &PartialExpansionError{Failures: failures}
}

// pending drops names that already failed at a previous
// level so they are reported once.
func pending(
	names []string,
	failed map[string]struct{},
) []string {
	if len(failed) == 0 {
		return names
	}

	out := names[:0:0]

	for _, name := range names {
		if _, ok := failed[name]; !ok {
			out = append(out, name)
		}
	}

	return out
}

// loadAll issues one load per name concurrently and waits
// for all of them to settle.
func (ex *Expander) loadAll(
	ctx context.Context,
	names []string,
) (map[string]string, []*IncludeError) {
	type outcome struct {
		content string
		err     error
	}

	results := make([]outcome, len(names))

	var g errgroup.Group

	for idx, name := range names {
		g.Go(func() error {
			content, err := ex.loader.Load(ctx, name)
			if err == nil && content == "" && ex.opts.EmptyIsError {
				err = ErrEmptyInclude
			}

			results[idx] = outcome{content: content, err: err}

			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // goroutines never fail

	contents := make(map[string]string, len(names))

	var failures []*IncludeError

	for idx, name := range names {
		res := results[idx]
		if res.err != nil {
			slog.Debug(
				"include failed",
				"name", name,
				"error", res.err,
			)

			failures = append(
				failures,
				&IncludeError{Name: name, Err: res.err},
			)

			continue
		}

		contents[name] = res.content
	}

	return contents, failures
}
