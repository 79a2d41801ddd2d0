package templating

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/byte4ever/emailtemplates/include"
	"github.com/byte4ever/emailtemplates/loader"
	"github.com/byte4ever/emailtemplates/store"
	"github.com/byte4ever/emailtemplates/substitute"
	"github.com/byte4ever/emailtemplates/values"
)

// Config holds the settings of a Resolver. RootPath and
// FileSuffix are required.
type Config struct {
	// RootPath is prepended verbatim to template names.
	RootPath string
	// FileSuffix is appended verbatim to template names.
	FileSuffix string
	// EmptyIncludeIsError reports empty included
	// templates as failures.
	EmptyIncludeIsError bool
	// IncludeDepth is the number of include levels
	// expanded per call. Zero means one level.
	IncludeDepth int
}

// Option customises a Resolver.
type Option func(*options)

type options struct {
	reader loader.Reader
	store  *store.Store
}

// WithReader sets the backend templates are read from.
// Defaults to the local filesystem.
func WithReader(rd loader.Reader) Option {
	return func(o *options) {
		o.reader = rd
	}
}

// WithStore sets the template cache. Resolvers sharing a
// store must use the same path policy.
func WithStore(st *store.Store) Option {
	return func(o *options) {
		o.store = st
	}
}

// Result is the outcome of a render.
type Result struct {
	// Text is the expanded and substituted template.
	Text string
	// Diagnostics joins the non-fatal problems met while
	// rendering (failed includes, list values). Nil when
	// there were none.
	Diagnostics error
}

// Resolver renders named templates. It is safe for
// concurrent use; all calls share one template cache.
type Resolver struct {
	loader   *loader.Loader
	expander *include.Expander
}

// New validates cfg and returns a Resolver.
func New(cfg Config, opts ...Option) (*Resolver, error) {
	const errCtx = "creating resolver"

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	ld, err := loader.New(
		loader.Config{
			RootPath:   cfg.RootPath,
			FileSuffix: cfg.FileSuffix,
		},
		o.reader,
		o.store,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return &Resolver{
		loader: ld,
		expander: include.New(ld, include.Options{
			EmptyIsError: cfg.EmptyIncludeIsError,
			MaxDepth:     cfg.IncludeDepth,
		}),
	}, nil
}

// Loader returns the loader backing the resolver.
func (r *Resolver) Loader() *loader.Loader {
	return r.loader
}

// Render loads, expands and substitutes the named
// template. The error is non-nil only when the template
// itself cannot be loaded, in which case the result is
// empty.
func (r *Resolver) Render(
	ctx context.Context,
	name string,
	tree values.Node,
) (Result, error) {
	const errCtx = "rendering template"

	text, err := r.loader.Load(ctx, name)
	if err != nil {
		return Result{}, fmt.Errorf("%s %q: %w", errCtx, name, err)
	}

	// Includes first: included content may carry
	// placeholders for the same values tree.
	text, incErr := r.expander.Expand(ctx, text)

	text, subErr := substitute.Substitute(text, tree)

	return Result{
		Text:        text,
		Diagnostics: errors.Join(incErr, subErr),
	}, nil
}

// Get renders the named template and logs diagnostics
// instead of returning them.
func (r *Resolver) Get(
	ctx context.Context,
	name string,
	tree values.Node,
) (string, error) {
	res, err := r.Render(ctx, name, tree)
	if err != nil {
		return "", err
	}

	if res.Diagnostics != nil {
		slog.Warn(
			"template rendered with diagnostics",
			"template", name,
			"diagnostics", res.Diagnostics.Error(),
		)
	}

	return res.Text, nil
}

// Preload loads the named templates concurrently so that
// later renders hit the cache. Failures for all names are
// joined.
func (r *Resolver) Preload(
	ctx context.Context,
	names ...string,
) error {
	const errCtx = "preloading templates"

	errs := make([]error, len(names))

	var g errgroup.Group

	for idx, name := range names {
		g.Go(func() error {
			_, errs[idx] = r.loader.Load(ctx, name)

			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // goroutines never fail

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
