package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/byte4ever/emailtemplates/store"
)

// Config holds the path policy of a Loader. Both fields
// are required.
type Config struct {
	// RootPath is prepended verbatim to every template
	// name. Include the trailing separator if one is
	// needed.
	RootPath string
	// FileSuffix is appended verbatim to every template
	// name (e.g. ".txt").
	FileSuffix string
}

// Validate reports the first missing field.
func (cfg Config) Validate() error {
	if cfg.RootPath == "" {
		return &ConfigError{Field: "root path"}
	}

	if cfg.FileSuffix == "" {
		return &ConfigError{Field: "file suffix"}
	}

	return nil
}

// Loader reads templates through a Reader and caches them
// in a store.
type Loader struct {
	cfg    Config
	reader Reader
	store  *store.Store
	group  singleflight.Group
	reads  atomic.Int64
}

// New validates cfg and returns a Loader. A nil reader
// defaults to OSReader and a nil store to a fresh one.
func New(
	cfg Config,
	reader Reader,
	st *store.Store,
) (*Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !strings.Contains(cfg.FileSuffix, ".") {
		slog.Warn(
			"file suffix has no '.', it is used as is",
			"suffix", cfg.FileSuffix,
		)
	}

	if reader == nil {
		reader = OSReader{}
	}

	if st == nil {
		st = store.New()
	}

	return &Loader{
		cfg:    cfg,
		reader: reader,
		store:  st,
	}, nil
}

// Path returns the storage location of the named
// template.
func (ld *Loader) Path(name string) string {
	return ld.cfg.RootPath + name + ld.cfg.FileSuffix
}

// Store returns the cache backing the loader.
func (ld *Loader) Store() *store.Store {
	return ld.store
}

// Reads returns the number of reads issued to the
// underlying Reader.
func (ld *Loader) Reads() int64 {
	return ld.reads.Load()
}

// Load returns the content of the named template. Cached
// content is returned without I/O. Concurrent misses for
// the same name share a single read, which is detached
// from the cancellation of any one caller: a caller whose
// ctx ends stops waiting and gets ctx.Err(), while the
// others still receive the content. A failed read is
// returned as a *NotFoundError and is not cached.
func (ld *Loader) Load(
	ctx context.Context,
	name string,
) (string, error) {
	const errCtx = "loading template"

	if content, ok := ld.store.Get(name); ok {
		return content, nil
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s %q: %w", errCtx, name, err)
	}

	readCtx := context.WithoutCancel(ctx)

	ch := ld.group.DoChan(name, func() (interface{}, error) {
		// A read that finished between the miss above and
		// joining the group has already filled the store.
		if content, ok := ld.store.Get(name); ok {
			return content, nil
		}

		content, err := ld.read(readCtx, name)

		return content, err
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s %q: %w", errCtx, name, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}

		content, _ := res.Val.(string)

		return content, nil
	}
}

func (ld *Loader) read(
	ctx context.Context,
	name string,
) (string, error) {
	path := ld.Path(name)

	ld.reads.Add(1)

	raw, err := ld.reader.ReadFile(ctx, path)
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return "", fmt.Errorf(
			"reading %s: %w", path, err,
		)
	}

	if err != nil {
		slog.Debug(
			"template read failed",
			"name", name,
			"path", path,
			"error", err,
		)

		return "", &NotFoundError{Name: name, Path: path, Err: err}
	}

	content, _ := ld.store.PutIfAbsent(name, string(raw))

	slog.Debug("template loaded", "name", name, "path", path)

	return content, nil
}
