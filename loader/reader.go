package loader

import (
	"context"
	"fmt"
	"os"
)

// Pattern: Strategy -- swap the template backend without
// changing the caching and path logic.

// Reader reads the bytes stored at path. A missing file
// must be reported with an error matching fs.ErrNotExist.
type Reader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// ReaderFunc adapts a plain function to the Reader
// interface.
type ReaderFunc func(
	ctx context.Context,
	path string,
) ([]byte, error)

// ReadFile delegates to the wrapped function.
func (f ReaderFunc) ReadFile(
	ctx context.Context,
	path string,
) ([]byte, error) {
	return f(ctx, path)
}

// OSReader reads templates from the local filesystem.
type OSReader struct{}

// ReadFile reads path with os.ReadFile. The context is
// only checked before the read starts.
func (OSReader) ReadFile(
	ctx context.Context,
	path string,
) ([]byte, error) {
	const errCtx = "reading file"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	content, err := os.ReadFile(path) //nolint:gosec // path built from configured root
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return content, nil
}
