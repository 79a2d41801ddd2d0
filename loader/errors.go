package loader

import (
	"errors"
	"fmt"
	"io/fs"
)

// ConfigError reports a missing or invalid construction
// parameter.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s must be set", e.Field)
}

// NotFoundError reports a template whose backing file
// could not be read.
type NotFoundError struct {
	Name string
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf(
		"failed to load file, does the template file exist? (%s)",
		e.Path,
	)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is, or wraps, a
// NotFoundError or fs.ErrNotExist.
func IsNotFound(err error) bool {
	var nf *NotFoundError

	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}
