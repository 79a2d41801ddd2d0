package gitlab

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"

	gl "gitlab.com/gitlab-org/api/client-go"
)

// Config holds the settings needed to read templates
// from a GitLab project.
type Config struct {
	// Host is the base URL of the GitLab instance
	// (e.g. "https://gitlab.com").
	Host string
	// Repo is the full project path
	// (e.g. "org/project").
	Repo string
	// Ref is the branch, tag or commit to read from.
	// Defaults to "main".
	Ref string
	// AccessToken is a personal or project access
	// token used for authentication.
	AccessToken string
}

// Reader reads template files from a GitLab project.
//
// Pattern: Strategy -- implements loader.Reader.
type Reader struct {
	client *gl.Client
	repo   string
	ref    string
}

// NewReader validates cfg and returns a Reader.
func NewReader(cfg Config) (*Reader, error) {
	const errCtx = "creating gitlab reader"

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf(
			"%s: access token must be set", errCtx,
		)
	}

	if cfg.Repo == "" {
		return nil, fmt.Errorf(
			"%s: repo must be set", errCtx,
		)
	}

	host := cfg.Host
	if host == "" {
		host = "https://gitlab.com"
	}

	ref := cfg.Ref
	if ref == "" {
		ref = "main"
	}

	client, err := gl.NewClient(
		cfg.AccessToken,
		gl.WithBaseURL(host),
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: new client: %w", errCtx, err,
		)
	}

	return &Reader{
		client: client,
		repo:   cfg.Repo,
		ref:    ref,
	}, nil
}

// ReadFile fetches the raw file at path. HTTP 404 yields
// fs.ErrNotExist.
func (rd *Reader) ReadFile(
	ctx context.Context,
	path string,
) ([]byte, error) {
	const errCtx = "reading gitlab file"

	ref := rd.ref

	content, resp, err := rd.client.RepositoryFiles.GetRawFile(
		rd.repo,
		path,
		&gl.GetRawFileOptions{Ref: &ref},
		gl.WithContext(ctx),
	)
	if resp != nil &&
		resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf(
			"%s: %s: %w", errCtx, path, fs.ErrNotExist,
		)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return content, nil
}
