package github

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v68/github"
)

// Config holds the settings needed to read templates
// from a GitHub repository.
type Config struct {
	// RepoOwner is the GitHub user or organisation
	// that owns the repository.
	RepoOwner string
	// Repo is the repository name (without owner).
	Repo string
	// Ref is an optional branch, tag or commit. Leave
	// empty for the default branch.
	Ref string
	// AccessToken is an optional token. Public
	// repositories can be read without one.
	AccessToken string
	// EnterpriseHost is an optional GitHub Enterprise
	// hostname (e.g. "git.corp.example.com"). Leave
	// empty for github.com.
	EnterpriseHost string
	// BaseURL overrides the API endpoint entirely
	// (e.g. "https://proxy.example.com/github/").
	// It takes precedence over EnterpriseHost.
	BaseURL string
}

// Reader reads template files from a GitHub repository.
//
// Pattern: Strategy -- implements loader.Reader.
type Reader struct {
	client    *gh.Client
	repoOwner string
	repo      string
	ref       string
}

// NewReader validates cfg and returns a Reader.
func NewReader(cfg Config) (*Reader, error) {
	const errCtx = "creating github reader"

	if cfg.RepoOwner == "" {
		return nil, fmt.Errorf(
			"%s: repo owner must be set", errCtx,
		)
	}

	if cfg.Repo == "" {
		return nil, fmt.Errorf(
			"%s: repo must be set", errCtx,
		)
	}

	client := gh.NewClient(nil)

	if cfg.AccessToken != "" {
		client = client.WithAuthToken(cfg.AccessToken)
	}

	switch {
	case cfg.BaseURL != "":
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}

		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: base url: %w", errCtx, err,
			)
		}

		client.BaseURL = u
	case cfg.EnterpriseHost != "":
		baseURL := "https://" +
			cfg.EnterpriseHost + "/api/v3/"
		uploadURL := "https://" +
			cfg.EnterpriseHost + "/api/uploads/"

		var err error

		client, err = client.WithEnterpriseURLs(
			baseURL, uploadURL,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: enterprise urls: %w",
				errCtx, err,
			)
		}
	}

	return &Reader{
		client:    client,
		repoOwner: cfg.RepoOwner,
		repo:      cfg.Repo,
		ref:       cfg.Ref,
	}, nil
}

// ReadFile fetches the file at path. HTTP 404 and
// directory paths yield fs.ErrNotExist.
func (rd *Reader) ReadFile(
	ctx context.Context,
	path string,
) ([]byte, error) {
	const errCtx = "reading github file"

	var opts *gh.RepositoryContentGetOptions
	if rd.ref != "" {
		opts = &gh.RepositoryContentGetOptions{Ref: rd.ref}
	}

	file, _, resp, err := rd.client.Repositories.GetContents(
		ctx, rd.repoOwner, rd.repo, path, opts,
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

	if file == nil {
		slog.Debug(
			"github path is a directory",
			"repo", rd.repoOwner+"/"+rd.repo,
			"path", path,
		)

		return nil, fmt.Errorf(
			"%s: %s is a directory: %w",
			errCtx, path, fs.ErrNotExist,
		)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf(
			"%s: decoding %s: %w", errCtx, path, err,
		)
	}

	return []byte(content), nil
}
