package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/emailtemplates/loader/configmap"
	ghread "github.com/byte4ever/emailtemplates/loader/github"
	glread "github.com/byte4ever/emailtemplates/loader/gitlab"
)

func TestNewReader_filesystem_default(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{"", backendFS} {
		rd, err := newReader(backendConfig{backend: backend})

		require.NoError(t, err)
		assert.Nil(t, rd)
	}
}

func TestNewReader_github(t *testing.T) {
	t.Parallel()

	rd, err := newReader(backendConfig{
		backend:     backendGitHub,
		githubOwner: "org",
		githubRepo:  "mail",
		githubRef:   "release",
	})

	require.NoError(t, err)
	assert.IsType(t, &ghread.Reader{}, rd)
}

func TestNewReader_github_missing_repo(t *testing.T) {
	t.Parallel()

	_, err := newReader(backendConfig{
		backend:     backendGitHub,
		githubOwner: "org",
	})

	assert.ErrorContains(t, err, "repo must be set")
}

func TestNewReader_gitlab(t *testing.T) {
	t.Parallel()

	rd, err := newReader(backendConfig{
		backend:     backendGitLab,
		gitlabRepo:  "org/mail",
		gitlabToken: "tok",
	})

	require.NoError(t, err)
	assert.IsType(t, &glread.Reader{}, rd)
}

func TestNewReader_gitlab_missing_token(t *testing.T) {
	t.Parallel()

	_, err := newReader(backendConfig{
		backend:    backendGitLab,
		gitlabRepo: "org/mail",
	})

	assert.ErrorContains(t, err, "access token")
}

func TestNewReader_configmap(t *testing.T) {
	t.Parallel()

	kubeconfig := writeTemp(
		t, t.TempDir(), "kubeconfig",
		`apiVersion: v1
kind: Config
clusters:
- name: test
  cluster:
    server: https://127.0.0.1:6443
contexts:
- name: test
  context:
    cluster: test
    user: test
current-context: test
users:
- name: test
  user:
    token: tok
`,
	)

	rd, err := newReader(backendConfig{
		backend:     backendConfigMap,
		kubeconfig:  kubeconfig,
		cmNamespace: "mail",
		cmName:      "email-templates",
	})

	require.NoError(t, err)
	assert.IsType(t, &configmap.Reader{}, rd)
}

func TestNewReader_configmap_errors(t *testing.T) {
	t.Parallel()

	_, err := newReader(backendConfig{
		backend:     backendConfigMap,
		cmNamespace: "mail",
	})
	assert.ErrorContains(t, err, "--configmap_name must be set")

	_, err = newReader(backendConfig{
		backend:     backendConfigMap,
		kubeconfig:  filepath.Join(t.TempDir(), "missing"),
		cmNamespace: "mail",
		cmName:      "email-templates",
	})
	assert.ErrorContains(t, err, "building kubeconfig")
}

func TestNewReader_unknown_backend(t *testing.T) {
	t.Parallel()

	_, err := newReader(backendConfig{backend: "s3"})

	assert.ErrorContains(t, err, `unknown backend "s3"`)
}
