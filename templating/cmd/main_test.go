package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/emailtemplates/substitute"
)

func writeTemp(
	tb testing.TB,
	dir string,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(dir, name)
	require.NoError(
		tb,
		os.WriteFile(pa, []byte(content), 0o600),
	)

	return pa
}

func TestLoadValues_precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	stamp := writeTemp(
		t, dir, "stamp.txt",
		"user stamped\nproject.id 0\nBUILD_HOST ci-01\n",
	)
	yml := writeTemp(
		t, dir, "values.yaml",
		"user: from-file\nproject:\n  name: example project\n  id: 1\n",
	)

	tree, err := loadValues(
		[]string{stamp}, yml, []string{"user=Johannes"},
	)
	require.NoError(t, err)

	got, err := substitute.Substitute(
		"{user} {project.name} {project.id} {BUILD_HOST}", tree,
	)
	require.NoError(t, err)
	assert.Equal(t, "Johannes example project 1 ci-01", got)
}

func TestLoadValues_json_file(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	js := writeTemp(
		t, dir, "values.JSON",
		`{"project": {"name": "P1"}}`,
	)

	tree, err := loadValues(nil, js, nil)
	require.NoError(t, err)

	got, _ := substitute.Substitute("{project.name}", tree)
	assert.Equal(t, "P1", got)
}

func TestLoadValues_errors(t *testing.T) {
	t.Parallel()

	_, err := loadValues(nil, "/nonexistent/values.yaml", nil)
	assert.ErrorContains(t, err, "reading values file")

	_, err = loadValues(nil, "", []string{"broken"})
	assert.ErrorContains(t, err, "KEY=value")

	_, err = loadValues([]string{"/nonexistent/stamp"}, "", nil)
	assert.ErrorContains(t, err, "loading stamps")
}
