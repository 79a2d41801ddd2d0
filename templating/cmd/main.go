// Binary email_template renders a named template with
// include expansion and placeholder substitution.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/byte4ever/emailtemplates/stamper"
	"github.com/byte4ever/emailtemplates/templating"
	"github.com/byte4ever/emailtemplates/values"
)

type arrayFlags []string

func (af *arrayFlags) String() string {
	return ""
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

// loadValues merges stamps, the values file and explicit
// assignments, in increasing precedence.
func loadValues(
	stampFiles []string,
	valuesFile string,
	assignments []string,
) (values.Node, error) {
	const errCtx = "loading values"

	tree, err := stamper.LoadStamps(stampFiles)
	if err != nil {
		return values.Node{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	if valuesFile != "" {
		raw, err := os.ReadFile(valuesFile) //nolint:gosec // path from CLI flag
		if err != nil {
			return values.Node{}, fmt.Errorf(
				"%s: reading values file: %w", errCtx, err,
			)
		}

		var fileTree values.Node

		if strings.EqualFold(filepath.Ext(valuesFile), ".json") {
			fileTree, err = values.DecodeJSON(raw)
		} else {
			fileTree, err = values.DecodeYAML(raw)
		}

		if err != nil {
			return values.Node{}, fmt.Errorf("%s: %w", errCtx, err)
		}

		tree = values.Merge(tree, fileTree)
	}

	explicit, err := values.ParseAssignments(assignments)
	if err != nil {
		return values.Node{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return values.Merge(tree, explicit), nil
}

func run() error {
	const errCtx = "email_template"

	var (
		stampInfoFiles arrayFlags
		assignments    arrayFlags
	)

	var (
		root         string
		suffix       string
		tpl          string
		valuesFile   string
		output       string
		includeDepth int
		emptyIsError bool
		backend      backendConfig
	)

	flag.StringVar(
		&root, "root", "",
		"template root path, prepended verbatim to names",
	)

	flag.StringVar(
		&suffix, "suffix", ".txt",
		"template file suffix, appended verbatim to names",
	)

	flag.StringVar(
		&tpl, "template", "",
		"name of the template to render",
	)

	flag.StringVar(
		&valuesFile, "values", "",
		"YAML or JSON file with substitution values",
	)

	flag.Var(
		&assignments, "value",
		"substitution value in KEY=VALUE format, KEY may be dotted (repeatable)",
	)

	flag.Var(
		&stampInfoFiles, "stamp_info_file",
		"Stamp info file path (repeatable)",
	)

	flag.IntVar(
		&includeDepth, "include_depth", 1,
		"number of include levels expanded",
	)

	flag.BoolVar(
		&emptyIsError, "empty_include_is_error", false,
		"report empty included templates as failures",
	)

	flag.StringVar(
		&output, "output", "",
		"output file path (default: stdout)",
	)

	flag.StringVar(
		&backend.backend, "backend", backendFS,
		"template source: fs, configmap, github or gitlab",
	)

	flag.StringVar(
		&backend.kubeconfig, "kubeconfig", "",
		"absolute path to the kubeconfig file (configmap backend)",
	)

	flag.StringVar(
		&backend.cmNamespace, "configmap_namespace", "",
		"namespace of the templates ConfigMap",
	)

	flag.StringVar(
		&backend.cmName, "configmap_name", "",
		"name of the templates ConfigMap",
	)

	flag.StringVar(
		&backend.githubOwner, "github_owner", "",
		"owner of the GitHub templates repository",
	)

	flag.StringVar(
		&backend.githubRepo, "github_repo", "",
		"GitHub templates repository",
	)

	flag.StringVar(
		&backend.githubRef, "github_ref", "",
		"branch, tag or commit to read (default: repository default branch)",
	)

	flag.StringVar(
		&backend.githubHost, "github_host", "",
		"GitHub Enterprise host (default: github.com)",
	)

	flag.StringVar(
		&backend.gitlabHost, "gitlab_host", "",
		"GitLab host URL (default: https://gitlab.com)",
	)

	flag.StringVar(
		&backend.gitlabRepo, "gitlab_repo", "",
		"GitLab templates project path",
	)

	flag.StringVar(
		&backend.gitlabRef, "gitlab_ref", "",
		"branch, tag or commit to read (default: main)",
	)

	flag.Parse()

	backend.githubToken = os.Getenv("GITHUB_TOKEN")
	backend.gitlabToken = os.Getenv("GITLAB_TOKEN")

	if tpl == "" {
		return fmt.Errorf("%s: --template must be set", errCtx)
	}

	tree, err := loadValues(stampInfoFiles, valuesFile, assignments)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	rd, err := newReader(backend)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	res, err := templating.New(
		templating.Config{
			RootPath:            root,
			FileSuffix:          suffix,
			EmptyIncludeIsError: emptyIsError,
			IncludeDepth:        includeDepth,
		},
		templating.WithReader(rd),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	text, err := res.Get(context.Background(), tpl, tree)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if output != "" {
		err = os.WriteFile( //nolint:gosec // path from CLI flag
			output, []byte(text), 0o666,
		)
		if err != nil {
			return fmt.Errorf(
				"%s: writing output: %w",
				errCtx, err,
			)
		}

		return nil
	}

	if _, err := os.Stdout.WriteString(text); err != nil {
		return fmt.Errorf(
			"%s: writing to stdout: %w",
			errCtx, err,
		)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
