package main

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/byte4ever/emailtemplates/loader"
	"github.com/byte4ever/emailtemplates/loader/configmap"
	ghread "github.com/byte4ever/emailtemplates/loader/github"
	glread "github.com/byte4ever/emailtemplates/loader/gitlab"
)

// Backend names accepted by --backend.
const (
	backendFS        = "fs"
	backendConfigMap = "configmap"
	backendGitHub    = "github"
	backendGitLab    = "gitlab"
)

// backendConfig gathers the flags that select where
// templates are read from. Tokens come from the
// environment, never from flags.
type backendConfig struct {
	backend string

	kubeconfig  string
	cmNamespace string
	cmName      string

	githubOwner string
	githubRepo  string
	githubRef   string
	githubHost  string
	githubToken string

	gitlabHost  string
	gitlabRepo  string
	gitlabRef   string
	gitlabToken string
}

// newReader builds the template reader for cfg. The
// local filesystem yields a nil reader, which the
// resolver replaces with loader.OSReader.
func newReader(cfg backendConfig) (loader.Reader, error) {
	const errCtx = "selecting backend"

	switch cfg.backend {
	case "", backendFS:
		return nil, nil
	case backendConfigMap:
		return newConfigMapReader(cfg)
	case backendGitHub:
		rd, err := ghread.NewReader(ghread.Config{
			RepoOwner:      cfg.githubOwner,
			Repo:           cfg.githubRepo,
			Ref:            cfg.githubRef,
			AccessToken:    cfg.githubToken,
			EnterpriseHost: cfg.githubHost,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return rd, nil
	case backendGitLab:
		rd, err := glread.NewReader(glread.Config{
			Host:        cfg.gitlabHost,
			Repo:        cfg.gitlabRepo,
			Ref:         cfg.gitlabRef,
			AccessToken: cfg.gitlabToken,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}

		return rd, nil
	default:
		return nil, fmt.Errorf(
			"%s: unknown backend %q", errCtx, cfg.backend,
		)
	}
}

func newConfigMapReader(
	cfg backendConfig,
) (loader.Reader, error) {
	const errCtx = "creating configmap backend"

	if cfg.cmNamespace == "" || cfg.cmName == "" {
		return nil, fmt.Errorf(
			"%s: --configmap_namespace and --configmap_name must be set",
			errCtx,
		)
	}

	kubeconfig := cfg.kubeconfig
	if kubeconfig == "" {
		if _, ok := os.LookupEnv(
			"KUBERNETES_SERVICE_HOST",
		); !ok {
			kubeconfig = filepath.Join(
				homedir.HomeDir(),
				".kube", "config",
			)
		}
	}

	restConfig, err := clientcmd.BuildConfigFromFlags(
		"", kubeconfig,
	)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: building kubeconfig: %w",
			errCtx, err,
		)
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: creating clientset: %w",
			errCtx, err,
		)
	}

	rd, err := configmap.NewReader(clientset, configmap.Config{
		Namespace: cfg.cmNamespace,
		Name:      cfg.cmName,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return rd, nil
}
