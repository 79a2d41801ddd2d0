package configmap

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// Config identifies the ConfigMap holding the templates.
type Config struct {
	// Namespace of the ConfigMap.
	Namespace string
	// Name of the ConfigMap.
	Name string
}

// Reader reads template files from a ConfigMap.
//
// Pattern: Strategy -- implements loader.Reader.
type Reader struct {
	client    kubernetes.Interface
	namespace string
	name      string
}

// NewReader validates cfg and returns a Reader backed by
// client.
func NewReader(
	client kubernetes.Interface,
	cfg Config,
) (*Reader, error) {
	const errCtx = "creating configmap reader"

	if client == nil {
		return nil, fmt.Errorf(
			"%s: client must be set", errCtx,
		)
	}

	if cfg.Namespace == "" {
		return nil, fmt.Errorf(
			"%s: namespace must be set", errCtx,
		)
	}

	if cfg.Name == "" {
		return nil, fmt.Errorf(
			"%s: name must be set", errCtx,
		)
	}

	return &Reader{
		client:    client,
		namespace: cfg.Namespace,
		name:      cfg.Name,
	}, nil
}

// ReadFile returns the data entry keyed by the base name
// of p. A missing ConfigMap or key yields fs.ErrNotExist.
// Binary data entries are consulted when no text entry
// matches.
func (rd *Reader) ReadFile(
	ctx context.Context,
	p string,
) ([]byte, error) {
	const errCtx = "reading configmap"

	key := path.Base(p)

	cm, err := rd.client.CoreV1().ConfigMaps(rd.namespace).Get(
		ctx, rd.name, metav1.GetOptions{},
	)
	if apierrors.IsNotFound(err) {
		return nil, fmt.Errorf(
			"%s: %s/%s: %w",
			errCtx, rd.namespace, rd.name, fs.ErrNotExist,
		)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if content, ok := cm.Data[key]; ok {
		return []byte(content), nil
	}

	if content, ok := cm.BinaryData[key]; ok {
		return content, nil
	}

	slog.Debug(
		"configmap key not found",
		"configmap", rd.namespace+"/"+rd.name,
		"key", key,
	)

	return nil, fmt.Errorf(
		"%s: key %s: %w", errCtx, key, fs.ErrNotExist,
	)
}
