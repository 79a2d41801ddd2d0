package values

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// DecodeYAML decodes a YAML mapping into an object node.
// An empty document yields an empty object.
func DecodeYAML(raw []byte) (Node, error) {
	const errCtx = "decoding yaml values"

	var doc map[string]interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Node{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return FromMap(doc), nil
}

// DecodeJSON decodes a JSON object into an object node.
// Numbers keep their literal text so that "1" and "1.0"
// render as written.
func DecodeJSON(raw []byte) (Node, error) {
	const errCtx = "decoding json values"

	if len(bytes.TrimSpace(raw)) == 0 {
		return Object(nil), nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return Node{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return FromMap(doc), nil
}

// ParseAssignments builds an object from KEY=VALUE pairs
// where KEY is a dotted path (e.g. "project.name=P1").
// Later assignments win; assigning below an existing leaf
// replaces the leaf with an object.
func ParseAssignments(assignments []string) (Node, error) {
	const errCtx = "parsing assignments"

	root := Object(nil)

	for _, as := range assignments {
		parts := strings.SplitN(as, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return Node{}, fmt.Errorf(
				"%s: assignment must be KEY=value, got %s",
				errCtx, as,
			)
		}

		path := strings.Split(parts[0], ".")
		for _, seg := range path {
			if seg == "" {
				return Node{}, fmt.Errorf(
					"%s: empty path segment in %s",
					errCtx, parts[0],
				)
			}
		}

		root = Set(root, path, Leaf(parts[1]))
	}

	return root, nil
}

// Set returns a copy of root with val stored at path,
// creating intermediate objects as needed. An empty path
// returns val.
func Set(root Node, path []string, val Node) Node {
	if len(path) == 0 {
		return val
	}

	if root.kind != KindObject {
		root = Object(nil)
	}

	children := make(map[string]Node, len(root.children)+1)
	for key, child := range root.children {
		children[key] = child
	}

	children[path[0]] = Set(children[path[0]], path[1:], val)

	return Object(children)
}
