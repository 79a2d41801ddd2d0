package substitute

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/emailtemplates/values"
)

const (
	startTag = "{"
	endTag   = "}"
)

// UnsupportedValueError reports a list found at Path.
type UnsupportedValueError struct {
	Path string
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf(
		"array values not implemented (at %q)", e.Path,
	)
}

// Flatten maps every leaf of tree to its dotted key. A
// leaf whose key would be empty (a bare-leaf tree or a
// child named "") yields nothing, since "{}" is not a
// placeholder. The
// returned error joins one *UnsupportedValueError per list
// encountered; it never stops the walk.
func Flatten(tree values.Node) (map[string]string, error) {
	flat := make(map[string]string)

	var diags []error

	walk(tree, nil, flat, &diags)

	return flat, errors.Join(diags...)
}

func walk(
	node values.Node,
	path []string,
	flat map[string]string,
	diags *[]error,
) {
	switch node.Kind() {
	case values.KindLeaf:
		key := strings.Join(path, ".")
		if key == "" {
			return
		}

		flat[key] = node.String()
	case values.KindList:
		*diags = append(
			*diags,
			&UnsupportedValueError{Path: strings.Join(path, ".")},
		)
	case values.KindObject:
		for _, key := range node.Keys() {
			child, _ := node.Child(key)

			// Copy so sibling walks never share backing
			// storage.
			childPath := make([]string, len(path), len(path)+1)
			copy(childPath, path)

			walk(child, append(childPath, key), flat, diags)
		}
	}
}

// Substitute replaces every {key} in text whose key is a
// leaf path of tree. The rewrite is a single pass, so
// braces inside substituted values are never expanded.
// A non-nil error is a diagnostic only; the returned text
// is always usable.
func Substitute(text string, tree values.Node) (string, error) {
	flat, diag := Flatten(tree)

	return Apply(text, flat), diag
}

// Apply replaces every {key} in text found in flat and
// keeps unknown placeholders as they are.
func Apply(text string, flat map[string]string) string {
	if len(flat) == 0 {
		return text
	}

	return ReplaceTags(
		text,
		startTag,
		endTag,
		func(tag string) (string, bool) {
			val, ok := flat[tag]

			return val, ok
		},
	)
}

// ReplaceTags rewrites every start+tag+end token of text
// for which lookup reports a value. Unknown tokens are
// kept verbatim. A stray start marker before a token
// (e.g. "{a {user}") does not hide the token.
func ReplaceTags(
	text string,
	start string,
	end string,
	lookup func(tag string) (string, bool),
) string {
	if !strings.Contains(text, start) {
		return text
	}

	var tagFn fasttemplate.TagFunc

	tagFn = func(w io.Writer, tag string) (int, error) {
		if val, ok := lookup(tag); ok {
			return w.Write([]byte(val))
		}

		idx := strings.LastIndex(tag, start)
		if idx < 0 {
			return w.Write([]byte(start + tag + end))
		}

		inner := fasttemplate.ExecuteFuncString(
			tag[idx:]+end, start, end, tagFn,
		)

		return w.Write([]byte(start + tag[:idx] + inner))
	}

	return fasttemplate.ExecuteFuncString(text, start, end, tagFn)
}
