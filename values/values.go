package values

import (
	"fmt"
	"sort"
	"strconv"
)

// Kind tags the variant held by a Node.
type Kind int

// Node variants.
const (
	KindLeaf Kind = iota
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is one vertex of a values tree. The zero Node is
// an empty leaf.
type Node struct {
	kind     Kind
	leaf     interface{}
	items    []Node
	children map[string]Node
}

// Leaf wraps a primitive value.
func Leaf(val interface{}) Node {
	return Node{kind: KindLeaf, leaf: val}
}

// List wraps a sequence of nodes.
func List(items ...Node) Node {
	return Node{kind: KindList, items: items}
}

// Object wraps named children. A nil map yields an empty
// object.
func Object(children map[string]Node) Node {
	if children == nil {
		children = make(map[string]Node)
	}

	return Node{kind: KindObject, children: children}
}

// Kind returns the variant tag.
func (n Node) Kind() Kind {
	return n.kind
}

// Value returns the raw primitive of a leaf, nil otherwise.
func (n Node) Value() interface{} {
	if n.kind != KindLeaf {
		return nil
	}

	return n.leaf
}

// Items returns the elements of a list.
func (n Node) Items() []Node {
	return n.items
}

// Child returns the named child of an object.
func (n Node) Child(key string) (Node, bool) {
	child, ok := n.children[key]

	return child, ok
}

// Keys returns the child keys of an object in sorted
// order.
func (n Node) Keys() []string {
	keys := make([]string, 0, len(n.children))
	for key := range n.children {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Len returns the number of children or items.
func (n Node) Len() int {
	switch n.kind {
	case KindList:
		return len(n.items)
	case KindObject:
		return len(n.children)
	default:
		return 0
	}
}

// String renders a leaf in its canonical text form:
// strings verbatim, integers in decimal, floats in the
// shortest representation that round-trips, booleans as
// true/false and nil as the empty string. Lists and
// objects render as "[list]" and "[object]".
func (n Node) String() string {
	switch n.kind {
	case KindList:
		return "[list]"
	case KindObject:
		return "[object]"
	}

	switch val := n.leaf.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// FromMap converts a decoded document into an object
// node.
func FromMap(m map[string]interface{}) Node {
	children := make(map[string]Node, len(m))
	for key, val := range m {
		children[key] = FromAny(val)
	}

	return Object(children)
}

// FromAny converts a decoded value into a node. Maps with
// string-like keys become objects, slices become lists,
// and anything else becomes a leaf.
func FromAny(val interface{}) Node {
	switch typed := val.(type) {
	case Node:
		return typed
	case map[string]interface{}:
		return FromMap(typed)
	case map[interface{}]interface{}:
		children := make(map[string]Node, len(typed))
		for key, child := range typed {
			children[fmt.Sprint(key)] = FromAny(child)
		}

		return Object(children)
	case map[string]string:
		children := make(map[string]Node, len(typed))
		for key, child := range typed {
			children[key] = Leaf(child)
		}

		return Object(children)
	case []interface{}:
		items := make([]Node, len(typed))
		for idx, item := range typed {
			items[idx] = FromAny(item)
		}

		return List(items...)
	case []string:
		items := make([]Node, len(typed))
		for idx, item := range typed {
			items[idx] = Leaf(item)
		}

		return List(items...)
	default:
		return Leaf(val)
	}
}

// Merge overlays src onto dst. Objects are merged key by
// key, recursively; any other combination returns src.
// Neither argument is modified.
func Merge(dst, src Node) Node {
	if dst.kind != KindObject || src.kind != KindObject {
		return src
	}

	merged := make(map[string]Node, len(dst.children)+len(src.children))
	for key, child := range dst.children {
		merged[key] = child
	}

	for key, child := range src.children {
		if prev, ok := merged[key]; ok {
			merged[key] = Merge(prev, child)

			continue
		}

		merged[key] = child
	}

	return Object(merged)
}
