package values_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/emailtemplates/values"
)

func TestNode_string_canonical_forms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node values.Node
		want string
	}{
		{"string", values.Leaf("Jo"), "Jo"},
		{"int", values.Leaf(42), "42"},
		{"negative int64", values.Leaf(int64(-7)), "-7"},
		{"uint64", values.Leaf(uint64(18)), "18"},
		{"float", values.Leaf(1.5), "1.5"},
		{"whole float", values.Leaf(float64(3)), "3"},
		{"bool", values.Leaf(true), "true"},
		{"nil", values.Leaf(nil), ""},
		{"zero node", values.Node{}, ""},
		{"list", values.List(values.Leaf("a")), "[list]"},
		{"object", values.Object(nil), "[object]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.node.String())
		})
	}
}

func TestFromMap_nested(t *testing.T) {
	t.Parallel()

	tree := values.FromMap(map[string]interface{}{
		"user": "Jo",
		"project": map[string]interface{}{
			"name": "P1",
			"tags": []interface{}{"a", "b"},
		},
	})

	require.Equal(t, values.KindObject, tree.Kind())
	assert.Equal(t, []string{"project", "user"}, tree.Keys())

	project, ok := tree.Child("project")
	require.True(t, ok)
	assert.Equal(t, values.KindObject, project.Kind())

	tags, ok := project.Child("tags")
	require.True(t, ok)
	assert.Equal(t, values.KindList, tags.Kind())
	assert.Equal(t, 2, tags.Len())

	user, _ := tree.Child("user")
	assert.Equal(t, "Jo", user.Value())
}

func TestFromAny_interface_keyed_map(t *testing.T) {
	t.Parallel()

	tree := values.FromAny(map[interface{}]interface{}{
		1: "one",
	})

	child, ok := tree.Child("1")
	require.True(t, ok)
	assert.Equal(t, "one", child.String())
}

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	tree, err := values.DecodeYAML([]byte(
		"user: Johannes\nproject:\n  name: example project\n  id: 1\n",
	))
	require.NoError(t, err)

	project, ok := tree.Child("project")
	require.True(t, ok)

	id, ok := project.Child("id")
	require.True(t, ok)
	assert.Equal(t, "1", id.String())
}

func TestDecodeYAML_empty(t *testing.T) {
	t.Parallel()

	tree, err := values.DecodeYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, values.KindObject, tree.Kind())
	assert.Zero(t, tree.Len())
}

func TestDecodeYAML_invalid(t *testing.T) {
	t.Parallel()

	_, err := values.DecodeYAML([]byte("user: [unclosed\n"))
	assert.ErrorContains(t, err, "decoding yaml values")
}

func TestDecodeJSON_keeps_number_text(t *testing.T) {
	t.Parallel()

	tree, err := values.DecodeJSON([]byte(
		`{"price": 1.0, "count": 3, "ok": false}`,
	))
	require.NoError(t, err)

	price, _ := tree.Child("price")
	count, _ := tree.Child("count")
	ok, _ := tree.Child("ok")

	assert.Equal(t, "1.0", price.String())
	assert.Equal(t, "3", count.String())
	assert.Equal(t, "false", ok.String())
}

func TestDecodeJSON_invalid(t *testing.T) {
	t.Parallel()

	_, err := values.DecodeJSON([]byte(`{"unterminated": `))
	assert.ErrorContains(t, err, "decoding json values")
}

func TestParseAssignments_nested_and_overrides(t *testing.T) {
	t.Parallel()

	tree, err := values.ParseAssignments([]string{
		"user=Jo",
		"project.name=P1",
		"project.id=1",
		"user=Johannes",
		"url=https://example.com/?a=b",
	})
	require.NoError(t, err)

	user, _ := tree.Child("user")
	assert.Equal(t, "Johannes", user.String())

	url, _ := tree.Child("url")
	assert.Equal(t, "https://example.com/?a=b", url.String())

	project, _ := tree.Child("project")
	assert.Equal(t, []string{"id", "name"}, project.Keys())
}

func TestParseAssignments_leaf_replaced_by_object(t *testing.T) {
	t.Parallel()

	tree, err := values.ParseAssignments([]string{
		"project=flat",
		"project.name=P1",
	})
	require.NoError(t, err)

	project, _ := tree.Child("project")
	assert.Equal(t, values.KindObject, project.Kind())
}

func TestParseAssignments_malformed(t *testing.T) {
	t.Parallel()

	_, err := values.ParseAssignments([]string{"novalue"})
	assert.ErrorContains(t, err, "must be KEY=value")

	_, err = values.ParseAssignments([]string{"a..b=x"})
	assert.ErrorContains(t, err, "empty path segment")
}

func TestMerge_src_wins_recursively(t *testing.T) {
	t.Parallel()

	dst := values.FromMap(map[string]interface{}{
		"user": "old",
		"project": map[string]interface{}{
			"name": "P0",
			"id":   "1",
		},
	})
	src := values.FromMap(map[string]interface{}{
		"user": "new",
		"project": map[string]interface{}{
			"name": "P1",
		},
	})

	merged := values.Merge(dst, src)

	user, _ := merged.Child("user")
	assert.Equal(t, "new", user.String())

	project, _ := merged.Child("project")
	name, _ := project.Child("name")
	id, _ := project.Child("id")
	assert.Equal(t, "P1", name.String())
	assert.Equal(t, "1", id.String())

	// dst is left untouched.
	oldUser, _ := dst.Child("user")
	assert.Equal(t, "old", oldUser.String())
}
