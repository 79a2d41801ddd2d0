// Package values models the substitution data handed to a template
// render: a tree whose leaves are strings, numbers or booleans and whose
// inner nodes are named objects. Lists are representable so that decoders
// can pass them through, but they cannot be substituted.
//
// Trees are built with Leaf, List and Object, converted from decoded
// documents with FromAny, or decoded directly with DecodeYAML, DecodeJSON
// and ParseAssignments.
package values
