// Package substitute replaces single-brace {dotted.key} placeholders in a
// text with leaves of a values tree. Keys are derived by joining the path
// from the tree root to each leaf with ".". Placeholders without a matching
// leaf are kept verbatim. List nodes are not supported: they are reported
// as non-fatal diagnostics and placeholders below them stay unresolved.
package substitute
