// Package include expands {include|name} directives by inlining the raw
// content of other templates. All distinct names referenced by a text are
// loaded concurrently; every literal occurrence of a successfully loaded
// name is rewritten, and failures are collected into a single
// *PartialExpansionError without aborting the other rewrites.
//
// By default one level is expanded per call: directives that appear inside
// included content are left for the caller. Options.MaxDepth raises that
// limit. There is no cycle detection; a cycle stops at the depth limit.
package include
