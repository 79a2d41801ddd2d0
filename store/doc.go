// Package store holds the raw text of loaded templates for the lifetime of
// a resolver. Entries are inserted once and never replaced or evicted; a
// second insert for the same name is ignored and returns the stored value.
package store
