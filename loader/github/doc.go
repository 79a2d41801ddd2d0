// Package github serves templates from a file tree in a GitHub repository
// through the repository contents API.
package github
