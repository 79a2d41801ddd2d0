// Package gitlab serves templates from a file tree in a GitLab project
// through the repository files API.
package gitlab
