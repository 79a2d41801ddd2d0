// Package stamper reads Bazel workspace status files ("KEY VALUE" per
// line) into a values tree so that build stamps can feed template
// placeholders. Dotted keys nest: "project.id 7" is reachable as
// {project.id}.
package stamper
