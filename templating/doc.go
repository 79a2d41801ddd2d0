// Package templating resolves named text templates. A Resolver loads the
// requested template once through a loader.Loader, inlines its
// {include|name} directives, then substitutes {dotted.key} placeholders
// from a values tree.
//
// Processing order per call:
//  1. Load the primary template. Failure ends the call with an error
//     naming the attempted path.
//  2. Expand include directives (concurrent loads, partial failures are
//     diagnostics).
//  3. Substitute placeholders, including those that came from included
//     templates. Lists in the values tree are diagnostics.
//
// Diagnostics never fail a call. Render returns them alongside the text;
// Get logs them with slog and returns the text only.
package templating
