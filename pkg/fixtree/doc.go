// Package fixtree materializes declarative fixture descriptions onto a
// real filesystem location for use in automated tests.
//
// A Tree wraps a filesystem path and reconciles it against a Node, a
// nested description in which a leaf is a file's contents and a mapping
// is a directory. Merge is additive within matching directory levels,
// Replace starts from a clean slate, and ephemeral roots back trees
// whose lifetime is bound to one test.
//
// Trees are not safe for concurrent use on overlapping paths; the
// intended caller is a single test process running one example at a time.
package fixtree
