// Package resolver decides which copy of each duplicate group survives and
// disposes of the rest.
//
// A run parses the manifest, groups records by hash, and then walks the
// groups one at a time: it picks a keeper with the Sent-folder preference and
// name tie-break, announces the decision, validates every drop candidate
// against the source root, and finally removes or relocates the candidates.
// Dry runs stop after validation and only log the would-be action.
//
// Every failure is fatal for the whole run. Groups disposed before the
// failure stay disposed; nothing in the failing group is touched.
package resolver
