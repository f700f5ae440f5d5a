// Package preflight provides readiness checks for the filesystem paths and
// external binaries dedup depends on.
//
// The CLI "dedup config validate" command runs RunAll and prints every
// result. Checks for optional paths (the move directory) are skipped when
// the path is not configured.
package preflight
