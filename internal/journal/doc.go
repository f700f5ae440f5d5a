// Package journal persists an audit trail of dedup runs in SQLite.
//
// Each non-preview run gets a row in `runs`; every file removed or relocated
// during that run gets a row in `dispositions`. The journal is written after
// the filesystem action succeeds, so it never claims a disposal that did not
// happen. Dry runs are not journaled.
package journal
