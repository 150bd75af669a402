// Package store persists audit run history to SQLite.
//
// The schema is two tables: runs (one per audit run, keyed by run ID) and
// findings (one per audited data row, linked by run_id with cascade
// delete). Writes are idempotent on run ID so a retried report never
// duplicates history. The core classification engine has no dependency on
// this package; it exists purely for the reporting layer.
package store
