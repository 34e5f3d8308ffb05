// Package queue persists batch build items in SQLite.
//
// The Store manages the database connection, schema initialization, and the
// small lifecycle a spec file moves through while a batch runs: pending,
// loading, then loaded or failed. Items record the normalized outcome (name,
// frame count, playback fields) so the CLI can list past builds without
// re-reading spec files.
//
// The database is transient storage for batch runs rather than a long-term
// archive. Schema changes bump the version in schema.go; users clear the
// database to adopt the new schema.
package queue
