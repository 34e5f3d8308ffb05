// Package runner drains the batch queue by loading each pending spec file.
//
// A flock-based lock file enforces a single processor at a time, and every
// pass is stamped with a run id so log lines and queue items from the same
// batch correlate.
package runner
