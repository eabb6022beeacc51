// Package cache maps video identifiers to downloaded media artifacts on
// disk. The cache directory is a flat namespace of <key>.<ext> files and
// remains the source of truth; an optional SQLite index resolves ambiguity
// when several files share a key prefix. Entries older than the retention
// window are evicted by an age sweep that runs before every lookup.
//
// Duplicate fetches for one key are collapsed in-process by singleflight
// and across processes by a per-key advisory file lock.
package cache
