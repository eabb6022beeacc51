// Package logging configures log/slog output for snip. It provides a
// console handler for interactive runs, a JSON handler for machine
// consumption, typed attribute helpers, and retention pruning for per-run
// log files.
package logging
