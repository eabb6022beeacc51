// Package config loads, normalizes, and validates snip's TOML
// configuration. Configuration is an explicit value handed to the
// components that need it at construction time; nothing reads process-wide
// mutable state.
package config
