// Package services holds the shared error taxonomy for external tool
// wrappers and the components that call them. Every failure in the clip
// pipeline is tagged with one of the sentinel markers here so the CLI can
// report a stable, classifiable message before exiting non-zero.
package services
