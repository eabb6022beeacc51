// Package deps verifies that the external collaborators snip shells out to
// are present on PATH before any work begins.
package deps
