package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUsage marks invalid command-line invocations.
	ErrUsage = errors.New("usage error")
	// ErrMissingDependency marks an absent external tool.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrInvalidURL marks a source URL with no recognizable video identifier.
	ErrInvalidURL = errors.New("invalid url")
	// ErrFetchFailed marks a download that produced no cached artifact.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrClipFailed marks a failed trim of the cached source.
	ErrClipFailed = errors.New("clip failed")
	// ErrExternalTool marks an external process failure with no finer classification.
	ErrExternalTool = errors.New("external tool error")
	// ErrConfiguration marks invalid or unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
