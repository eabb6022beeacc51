// Package ytdlp wraps the yt-dlp downloader behind a small client so the
// cache can treat it as an opaque artifact producer.
package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"snip/internal/logging"
	"snip/internal/services"
)

// ProgressUpdate captures yt-dlp download progress output.
type ProgressUpdate struct {
	Percent float64
	Message string
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec services.Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary       string
	fetchTimeout time.Duration
	logger       *slog.Logger
	exec         services.Executor
}

// New constructs a yt-dlp client.
func New(binary string, fetchTimeoutSeconds int, logger *slog.Logger, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ytdlp binary required")
	}
	client := &Client{
		binary:       binary,
		fetchTimeout: time.Duration(fetchTimeoutSeconds) * time.Second,
		logger:       logging.NewComponentLogger(logger, "ytdlp"),
		exec:         services.CommandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Fetch downloads url into the file named by template, which must carry a
// yt-dlp extension placeholder (e.g. /cache/<key>.%(ext)s) so the tool
// picks the container. Non-zero exit is reported as ErrFetchFailed.
func (c *Client) Fetch(ctx context.Context, url, template string) error {
	if strings.TrimSpace(url) == "" {
		return errors.New("ytdlp: url required")
	}
	if strings.TrimSpace(template) == "" {
		return errors.New("ytdlp: output template required")
	}

	fetchCtx := ctx
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	args := []string{"--no-playlist", "--newline", "-o", template, url}

	err := c.exec.Run(fetchCtx, c.binary, args, func(line string) {
		if update, ok := parseProgress(line); ok {
			c.logger.DebugContext(ctx, "download progress",
				logging.Float64("percent", update.Percent),
				logging.String("detail", update.Message))
			return
		}
		c.logger.DebugContext(ctx, line)
	})
	if err != nil {
		return services.Wrap(services.ErrFetchFailed, "ytdlp", "download", url, err)
	}
	return nil
}

// parseProgress extracts the completion percentage from yt-dlp "[download]"
// lines, e.g. "[download]  42.3% of 10.00MiB at 1.00MiB/s ETA 00:06".
func parseProgress(line string) (ProgressUpdate, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[download]") {
		return ProgressUpdate{}, false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, "[download]"))
	fields := strings.Fields(rest)
	if len(fields) == 0 || !strings.HasSuffix(fields[0], "%") {
		return ProgressUpdate{}, false
	}
	percent, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "%"), 64)
	if err != nil {
		return ProgressUpdate{}, false
	}
	update := ProgressUpdate{Percent: percent}
	if len(fields) > 1 {
		update.Message = strings.Join(fields[1:], " ")
	} else {
		update.Message = fmt.Sprintf("%.1f%%", percent)
	}
	return update, true
}
