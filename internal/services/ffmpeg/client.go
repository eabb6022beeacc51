// Package ffmpeg wraps the ffmpeg trimmer. Timestamps are opaque text
// handed straight to the tool; snip never parses them.
package ffmpeg

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"snip/internal/logging"
	"snip/internal/services"
)

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

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary      string
	clipTimeout time.Duration
	logger      *slog.Logger
	exec        services.Executor
}

// New constructs an ffmpeg client.
func New(binary string, clipTimeoutSeconds int, logger *slog.Logger, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{
		binary:      binary,
		clipTimeout: time.Duration(clipTimeoutSeconds) * time.Second,
		logger:      logging.NewComponentLogger(logger, "ffmpeg"),
		exec:        services.CommandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Cut trims input between start and end into output, overwriting any
// existing file there. The clip is re-encoded to H.264/AAC since cached
// sources often carry AV1 or VP9 streams players choke on. Non-zero exit
// is reported as ErrClipFailed.
func (c *Client) Cut(ctx context.Context, input, start, end, output string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("ffmpeg: input path required")
	}
	if strings.TrimSpace(output) == "" {
		return errors.New("ffmpeg: output path required")
	}
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return errors.New("ffmpeg: start and end timestamps required")
	}

	clipCtx := ctx
	if c.clipTimeout > 0 {
		var cancel context.CancelFunc
		clipCtx, cancel = context.WithTimeout(ctx, c.clipTimeout)
		defer cancel()
	}

	args := []string{
		"-y",
		"-i", input,
		"-ss", start,
		"-to", end,
		"-c:v", "libx264",
		"-c:a", "aac",
		output,
	}

	err := c.exec.Run(clipCtx, c.binary, args, func(line string) {
		c.logger.DebugContext(ctx, line)
	})
	if err != nil {
		return services.Wrap(services.ErrClipFailed, "ffmpeg", "cut", input, err)
	}
	return nil
}
