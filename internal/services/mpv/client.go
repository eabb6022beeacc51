// Package mpv wraps the media player used to preview the finished clip.
package mpv

import (
	"context"
	"errors"
	"log/slog"
	"strings"

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

// Client wraps mpv CLI interactions.
type Client struct {
	binary string
	logger *slog.Logger
	exec   services.Executor
}

// New constructs an mpv client.
func New(binary string, logger *slog.Logger, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("mpv binary required")
	}
	client := &Client{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "mpv"),
		exec:   services.InteractiveExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Play starts interactive playback of path and blocks until the player
// exits. Playback runs without a timeout; the user closes the player.
func (c *Client) Play(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("mpv: path required")
	}
	if err := c.exec.Run(ctx, c.binary, []string{path}, nil); err != nil {
		return services.Wrap(services.ErrExternalTool, "mpv", "play", path, err)
	}
	return nil
}
