// Package clipper sequences the clip pipeline: cache eviction, key
// extraction, resolve-or-fetch, trim, and playback. The three external
// collaborators are capability interfaces so tests substitute fakes.
package clipper

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"snip/internal/cache"
	"snip/internal/config"
	"snip/internal/logging"
	"snip/internal/services"
	"snip/internal/videoid"
)

// Fetcher downloads a source video to the file named by template.
type Fetcher interface {
	Fetch(ctx context.Context, url, template string) error
}

// Cutter trims input between start and end into output.
type Cutter interface {
	Cut(ctx context.Context, input, start, end, output string) error
}

// Player plays the finished clip.
type Player interface {
	Play(ctx context.Context, path string) error
}

// Request is one clip invocation: a source URL and the interval to keep.
// Timestamps are opaque text forwarded to the trimmer untouched.
type Request struct {
	URL   string
	Start string
	End   string
}

// Clipper owns the cache store and the external collaborators.
type Clipper struct {
	cfg     *config.Config
	store   *cache.Store
	fetcher Fetcher
	cutter  Cutter
	player  Player
	logger  *slog.Logger
}

// New constructs a clipper. All collaborators are required.
func New(cfg *config.Config, store *cache.Store, fetcher Fetcher, cutter Cutter, player Player, logger *slog.Logger) (*Clipper, error) {
	if cfg == nil || store == nil || fetcher == nil || cutter == nil || player == nil {
		return nil, errors.New("clipper requires config, store, fetcher, cutter, and player")
	}
	return &Clipper{
		cfg:     cfg,
		store:   store,
		fetcher: fetcher,
		cutter:  cutter,
		player:  player,
		logger:  logging.NewComponentLogger(logger, "clipper"),
	}, nil
}

// Run executes one clip request end to end. Every stage failure aborts the
// remaining stages, except playback: the clip already exists on disk, so a
// player failure is logged and the run still succeeds.
func (c *Clipper) Run(ctx context.Context, req Request) error {
	if err := validate(req); err != nil {
		return err
	}

	key, err := videoid.Extract(req.URL)
	if err != nil {
		return err
	}
	logger := c.logger.With(logging.String(logging.FieldCacheKey, key))

	// Maintenance sweep first; it is independent of the requested key.
	evicted, err := c.store.Evict(ctx)
	if err != nil {
		return err
	}
	if evicted > 0 {
		logger.InfoContext(ctx, "evicted stale cache entries", logging.Int("count", evicted))
	}

	source, err := c.store.ResolveOrFetch(ctx, key, func(ctx context.Context, key string) error {
		template := filepath.Join(c.store.Dir(), key+".%(ext)s")
		return c.fetcher.Fetch(ctx, req.URL, template)
	})
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "resolved source video", logging.String("path", source))

	output := c.cfg.Paths.OutputPath
	if err := c.cutter.Cut(ctx, source, req.Start, req.End, output); err != nil {
		return err
	}
	logger.InfoContext(ctx, "wrote clip",
		logging.String("path", output),
		logging.String("start", req.Start),
		logging.String("end", req.End))

	if err := c.player.Play(ctx, output); err != nil {
		logger.WarnContext(ctx, "playback failed; clip is ready on disk",
			logging.Error(err),
			logging.String("path", output))
	}
	return nil
}

func validate(req Request) error {
	if strings.TrimSpace(req.URL) == "" {
		return services.Wrap(services.ErrUsage, "clipper", "validate", "url required", nil)
	}
	if strings.TrimSpace(req.Start) == "" {
		return services.Wrap(services.ErrUsage, "clipper", "validate", "start timestamp required", nil)
	}
	if strings.TrimSpace(req.End) == "" {
		return services.Wrap(services.ErrUsage, "clipper", "validate", "end timestamp required", nil)
	}
	return nil
}
