package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"snip/internal/cache"
	"snip/internal/clipper"
	"snip/internal/deps"
	"snip/internal/logging"
	"snip/internal/services/ffmpeg"
	"snip/internal/services/mpv"
	"snip/internal/services/ytdlp"
)

// runClip executes one download-trim-play invocation end to end.
func runClip(cmd *cobra.Command, cmdCtx *commandContext, args []string) error {
	cfg, err := cmdCtx.ensureConfig()
	if err != nil {
		return err
	}

	if err := deps.Verify(cfg); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stamp := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("snip-%s.log", stamp))
	logger, err := logging.New(logging.Options{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stderr", logPath},
		ErrorOutputPaths: []string{"stderr"},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	logging.CleanupOldLogs(logger, cfg.Paths.LogDir, "snip-*.log", cfg.Logging.RetentionDays, filepath.Base(logPath))

	store, err := cache.NewStore(cache.Options{
		Dir:           cfg.Paths.CacheDir,
		RetentionDays: cfg.Cache.RetentionDays,
		IndexEnabled:  cfg.Cache.IndexEnabled,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	fetcher, err := ytdlp.New(cfg.Tools.Fetcher, cfg.Tools.FetchTimeout, logger)
	if err != nil {
		return err
	}
	cutter, err := ffmpeg.New(cfg.Tools.Clipper, cfg.Tools.ClipTimeout, logger)
	if err != nil {
		return err
	}
	player, err := mpv.New(cfg.Tools.Player, logger)
	if err != nil {
		return err
	}

	clip, err := clipper.New(cfg, store, fetcher, cutter, player, logger)
	if err != nil {
		return err
	}
	return clip.Run(ctx, clipper.Request{URL: args[0], Start: args[1], End: args[2]})
}
