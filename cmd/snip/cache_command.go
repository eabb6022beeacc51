package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"snip/internal/cache"
	"snip/internal/fileutil"
	"snip/internal/logging"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the download cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCachePruneCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	cacheCmd.AddCommand(newCacheExportCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached downloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cacheStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}
			printCacheEntries(out, entries)
			return nil
		},
	}
}

func printCacheEntries(out io.Writer, entries []cache.EntrySummary) {
	const stampLayout = "2006-01-02 15:04"
	if isTerminal(out) {
		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, []string{
				entry.Key,
				entry.File,
				humanBytes(entry.SizeBytes),
				entry.ModifiedAt.Local().Format(stampLayout),
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Key", "File", "Size", "Fetched"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
		))
		return
	}
	for _, entry := range entries {
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n",
			entry.Key,
			entry.File,
			humanBytes(entry.SizeBytes),
			entry.ModifiedAt.Local().Format(stampLayout),
		)
	}
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show download cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cacheStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Entries: %d\n", stats.Entries)
			fmt.Fprintf(out, "Size:    %s\n", humanBytes(stats.TotalBytes))
			fmt.Fprintf(out, "Disk:    %s free (%.1f%%)\n", humanBytes(int64(stats.FreeBytes)), stats.FreeRatio*100)
			return nil
		},
	}
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove cache entries older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cacheStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Evict(cmd.Context())
			if err != nil {
				return err
			}
			if removed == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stale cache entries")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d stale cache entries\n", removed)
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cache entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cacheStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
			return nil
		},
	}
}

func newCacheExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <key> <destination>",
		Short: "Copy a cached download out of the cache",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cacheStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			key := strings.TrimSpace(args[0])
			entries, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			var entry *cache.EntrySummary
			for i := range entries {
				if entries[i].Key == key {
					entry = &entries[i]
					break
				}
			}
			if entry == nil {
				return fmt.Errorf("no cache entry for key %q", key)
			}

			dest := args[1]
			if info, err := os.Stat(dest); err == nil && info.IsDir() {
				dest = filepath.Join(dest, entry.File)
			}
			if err := fileutil.CopyFile(entry.Path, dest); err != nil {
				return fmt.Errorf("export %q: %w", key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", entry.File, dest)
			return nil
		},
	}
}

func cacheStore(ctx *commandContext) (*cache.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console"})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return cache.NewStore(cache.Options{
		Dir:           cfg.Paths.CacheDir,
		RetentionDays: cfg.Cache.RetentionDays,
		IndexEnabled:  cfg.Cache.IndexEnabled,
		Logger:        logger,
	})
}
