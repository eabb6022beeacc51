package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"snip/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigPathCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file if yt-dlp, ffmpeg, or mpv live outside your PATH.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "[paths]")
			fmt.Fprintf(out, "cache_dir   = %s\n", cfg.Paths.CacheDir)
			fmt.Fprintf(out, "log_dir     = %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "output_path = %s\n", cfg.Paths.OutputPath)
			fmt.Fprintln(out, "[cache]")
			fmt.Fprintf(out, "retention_days = %d\n", cfg.Cache.RetentionDays)
			fmt.Fprintf(out, "index_enabled  = %s\n", yesNo(cfg.Cache.IndexEnabled))
			fmt.Fprintln(out, "[tools]")
			fmt.Fprintf(out, "fetcher       = %s\n", cfg.Tools.Fetcher)
			fmt.Fprintf(out, "clipper       = %s\n", cfg.Tools.Clipper)
			fmt.Fprintf(out, "player        = %s\n", cfg.Tools.Player)
			fmt.Fprintf(out, "fetch_timeout = %d\n", cfg.Tools.FetchTimeout)
			fmt.Fprintf(out, "clip_timeout  = %d\n", cfg.Tools.ClipTimeout)
			fmt.Fprintln(out, "[logging]")
			fmt.Fprintf(out, "format         = %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "level          = %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "retention_days = %d\n", cfg.Logging.RetentionDays)
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the resolved configuration file path",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, path)
			if !exists {
				fmt.Fprintln(out, "(file does not exist; defaults are in effect)")
			}
			return nil
		},
	}
}
