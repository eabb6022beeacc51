package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"snip/internal/services"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "snip <url> <start> <end>",
		Short: "Download, trim, and play a clip from a remote video",
		Long: "snip fetches a remote video through its configured downloader, caches the\n" +
			"source file keyed by video id, trims the requested interval, and plays the\n" +
			"result. Repeat invocations for the same video reuse the cached download.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          validateClipArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClip(cmd, ctx, args)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newCacheCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))

	return rootCmd
}

// validateClipArgs rejects clip invocations with the wrong shape before any
// configuration or filesystem work happens.
func validateClipArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 3 {
		return nil
	}
	detail := fmt.Sprintf("expected <url> <start> <end>, got %d argument(s); run `snip --help` for details", len(args))
	return services.Wrap(services.ErrUsage, "cli", "args", detail, nil)
}
