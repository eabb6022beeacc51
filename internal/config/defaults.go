package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultLogDir              = "~/.local/share/snip/logs"
	defaultOutputPath          = "snip.mp4"
	defaultCacheRetentionDays  = 10
	defaultFetcherBinary       = "yt-dlp"
	defaultClipperBinary       = "ffmpeg"
	defaultPlayerBinary        = "mpv"
	defaultFetchTimeoutSeconds = 1800
	defaultClipTimeoutSeconds  = 600
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLogRetentionDays    = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir:   defaultCacheDir(),
			LogDir:     defaultLogDir,
			OutputPath: defaultOutputPath,
		},
		Cache: Cache{
			RetentionDays: defaultCacheRetentionDays,
			IndexEnabled:  true,
		},
		Tools: Tools{
			Fetcher:      defaultFetcherBinary,
			Clipper:      defaultClipperBinary,
			Player:       defaultPlayerBinary,
			FetchTimeout: defaultFetchTimeoutSeconds,
			ClipTimeout:  defaultClipTimeoutSeconds,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "snip")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/snip"
	}
	return filepath.Join(home, ".cache", "snip")
}
