package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/singleflight"

	"snip/internal/logging"
	"snip/internal/services"
)

// lockRetryDelay is the poll interval while waiting on another process's
// per-key fetch lock.
const lockRetryDelay = 100 * time.Millisecond

// Fetch produces the media artifact for key. Implementations must write
// exactly one file named <key>.<ext> into the store's directory.
type Fetch func(ctx context.Context, key string) error

// Options configures a Store.
type Options struct {
	// Dir is the cache directory. Required.
	Dir string
	// RetentionDays is the age in days past which Evict removes entries.
	// Zero disables eviction.
	RetentionDays int
	// IndexEnabled maintains a SQLite key-to-filename index in Dir.
	IndexEnabled bool
	Logger       *slog.Logger
}

// Store owns a flat directory of cached media artifacts keyed by filename stem.
type Store struct {
	dir           string
	retentionDays int
	logger        *slog.Logger
	index         *index
	group         singleflight.Group
	statfs        statfsFunc
}

// EntrySummary surfaces human-friendly details about one cache entry.
type EntrySummary struct {
	Key        string
	File       string
	Path       string
	SizeBytes  int64
	ModifiedAt time.Time
}

// Stats describes current cache usage.
type Stats struct {
	Entries      int
	TotalBytes   int64
	FreeBytes    uint64
	TotalFSBytes uint64
	FreeRatio    float64
}

// NewStore creates the cache directory if needed and opens the index.
func NewStore(opts Options) (*Store, error) {
	dir := strings.TrimSpace(opts.Dir)
	if dir == "" {
		return nil, errors.New("cache: directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory: %w", err)
	}

	store := &Store{
		dir:           dir,
		retentionDays: opts.RetentionDays,
		logger:        logging.NewComponentLogger(opts.Logger, "cache"),
		statfs:        realStatfs,
	}

	if opts.IndexEnabled {
		ix, err := openIndex(dir)
		if err != nil {
			return nil, err
		}
		store.index = ix
	}

	return store, nil
}

// Close releases the index handle.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.index.Close()
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// ResolveOrFetch returns the cached artifact path for key, invoking fetch on
// a miss. Concurrent calls for the same key share one fetch: in-process via
// singleflight, across processes via a per-key advisory lock. A fetch that
// produces no readable file fails with services.ErrFetchFailed.
func (s *Store) ResolveOrFetch(ctx context.Context, key string, fetch Fetch) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("cache: key required")
	}
	if fetch == nil {
		return "", errors.New("cache: fetch callback required")
	}

	path, err, _ := s.group.Do(key, func() (any, error) {
		return s.resolveOrFetch(ctx, key, fetch)
	})
	if err != nil {
		return "", err
	}
	return path.(string), nil
}

func (s *Store) resolveOrFetch(ctx context.Context, key string, fetch Fetch) (string, error) {
	// Hit path: no lock, no subprocess.
	if path, ok, err := s.lookup(ctx, key); err != nil {
		return "", err
	} else if ok {
		s.logger.DebugContext(ctx, "cache hit",
			logging.String(logging.FieldCacheKey, key),
			logging.String("path", path))
		return path, nil
	}

	lock := flock.New(s.lockPath(key))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("cache: acquire fetch lock for %q: %w", key, err)
	}
	if !locked {
		return "", fmt.Errorf("cache: fetch lock for %q unavailable", key)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	// Another process may have completed the fetch while we waited.
	if path, ok, err := s.lookup(ctx, key); err != nil {
		return "", err
	} else if ok {
		s.logger.DebugContext(ctx, "cache hit after lock wait",
			logging.String(logging.FieldCacheKey, key),
			logging.String("path", path))
		return path, nil
	}

	s.logger.InfoContext(ctx, "cache miss; fetching",
		logging.String(logging.FieldCacheKey, key))

	if err := fetch(ctx, key); err != nil {
		if errors.Is(err, services.ErrFetchFailed) {
			return "", err
		}
		return "", services.Wrap(services.ErrFetchFailed, "cache", "fetch", key, err)
	}

	path, ok, err := s.lookup(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", services.Wrap(services.ErrFetchFailed, "cache", "fetch", "no file produced for "+key, nil)
	}

	s.logger.InfoContext(ctx, "cached fetched artifact",
		logging.String(logging.FieldCacheKey, key),
		logging.String("path", path))
	return path, nil
}

// lookup finds the artifact for key: index association first, then a
// directory prefix scan. Scan hits backfill the index; index rows pointing
// at vanished files are dropped.
func (s *Store) lookup(ctx context.Context, key string) (string, bool, error) {
	if s.index != nil {
		filename, ok, err := s.index.Lookup(ctx, key)
		if err != nil {
			return "", false, err
		}
		if ok {
			path := filepath.Join(s.dir, filename)
			if info, statErr := os.Stat(path); statErr == nil && !info.IsDir() {
				return path, true, nil
			}
			if err := s.index.Remove(ctx, key); err != nil {
				return "", false, err
			}
		}
	}

	name, ok, err := s.scanFor(key)
	if err != nil || !ok {
		return "", false, err
	}
	if s.index != nil {
		if err := s.index.Put(ctx, key, name); err != nil {
			return "", false, err
		}
	}
	return filepath.Join(s.dir, name), true, nil
}

// scanFor returns the lexicographically first file named <key>.<ext>.
// Multiple matches can exist when an earlier fetch chose a different
// container; the deterministic pick is documented behavior.
func (s *Store) scanFor(key string) (string, bool, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", false, fmt.Errorf("cache: list directory: %w", err)
	}
	prefix := key + "."
	matches := make([]string, 0, 1)
	for _, entry := range entries {
		if entry.IsDir() || reservedName(entry.Name()) {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			matches = append(matches, entry.Name())
		}
	}
	if len(matches) == 0 {
		return "", false, nil
	}
	sort.Strings(matches)
	if len(matches) > 1 {
		s.logger.Warn("multiple cache files share key prefix; using first",
			logging.String(logging.FieldCacheKey, key),
			logging.Int("matches", len(matches)),
			logging.String("picked", matches[0]))
	}
	return matches[0], true, nil
}

// Evict removes every entry whose age exceeds the retention window and
// returns the number of entries removed. The sweep is independent of any
// key being requested; it may remove an entry a subsequent lookup would
// have reused. Files that vanish between scan and delete are ignored.
func (s *Store) Evict(ctx context.Context) (int, error) {
	if s.retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("cache: list directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || reservedName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return removed, fmt.Errorf("cache: evict %q: %w", path, err)
		}
		if s.index != nil {
			if err := s.index.RemoveFilename(ctx, entry.Name()); err != nil {
				return removed, err
			}
		}
		removed++
		s.logger.InfoContext(ctx, "evicted stale cache entry",
			logging.String("path", path),
			logging.Duration("age", time.Since(info.ModTime()).Truncate(time.Hour)),
			logging.String(logging.FieldEventType, "cache_entry_evicted"))
	}
	return removed, nil
}

// Remove deletes every artifact for key along with its index association.
func (s *Store) Remove(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("cache: key required")
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("cache: list directory: %w", err)
	}
	prefix := key + "."
	found := false
	for _, entry := range entries {
		if entry.IsDir() || reservedName(entry.Name()) {
			continue
		}
		if !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cache: remove %q: %w", entry.Name(), err)
		}
		found = true
	}
	if !found {
		return fmt.Errorf("cache: no entry for key %q", key)
	}
	if s.index != nil {
		return s.index.Remove(ctx, key)
	}
	return nil
}

// Clear deletes every cache entry and resets the index.
func (s *Store) Clear(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("cache: list directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || reservedName(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cache: remove %q: %w", entry.Name(), err)
		}
	}
	if s.index != nil {
		return s.index.Clear(ctx)
	}
	return nil
}

// List returns a summary per cache entry sorted by modification time,
// newest first.
func (s *Store) List(ctx context.Context) ([]EntrySummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache: list directory: %w", err)
	}
	summaries := make([]EntrySummary, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || reservedName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		name := entry.Name()
		key := name
		if dot := strings.IndexByte(name, '.'); dot > 0 {
			key = name[:dot]
		}
		summaries = append(summaries, EntrySummary{
			Key:        key,
			File:       name,
			Path:       filepath.Join(s.dir, name),
			SizeBytes:  info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ModifiedAt.After(summaries[j].ModifiedAt)
	})
	return summaries, nil
}

// Stats returns cache usage and filesystem free-space info.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	summaries, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	var total int64
	for _, summary := range summaries {
		total += summary.SizeBytes
	}
	totalFS, freeFS, err := s.statfs(s.dir)
	if err != nil {
		return Stats{}, fmt.Errorf("cache: statfs: %w", err)
	}
	ratio := 1.0
	if totalFS > 0 {
		ratio = float64(freeFS) / float64(totalFS)
	}
	return Stats{
		Entries:      len(summaries),
		TotalBytes:   total,
		FreeBytes:    freeFS,
		TotalFSBytes: totalFS,
		FreeRatio:    ratio,
	}, nil
}

func (s *Store) lockPath(key string) string {
	return filepath.Join(s.dir, key+".lock")
}

// reservedName reports filenames owned by the cache machinery rather than
// cached artifacts: the index database with its WAL sidecars and per-key
// lock files.
func reservedName(name string) bool {
	if strings.HasPrefix(name, indexFileName) {
		return true
	}
	return strings.HasSuffix(name, ".lock")
}
