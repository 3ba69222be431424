package storage

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"

	"timeline-stats/internal/riot"
)

const (
	cacheFileSuffix = ".json.gz"

	// Bloom filter sizing: far more matches than a single operator will
	// ever cache, 0.1% false positive rate
	bloomEstimate      = 100000
	bloomFalsePositive = 0.001
)

// TimelineCache is a read-through disk cache for raw match timelines.
// Each timeline is stored as one gzipped JSON file keyed by match ID; a
// bloom filter seeded from the directory answers "definitely not cached"
// without touching the filesystem.
type TimelineCache struct {
	mu   sync.Mutex
	dir  string
	seen *bloom.BloomFilter
}

// NewTimelineCache opens (creating if needed) a cache rooted at dir and
// seeds the index from the files already present
func NewTimelineCache(dir string) (*TimelineCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}

	c := &TimelineCache{
		dir:  dir,
		seen: bloom.NewWithEstimates(bloomEstimate, bloomFalsePositive),
	}

	files, err := filepath.Glob(filepath.Join(dir, "*"+cacheFileSuffix))
	if err != nil {
		return nil, fmt.Errorf("failed to scan cache directory: %w", err)
	}
	for _, f := range files {
		matchID := strings.TrimSuffix(filepath.Base(f), cacheFileSuffix)
		c.seen.AddString(matchID)
	}

	return c, nil
}

// Get returns the cached timeline for a match ID, or ok=false if it is not
// cached. A bloom filter false positive degrades to one extra file open.
func (c *TimelineCache) Get(matchID string) (*riot.TimelineResponse, bool, error) {
	c.mu.Lock()
	cached := c.seen.TestString(matchID)
	c.mu.Unlock()
	if !cached {
		return nil, false, nil
	}

	f, err := os.Open(c.path(matchID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to open cached timeline: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached timeline: %w", err)
	}
	defer gz.Close()

	var timeline riot.TimelineResponse
	if err := json.NewDecoder(gz).Decode(&timeline); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached timeline: %w", err)
	}

	return &timeline, true, nil
}

// Put stores a timeline. The write goes to a temp file first and is renamed
// into place so readers never observe a partial entry.
func (c *TimelineCache) Put(matchID string, timeline *riot.TimelineResponse) error {
	tmp, err := os.CreateTemp(c.dir, matchID+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpPath := tmp.Name()

	gz := gzip.NewWriter(tmp)
	if err := json.NewEncoder(gz).Encode(timeline); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to encode timeline: %w", err)
	}
	if err := gz.Close(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to flush timeline: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close cache file: %w", err)
	}

	if err := os.Rename(tmpPath, c.path(matchID)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to commit cache file: %w", err)
	}

	c.mu.Lock()
	c.seen.AddString(matchID)
	c.mu.Unlock()

	return nil
}

func (c *TimelineCache) path(matchID string) string {
	return filepath.Join(c.dir, matchID+cacheFileSuffix)
}
