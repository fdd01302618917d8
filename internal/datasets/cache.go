package datasets

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fitfuture/fitfuture/internal/telemetry/metrics"
	"github.com/fitfuture/fitfuture/pkg"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Cache loads each reference dataset from disk at most once per process
// and hands out the parsed result from memory afterwards. A dataset file
// that is not present is a first-class state, not an error: the absence is
// memoized too, and callers get a nil dataset back.
type Cache struct {
	datasetsDir string
	metrics     *metrics.Manager

	mu      sync.Mutex
	entries map[Key]*cacheEntry
}

type cacheEntry struct {
	dataset *Dataset
	err     error
}

func NewCache(datasetsDir string, metrics *metrics.Manager) *Cache {
	return &Cache{
		datasetsDir: datasetsDir,
		metrics:     metrics,
		entries:     make(map[Key]*cacheEntry),
	}
}

// Get returns the dataset for the given key, loading it on first use.
// A missing file yields (nil, nil).
func (c *Cache) Get(key Key) (*Dataset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		return entry.dataset, entry.err
	}

	dataset, err := c.load(key)
	c.entries[key] = &cacheEntry{dataset: dataset, err: err}

	return dataset, err
}

// Preload loads all known datasets eagerly, so the first summary request
// does not pay the parsing cost. Missing files are fine, parse failures
// are accumulated and reported.
func (c *Cache) Preload() error {
	var errs error
	for _, key := range AllKeys() {
		if _, err := c.Get(key); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("preload %s: %w", key, err))
		}
	}
	return errs
}

// Snapshots describes all known datasets, present or not.
func (c *Cache) Snapshots() map[Key]Snapshot {
	snapshots := make(map[Key]Snapshot, len(AllKeys()))
	for _, key := range AllKeys() {
		dataset, err := c.Get(key)
		if err != nil {
			snapshots[key] = Snapshot{Exists: false, Err: err.Error()}
			continue
		}
		if dataset == nil {
			snapshots[key] = Snapshot{Exists: false}
			continue
		}
		snapshots[key] = Snapshot{
			Exists:   true,
			NumRows:  dataset.NumRows(),
			NumCols:  dataset.NumCols,
			Averages: dataset.Averages(),
		}
	}
	return snapshots
}

func (c *Cache) load(key Key) (*Dataset, error) {
	path := filepath.Join(c.datasetsDir, key.Filename())
	exists, err := pkg.PathExists(path, false)
	if err != nil {
		c.metrics.CounterDatasetLoads.WithLabelValues(string(key), "error").Inc()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !exists {
		log.Debugf("dataset %s not found at %s, skipping", key, path)
		c.metrics.CounterDatasetLoads.WithLabelValues(string(key), "absent").Inc()
		return nil, nil
	}

	file, err := os.Open(path)
	if err != nil {
		c.metrics.CounterDatasetLoads.WithLabelValues(string(key), "error").Inc()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Errorf("close dataset file %s: %s", path, err)
		}
	}()

	dataset, err := Load(key, csv.NewReader(file))
	if err != nil {
		c.metrics.CounterDatasetLoads.WithLabelValues(string(key), "error").Inc()
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	c.metrics.CounterDatasetLoads.WithLabelValues(string(key), "loaded").Inc()
	log.Debugf("dataset %s loaded: %d rows, %d cols", key, dataset.NumRows(), dataset.NumCols)

	return dataset, nil
}
