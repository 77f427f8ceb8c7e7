package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ResultCache persists the last evaluation status of each property in a
// sheet between runs.
type ResultCache struct {
	path    string
	mu      sync.RWMutex
	version string
	sheet   string
	results map[string]CachedResult
}

// NewResultCache creates a cache backed by path, loading it when the file
// already exists.
func NewResultCache(path string) (*ResultCache, error) {
	c := &ResultCache{
		path:    path,
		version: resultCacheVersion,
		results: make(map[string]CachedResult),
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	if err := c.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return c, nil
}

// Path returns the backing file.
func (c *ResultCache) Path() string { return c.path }

// Load reads the cache from disk.
func (c *ResultCache) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}

	var file ResultCacheFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}

	c.version = file.Version
	if c.version == "" {
		c.version = resultCacheVersion
	}
	c.sheet = file.Sheet
	c.results = file.Results
	if c.results == nil {
		c.results = make(map[string]CachedResult)
	}

	return nil
}

// Save writes the cache to disk atomically.
func (c *ResultCache) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	file := ResultCacheFile{
		Version: c.version,
		Sheet:   c.sheet,
		Results: c.results,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// SetSheet records which sheet the cached results belong to.
func (c *ResultCache) SetSheet(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sheet = name
}

// Sheet returns the recorded sheet name.
func (c *ResultCache) Sheet() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.sheet
}

// Get retrieves the cached result for a property.
func (c *ResultCache) Get(name string) (CachedResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result, ok := c.results[name]
	return result, ok
}

// Set updates the cached result for a property.
func (c *ResultCache) Set(name string, result CachedResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results[name] = result
}

// Invalidate removes the cached result for a property.
func (c *ResultCache) Invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.results, name)
}

// Prune drops cached results for properties not in keep.
func (c *ResultCache) Prune(keep []string) int {
	wanted := make(map[string]struct{}, len(keep))
	for _, name := range keep {
		wanted[name] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for name := range c.results {
		if _, ok := wanted[name]; !ok {
			delete(c.results, name)
			removed++
		}
	}
	return removed
}

// Names returns the cached property names, sorted.
func (c *ResultCache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.results))
	for name := range c.results {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
