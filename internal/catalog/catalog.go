// Package catalog persists the JDKs the user has added, keyed by path.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/jsonc"

	"github.com/pink-tools/pink-jdk/internal/jdk"
	"github.com/pink-tools/pink-otel"
)

var ErrNotFound = errors.New("jdk not found")

type Catalog struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Catalog {
	return &Catalog{path: path}
}

func (c *Catalog) Path() string {
	return c.path
}

// All returns the saved JDKs in insertion order. A missing file is an
// empty catalog. The file is read as JSONC so hand edits with comments or
// trailing commas still load.
func (c *Catalog) All() ([]jdk.JDK, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Add inserts j, or replaces the entry with the same path.
func (c *Catalog) Add(j jdk.JDK) error {
	return c.AddAll([]jdk.JDK{j})
}

// AddAll upserts jdks. Existing entries keep their position; new ones are
// appended in the given order.
func (c *Catalog) AddAll(jdks []jdk.JDK) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.load()
	if err != nil {
		return err
	}

	index := make(map[string]int, len(all))
	for i, j := range all {
		index[j.Path] = i
	}
	for _, j := range jdks {
		if i, ok := index[j.Path]; ok {
			all[i] = j
			continue
		}
		index[j.Path] = len(all)
		all = append(all, j)
	}

	if err := c.save(all); err != nil {
		return err
	}
	otel.Info(context.Background(), "catalog updated", otel.Attr{K: "added", V: len(jdks)}, otel.Attr{K: "total", V: len(all)})
	return nil
}

func (c *Catalog) Remove(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	all, err := c.load()
	if err != nil {
		return err
	}

	for i, j := range all {
		if j.Path == path {
			all = append(all[:i], all[i+1:]...)
			if err := c.save(all); err != nil {
				return err
			}
			otel.Info(context.Background(), "jdk removed", otel.Attr{K: "path", V: path})
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Clear deletes the catalog file.
func (c *Catalog) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *Catalog) load() ([]jdk.JDK, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.path, err)
	}

	var jdks []jdk.JDK
	if err := json.Unmarshal(jsonc.ToJSON(data), &jdks); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", c.path, err)
	}
	return jdks, nil
}

func (c *Catalog) save(jdks []jdk.JDK) error {
	if jdks == nil {
		jdks = []jdk.JDK{}
	}
	data, err := json.MarshalIndent(jdks, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("failed to create catalog dir: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return nil
}
