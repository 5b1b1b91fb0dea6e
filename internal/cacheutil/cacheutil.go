// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/apidiff/internal/log"
)

// Cache stores downloaded artifacts (surfaces and recorded difference streams)
// on disk, keyed by a clear-text key that is hashed into the file name.
type Cache struct {
	// Base is the root directory of the cache.
	Base string
}

// Dir resolves the base cache directory.
// Precedence:
//  1. APIDIFF_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/apidiff
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("APIDIFF_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "apidiff"), true
	}
	return "", false
}

// Enabled returns true unless APIDIFF_CACHE explicitly disables it ("0" or
// "false").
func Enabled() bool {
	v := os.Getenv("APIDIFF_CACHE")
	return v != "0" && v != "false"
}

// Open returns the cache rooted at Dir, creating the directory. It returns nil
// with no error when caching is disabled or no directory can be resolved.
func Open() (*Cache, error) {
	if !Enabled() {
		log.Debugf("cache disabled")
		return nil, nil
	}
	base, ok := Dir()
	if !ok {
		return nil, nil
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{Base: base}, nil
}

// Path returns where the entry for key beneath subdirs lives.
func (c *Cache) Path(subdirs []string, key string) string {
	parts := append([]string{c.Base}, subdirs...)
	return filepath.Join(append(parts, encodeKey(key))...)
}

// Get returns the cached data for key. A nil Cache always misses.
func (c *Cache) Get(subdirs []string, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := os.ReadFile(c.Path(subdirs, key))
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s", key)
	return data, true
}

// Put stores data for key beneath subdirs. A nil Cache discards the write.
func (c *Cache) Put(subdirs []string, key string, data []byte) error {
	if c == nil {
		return nil
	}
	p := c.Path(subdirs, key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s", key)
	return nil
}

// Purge removes entries older than maxAge. A non-positive maxAge or a nil
// Cache is a no-op.
func (c *Cache) Purge(maxAge time.Duration) error {
	if c == nil || maxAge <= 0 {
		return nil
	}

	err := filepath.Walk(c.Base, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}
		if info == nil || info.IsDir() || time.Since(info.ModTime()) <= maxAge {
			return nil
		}
		if err := os.Remove(path); err != nil {
			log.WithError(err).Warnf("failed to remove cache file %s", path)
			return nil
		}
		log.Debugf("removed cache file %s", path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

// encodeKey hashes a clear-text key into a file name.
func encodeKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
