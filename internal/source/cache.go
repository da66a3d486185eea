// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package source

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"
)

// Cache holds raw file content by path. A file is read the first time it
// is asked for and served from memory afterwards; there is no eviction, so
// a cache should live only as long as one compilation session.
type Cache struct {
	fs    afero.Fs
	mu    sync.Mutex
	files map[string][]byte
	reads int
}

// NewCache returns an empty cache reading from fs. A nil fs reads the
// operating system's filesystem.
func NewCache(fs afero.Fs) *Cache {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Cache{
		fs:    fs,
		files: make(map[string][]byte),
	}
}

// Content returns the bytes of the file at path.
func (c *Cache) Content(path string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if content, ok := c.files[path]; ok {
		return content, nil
	}

	content, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c.reads++
	c.files[path] = content
	return content, nil
}

// Put stores content for path, replacing anything cached before.
func (c *Cache) Put(path string, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[path] = content
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.files)
}

// Reads returns how many times the underlying filesystem was read.
func (c *Cache) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}
