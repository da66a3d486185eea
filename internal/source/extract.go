// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package source

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSpanOutOfRange is returned when a span does not fit the content it
// is extracted from. Well-formed trees never produce it.
var ErrSpanOutOfRange = errors.New("span out of range")

// Extract returns the text covered by span, inclusive of both ends.
func Extract(span Span, content []byte) (string, error) {
	var lines []string
	if span.FirstLine != 1 || span.LastLine != 1 {
		lines = strings.Split(string(content), "\n")
	}

	start, err := offset(lines, span.FirstLine, span.FirstColumn)
	if err != nil {
		return "", fmt.Errorf("span %s start: %w", span, err)
	}
	end, err := offset(lines, span.LastLine, span.LastColumn-1)
	if err != nil {
		return "", fmt.Errorf("span %s end: %w", span, err)
	}

	if start < 0 || start > end+1 || end+1 > len(content) {
		return "", fmt.Errorf("span %s covers bytes %d..%d of %d: %w",
			span, start, end, len(content), ErrSpanOutOfRange)
	}
	return string(content[start : end+1]), nil
}

// offset converts a line/column pair into a byte offset. The lines before
// the target line contribute their length plus one newline each.
func offset(lines []string, line, column int) (int, error) {
	if line < 1 {
		return 0, ErrSpanOutOfRange
	}
	if line == 1 {
		return column, nil
	}
	if line-1 > len(lines) {
		return 0, ErrSpanOutOfRange
	}
	total := 0
	for _, l := range lines[:line-1] {
		total += len(l)
	}
	return total + line - 1 + column, nil
}

// Locator extracts node text from files read through a Cache.
type Locator struct {
	cache *Cache
}

// NewLocator returns a locator reading through cache. A nil cache gets a
// fresh OS-backed one.
func NewLocator(cache *Cache) *Locator {
	if cache == nil {
		cache = NewCache(nil)
	}
	return &Locator{cache: cache}
}

// Cache returns the locator's file cache.
func (l *Locator) Cache() *Cache {
	return l.cache
}

// Source returns the text of node as it appears in the file at path.
func (l *Locator) Source(path string, node *Node) (string, error) {
	content, err := l.cache.Content(path)
	if err != nil {
		return "", err
	}
	return Extract(node.Span, content)
}
