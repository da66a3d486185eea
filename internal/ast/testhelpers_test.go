// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ast

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-overload/internal/source"
)

const shapesSource = `package shapes

import "example.com/overload"

func Register(c *Class) error {
	return overload.Install(c, func(d *overload.Definer) {
		d.Def("area", func(side float64) float64 { return side * side })
		d.Def("area", func(w, h float64) float64 {
			return w * h
		})
		d.Def("name", func() string { return "shape" })
	})
}
`

// parseFixture parses src as path with p, serving it from an in-memory
// cache. It returns the tree and a locator over the same cache.
func parseFixture(t *testing.T, p Parser, path, src string) (*Tree, *source.Locator) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(src), 0o644))
	loc := source.NewLocator(source.NewCache(fs))

	content, err := loc.Cache().Content(path)
	require.NoError(t, err)
	tree, err := p.Parse(context.Background(), path, content)
	require.NoError(t, err)
	return tree, loc
}

func writeFixture(t *testing.T, root, relPath, content string) {
	t.Helper()
	fullPath := filepath.Join(root, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
}
