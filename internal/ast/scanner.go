// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ast

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/petar-djukic/go-overload/internal/source"
	"github.com/petar-djukic/go-overload/pkg/types"
)

// skipDirs contains directory names that ScanDir skips by default.
var skipDirs = map[string]bool{
	"vendor":       true,
	".git":         true,
	"testdata":     true,
	"node_modules": true,
}

// ScanOptions configures ScanDir.
type ScanOptions struct {
	Parser      Parser        // Backend to parse with (default GoParser)
	Cache       *source.Cache // File cache (default a fresh OS-backed cache)
	Concurrency int           // Parallel parsers (default runtime.NumCPU())
}

// ScanResult holds the output of a directory scan.
type ScanResult struct {
	Files  []string            // Go files scanned, relative to the root
	Blocks []types.BlockReport // Overload blocks, ordered by file then line
	Errors []ScanError
}

// ScanError records a failure for a single file.
type ScanError struct {
	FilePath string
	Err      error
}

func (e ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.FilePath, e.Err)
}

// ScanDir walks the directory tree rooted at dir, parses every .go file
// with a bounded worker pool, and reports the overload blocks it finds.
//
// It skips vendor/, .git/, testdata/ and node_modules/ directories and
// respects .gitignore patterns found in the root directory. Failures for
// individual files are collected in ScanResult.Errors and do not abort the
// scan. File paths in the result are relative to dir.
func ScanDir(ctx context.Context, dir string, opts ScanOptions) (*ScanResult, error) {
	if opts.Parser == nil {
		opts.Parser = GoParser{}
	}
	if opts.Cache == nil {
		opts.Cache = source.NewCache(nil)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving directory: %w", err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		return nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absDir)
	}

	ignorer := loadGitignore(absDir)

	var paths []string
	err = filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() {
			if skipDirs[d.Name()] && path != absDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".go") {
			return nil
		}
		relPath, relErr := filepath.Rel(absDir, path)
		if relErr != nil {
			relPath = path
		}
		if ignorer.isIgnored(relPath) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	type fileResult struct {
		relPath string
		blocks  []types.BlockReport
		err     error
	}

	loc := source.NewLocator(opts.Cache)
	p := pool.NewWithResults[fileResult]().WithMaxGoroutines(opts.Concurrency)
	for _, path := range paths {
		path := path
		p.Go(func() fileResult {
			relPath, relErr := filepath.Rel(absDir, path)
			if relErr != nil {
				relPath = path
			}
			if err := ctx.Err(); err != nil {
				return fileResult{relPath: relPath, err: err}
			}
			blocks, err := ScanFile(ctx, opts.Parser, loc, path)
			for i := range blocks {
				relativize(&blocks[i], relPath)
			}
			return fileResult{relPath: relPath, blocks: blocks, err: err}
		})
	}

	results := p.Wait()
	sort.Slice(results, func(i, j int) bool { return results[i].relPath < results[j].relPath })

	scan := &ScanResult{}
	for _, fr := range results {
		scan.Files = append(scan.Files, fr.relPath)
		if fr.err != nil {
			scan.Errors = append(scan.Errors, ScanError{FilePath: fr.relPath, Err: fr.err})
			continue
		}
		scan.Blocks = append(scan.Blocks, fr.blocks...)
	}

	if err := ctx.Err(); err != nil {
		return scan, err
	}
	return scan, nil
}

// ScanFile parses one file and reports its overload blocks.
func ScanFile(ctx context.Context, parser Parser, loc *source.Locator, path string) ([]types.BlockReport, error) {
	content, err := loc.Cache().Content(path)
	if err != nil {
		return nil, err
	}
	tree, err := parser.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}

	var reports []types.BlockReport
	for _, block := range InstallBlocks(tree) {
		defs, err := Definitions(tree, block, loc)
		if err != nil {
			return nil, err
		}
		if len(defs) == 0 {
			continue
		}
		reports = append(reports, types.BlockReport{
			File:        path,
			Line:        block.Span.FirstLine,
			Definitions: defs,
			Groups:      types.GroupDefinitions(defs),
		})
	}
	return reports, nil
}

// relativize rewrites the report's file paths to relPath.
func relativize(r *types.BlockReport, relPath string) {
	r.File = relPath
	for i := range r.Definitions {
		r.Definitions[i].Location.File = relPath
	}
}

// gitignorer provides simple .gitignore matching.
type gitignorer struct {
	patterns []string
}

// loadGitignore reads .gitignore from the root directory. If no .gitignore
// exists or it cannot be read, returns an ignorer that matches nothing.
func loadGitignore(root string) gitignorer {
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return gitignorer{}
	}
	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return gitignorer{patterns: patterns}
}

// isIgnored checks whether a relative path matches any .gitignore pattern.
// Only directory prefixes and filepath.Match globs are supported.
func (g gitignorer) isIgnored(relPath string) bool {
	for _, pattern := range g.patterns {
		dirPattern := strings.TrimSuffix(pattern, "/")

		parts := strings.Split(relPath, string(filepath.Separator))
		for _, part := range parts {
			if matched, _ := filepath.Match(dirPattern, part); matched {
				return true
			}
		}

		if matched, _ := filepath.Match(pattern, relPath); matched {
			return true
		}
	}
	return false
}
