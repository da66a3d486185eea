// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package overload

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/petar-djukic/go-overload/internal/ast"
	"github.com/petar-djukic/go-overload/internal/metrics"
	internal "github.com/petar-djukic/go-overload/internal/overload"
	"github.com/petar-djukic/go-overload/pkg/object"
)

// ErrInvalidConfig is returned by New for a config it cannot use.
var ErrInvalidConfig = errors.New("invalid config")

// New validates cfg and returns an Installer.
func New(cfg Config) (Installer, error) {
	parser, err := ast.NewParser(cfg.Parser)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var col *metrics.Collector
	if cfg.Registerer != nil {
		col, err = metrics.NewCollector(cfg.Registerer)
		if err != nil {
			return nil, fmt.Errorf("%w: registering metrics: %v", ErrInvalidConfig, err)
		}
	}

	return &installer{
		compiler: internal.New(internal.Config{
			Parser:         parser,
			Logger:         cfg.Logger,
			Metrics:        col,
			SourceOptional: cfg.SourceOptional,
		}),
	}, nil
}

// installer adapts internal/overload.Compiler to the public Installer
// interface.
type installer struct {
	compiler *internal.Compiler
}

func (i *installer) Install(ctx context.Context, class *object.Class, define func(*Definer)) (*Result, error) {
	ir, err := i.compiler.Install(ctx, class, internal.Block{Define: define})
	if err != nil {
		return nil, err
	}
	return &Result{
		Session:     ir.Session,
		Definitions: ir.Definitions,
		Groups:      ir.Groups,
	}, nil
}

var (
	defaultOnce      sync.Once
	defaultInstaller Installer
)

// Install installs define on class with the default configuration. The
// source files it reads are cached for the life of the process.
func Install(class *object.Class, define func(*Definer)) error {
	defaultOnce.Do(func() {
		defaultInstaller, _ = New(Config{})
	})
	_, err := defaultInstaller.Install(context.Background(), class, define)
	return err
}
