// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package overload adds multiple dispatch to object system classes.
//
// An overload block is a function literal that registers definitions with
// Def. Definitions may share a name; calling that name runs the first
// definition, in the order they appear in the block, whose parameters
// bind the call's arguments:
//
//	err := overload.Install(class, func(d *overload.Definer) {
//		d.Def("area", func(side float64) float64 { return side * side })
//		d.Def("area", func(w, h float64) float64 { return w * h })
//	})
//
// The block's source file is read to record each definition's parameter
// list, body and line, so it must be available at run time unless
// Config.SourceOptional is set.
package overload

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	internal "github.com/petar-djukic/go-overload/internal/overload"
	"github.com/petar-djukic/go-overload/pkg/object"
	"github.com/petar-djukic/go-overload/pkg/types"
)

// Definer collects the definitions of an overload block.
type Definer = internal.Definer

// Option adjusts one definition.
type Option = internal.Option

// Defaults gives the last len(values) fixed parameters of a definition
// default values.
func Defaults(values ...any) Option { return internal.Defaults(values...) }

// Error types of Install and of dispatch.
var (
	ErrParse      = internal.ErrParse      // Block source unreadable, unparsable or not found
	ErrGeneration = internal.ErrGeneration // A definition cannot become a method
	ErrNoMatch    = internal.ErrNoMatch    // No definition binds the call's arguments
)

// Typed errors carrying the failing location, definition or call.
type (
	ParseError      = internal.ParseError
	GenerationError = internal.GenerationError
	NoMatchError    = internal.NoMatchError
)

// Config configures an Installer.
type Config struct {
	Parser         string               // "go" (default) or "treesitter"
	SourceOptional bool                 // Install from runtime data when source is unavailable
	Logger         *slog.Logger         // Default discards
	Registerer     prometheus.Registerer // Registers install and dispatch counters; nil disables them
}

// Result describes one install.
type Result struct {
	Session     string             // Identifies the install in logs
	Definitions []types.Definition // In source order
	Groups      []types.Group      // One per installed dispatcher
}

// Installer installs overload blocks on classes. It is safe for
// concurrent use and caches the source files it reads.
type Installer interface {
	// Install compiles define and installs its methods on class. On error
	// class is left unchanged.
	Install(ctx context.Context, class *object.Class, define func(*Definer)) (*Result, error)
}
