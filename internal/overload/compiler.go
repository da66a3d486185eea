// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package overload installs multiple dispatch on object system classes.
// An overload block registers several definitions that may share a name;
// the compiler locates the block in its source file, records each
// definition's parameter list, body and line, and installs per definition
// an implementation and a checker plus one dispatcher per name that calls
// the first definition, in source order, whose parameters bind the
// arguments.
package overload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/petar-djukic/go-overload/internal/ast"
	"github.com/petar-djukic/go-overload/internal/logger"
	"github.com/petar-djukic/go-overload/internal/metrics"
	"github.com/petar-djukic/go-overload/internal/source"
	"github.com/petar-djukic/go-overload/pkg/object"
	"github.com/petar-djukic/go-overload/pkg/types"
)

var (
	errNilTarget = errors.New("nil target class")
	errNilBlock  = errors.New("nil overload block")
	errNoBlock   = errors.New("no function literal starts on the block's line")
)

// Config configures a Compiler.
type Config struct {
	Parser         ast.Parser         // Source backend (default ast.GoParser)
	Cache          *source.Cache      // File cache (default a fresh OS-backed cache)
	Logger         *slog.Logger       // Default discards
	Metrics        *metrics.Collector // Default records nothing
	SourceOptional bool               // Install from runtime data when source is unavailable
}

// Compiler installs overload blocks. Files it reads are cached for the
// compiler's lifetime.
type Compiler struct {
	parser         ast.Parser
	locator        *source.Locator
	log            *slog.Logger
	metrics        *metrics.Collector
	sourceOptional bool
}

// New returns a compiler for cfg.
func New(cfg Config) *Compiler {
	if cfg.Parser == nil {
		cfg.Parser = ast.GoParser{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	return &Compiler{
		parser:         cfg.Parser,
		locator:        source.NewLocator(cfg.Cache),
		log:            cfg.Logger,
		metrics:        cfg.Metrics,
		sourceOptional: cfg.SourceOptional,
	}
}

// Block is an overload block. Path and Line locate the function literal
// in its source file; when Path is empty they are taken from the runtime
// symbol table entry of Define.
type Block struct {
	Define func(*Definer)
	Path   string
	Line   int
}

// Result describes an install.
type Result struct {
	Session     string             // Identifies the install in logs
	Definitions []types.Definition // In source order
	Groups      []types.Group      // One per installed dispatcher
}

// candidate is one staged definition.
type candidate struct {
	def   types.Definition
	shape *Shape
}

// Install compiles block and installs its methods on target. All methods
// are generated first and committed together; on error target is left
// unchanged.
//
// Installing a name that an earlier install defined replaces that name's
// dispatcher and internal methods. Other names are untouched.
func (c *Compiler) Install(ctx context.Context, target *object.Class, block Block) (*Result, error) {
	if target == nil {
		return nil, &GenerationError{Err: errNilTarget}
	}
	if block.Define == nil {
		return nil, &GenerationError{Err: errNilBlock}
	}

	session := uuid.NewString()
	log := c.log.With("session", session, "class", target.Name())

	loc := types.Location{File: block.Path, Line: block.Line}
	if loc.File == "" {
		loc = funcLocation(block.Define)
	}

	defs, err := c.sourceDefinitions(ctx, loc)
	sourceless := false
	if err != nil {
		if !c.sourceOptional {
			return nil, err
		}
		log.Warn("overload source unavailable, using runtime locations", "block", loc.String(), "error", err)
		sourceless = true
	}

	d := &Definer{}
	block.Define(d)

	defs, err = reconcile(defs, d.regs, sourceless)
	if err != nil {
		return nil, err
	}

	cands := make([]*candidate, len(defs))
	staged := make([]*object.Method, 0, 2*len(defs))
	for i, def := range defs {
		shape, err := NewShape(d.regs[i].fn, d.regs[i].defaults)
		if err != nil {
			return nil, &GenerationError{Definition: def, Err: err}
		}
		cand := &candidate{def: def, shape: shape}
		cands[i] = cand
		staged = append(staged, checkerMethod(cand), implMethod(cand))
		log.Debug("staged overload",
			"name", def.Name, "index", def.Index, "params", def.Params,
			"shape", shape.String(), "location", def.Location.String())
	}

	groups := types.GroupDefinitions(defs)
	names := make(map[string]bool, len(groups))
	for _, g := range groups {
		names[g.Name] = true
		staged = append(staged, c.dispatcherMethod(target.Name(), g, cands))
	}

	target.Replace(func(name string) bool { return internalOf(name, names) }, staged)
	c.metrics.Installed(target.Name(), len(defs))
	log.Debug("installed overloads", "definitions", len(defs), "dispatchers", len(groups))

	return &Result{Session: session, Definitions: defs, Groups: groups}, nil
}

// sourceDefinitions reads, parses and locates the block at loc.
func (c *Compiler) sourceDefinitions(ctx context.Context, loc types.Location) ([]types.Definition, error) {
	if loc.File == "" {
		return nil, &ParseError{Location: loc, Err: errors.New("block has no source location")}
	}
	content, err := c.locator.Cache().Content(loc.File)
	if err != nil {
		return nil, &ParseError{Location: loc, Err: err}
	}
	tree, err := c.parser.Parse(ctx, loc.File, content)
	if err != nil {
		return nil, &ParseError{Location: loc, Err: err}
	}
	lit := ast.BlockAt(tree, loc.Line)
	if lit == nil {
		return nil, &ParseError{Location: loc, Err: errNoBlock}
	}
	defs, err := ast.Definitions(tree, lit, c.locator)
	if err != nil {
		return nil, &ParseError{Location: loc, Err: err}
	}
	return defs, nil
}

// reconcile pairs source definitions with the block's registrations. Names
// the source could not tell are taken from the registrations. Without
// source, definitions are built from the registrations alone.
func reconcile(defs []types.Definition, regs []registration, sourceless bool) ([]types.Definition, error) {
	if sourceless {
		defs = make([]types.Definition, len(regs))
		for i, r := range regs {
			defs[i] = types.Definition{Name: r.name, Index: i, Location: r.loc}
		}
	} else if len(defs) != len(regs) {
		return nil, &GenerationError{
			Err: fmt.Errorf("block registers %d definitions but its source declares %d", len(regs), len(defs)),
		}
	}

	for i := range defs {
		switch {
		case defs[i].Name == "":
			defs[i].Name = regs[i].name
		case defs[i].Name != regs[i].name:
			return nil, &GenerationError{
				Definition: defs[i],
				Err:        fmt.Errorf("registered as %q", regs[i].name),
			}
		}
		if defs[i].Name == "" {
			return nil, &GenerationError{Definition: defs[i], Err: errors.New("empty method name")}
		}
		if strings.HasPrefix(defs[i].Name, "__") {
			return nil, &GenerationError{Definition: defs[i], Err: errors.New("names starting with __ are reserved")}
		}
	}
	return defs, nil
}

func checkerMethod(cand *candidate) *object.Method {
	return &object.Method{
		Name:     cand.def.CheckerName(),
		Location: cand.def.Location,
		Fn: func(_ *object.Object, args []object.Value, _ object.Block) (object.Value, error) {
			return cand.shape.Accepts(args), nil
		},
	}
}

func implMethod(cand *candidate) *object.Method {
	return &object.Method{
		Name:     cand.def.ImplName(),
		Location: cand.def.Location,
		Fn:       cand.shape.Call,
	}
}

// dispatcherMethod tries the group's candidates in ascending index order
// and calls the first whose shape accepts the arguments.
func (c *Compiler) dispatcherMethod(class string, g types.Group, cands []*candidate) *object.Method {
	ordered := make([]*candidate, len(g.Indexes))
	defs := make([]types.Definition, len(g.Indexes))
	for i, idx := range g.Indexes {
		ordered[i] = cands[idx]
		defs[i] = cands[idx].def
	}
	m := c.metrics

	return &object.Method{
		Name:     g.Name,
		Location: ordered[0].def.Location,
		Fn: func(self *object.Object, args []object.Value, blk object.Block) (object.Value, error) {
			for _, cand := range ordered {
				if cand.shape.Accepts(args) {
					m.Dispatched(class, g.Name, metrics.Matched)
					return cand.shape.Call(self, args, blk)
				}
			}
			m.Dispatched(class, g.Name, metrics.NoMatch)
			return nil, &NoMatchError{Class: class, Name: g.Name, Args: len(args), Candidates: defs}
		},
	}
}

// internalOf reports whether name is an implementation or checker
// generated for one of names: __<name>_<n> or __<name>_<n>_checker.
func internalOf(name string, names map[string]bool) bool {
	if !strings.HasPrefix(name, "__") {
		return false
	}
	rest := strings.TrimSuffix(name[2:], "_checker")
	i := strings.LastIndexByte(rest, '_')
	if i < 0 || !isDigits(rest[i+1:]) {
		return false
	}
	return names[rest[:i]]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
