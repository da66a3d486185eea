// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ast

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/go-overload/internal/source"
	"github.com/petar-djukic/go-overload/pkg/types"
)

// Call names recognized in overload blocks.
const (
	DefineCall  = "Def"     // d.Def("name", func(...) {...})
	InstallCall = "Install" // overload.Install(class, func(d *overload.Definer) {...})
)

// BlockAt returns the outermost function literal that starts on line, or
// nil if there is none.
func BlockAt(tree *Tree, line int) *source.Node {
	for _, lit := range source.FindNodes(tree.Root, tree.Dialect.FuncLitKind()) {
		if lit.Span.FirstLine == line {
			return lit
		}
	}
	return nil
}

// InstallBlocks returns the overload blocks passed to Install calls in
// the tree. For each call the first function literal among its arguments
// is the block.
func InstallBlocks(tree *Tree) []*source.Node {
	d := tree.Dialect
	var blocks []*source.Node
	for _, call := range source.FindNodes(tree.Root, d.CallKind()) {
		if d.Callee(call) != InstallCall {
			continue
		}
		for _, arg := range d.Args(call) {
			if lits := source.FindNodes(arg, d.FuncLitKind()); len(lits) > 0 {
				blocks = append(blocks, lits[0])
				break
			}
		}
	}
	return blocks
}

// Definitions returns the Def calls of block in source order. Each gets the
// next sequence index regardless of its name. Def calls nested inside an
// earlier definition belong to that definition's body, not to the block.
//
// Parameter and body text is read through loc from the file the tree was
// parsed from. When the implementation is not a function literal the text
// is left empty.
func Definitions(tree *Tree, block *source.Node, loc *source.Locator) ([]types.Definition, error) {
	d := tree.Dialect
	var defs []types.Definition
	var taken []source.Span

	for _, call := range source.FindNodes(block, d.CallKind()) {
		if d.Callee(call) != DefineCall || within(taken, call.Span) {
			continue
		}
		args := d.Args(call)
		if len(args) < 2 {
			continue
		}

		def := types.Definition{
			Index:    len(defs),
			Location: types.Location{File: tree.Path, Line: call.Span.FirstLine},
		}
		if name, ok := d.StringValue(args[0]); ok {
			def.Name = name
		}

		if impl := args[1]; impl.Kind == d.FuncLitKind() {
			def.Location.Line = impl.Span.FirstLine
			params, body := d.Signature(impl)
			if params != nil {
				text, err := loc.Source(tree.Path, params)
				if err != nil {
					return nil, fmt.Errorf("parameters of definition %d: %w", def.Index, err)
				}
				def.Params = NormalizeParams(text)
			}
			if body != nil {
				text, err := loc.Source(tree.Path, body)
				if err != nil {
					return nil, fmt.Errorf("body of definition %d: %w", def.Index, err)
				}
				def.Body = NormalizeBody(text)
			}
		}

		taken = append(taken, call.Span)
		defs = append(defs, def)
	}
	return defs, nil
}

// NormalizeParams strips the parentheses from an extracted parameter list.
// A lone "(" is what an empty parameter list extracts to when its closing
// position is missing; it means no parameters.
func NormalizeParams(text string) string {
	if text == "(" {
		return ""
	}
	text = strings.TrimPrefix(text, "(")
	text = strings.TrimSuffix(text, ")")
	return strings.TrimSpace(text)
}

// NormalizeBody strips the braces from an extracted body.
func NormalizeBody(text string) string {
	text = strings.TrimPrefix(text, "{")
	text = strings.TrimSuffix(text, "}")
	return strings.TrimSpace(text)
}

func within(spans []source.Span, s source.Span) bool {
	for _, outer := range spans {
		if outer.Contains(s) {
			return true
		}
	}
	return false
}
