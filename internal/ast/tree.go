// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ast parses Go source into source.Node trees and finds overload
// blocks and their definitions in them. Two backends are available: the
// standard go/parser and tree-sitter's Go grammar.
package ast

import (
	"context"
	"errors"
	"fmt"

	"github.com/petar-djukic/go-overload/internal/source"
)

// ErrSyntax is returned when source text does not parse.
var ErrSyntax = errors.New("syntax error")

// Tree is a parsed file.
type Tree struct {
	Path    string       // Path the source was read from
	Root    *source.Node // Root node of the file
	Dialect Dialect      // Reads the backend's node kinds
}

// Parser turns Go source into a Tree.
type Parser interface {
	Parse(ctx context.Context, path string, src []byte) (*Tree, error)
	Name() string
}

// Dialect knows the node layout a parser backend produces.
type Dialect interface {
	// FuncLitKind is the kind of function literal nodes.
	FuncLitKind() string
	// CallKind is the kind of call expression nodes.
	CallKind() string
	// Callee returns the name of the called function or method:
	// "Def" for d.Def(...), "Install" for Install(...).
	Callee(call *source.Node) string
	// Args returns the argument nodes of a call.
	Args(call *source.Node) []*source.Node
	// StringValue returns the value of a string literal node.
	StringValue(n *source.Node) (string, bool)
	// Signature returns the parameter list and body nodes of a function
	// literal. Either may be nil.
	Signature(lit *source.Node) (params, body *source.Node)
}

// Backend names accepted by NewParser.
const (
	BackendGo         = "go"
	BackendTreeSitter = "treesitter"
)

// NewParser returns the parser backend with the given name.
func NewParser(name string) (Parser, error) {
	switch name {
	case "", BackendGo:
		return GoParser{}, nil
	case BackendTreeSitter:
		return TreeSitterParser{}, nil
	default:
		return nil, fmt.Errorf("unknown parser backend %q", name)
	}
}
