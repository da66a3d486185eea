// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ast

import (
	"context"
	"fmt"
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/petar-djukic/go-overload/internal/source"
)

// leafKinds are named nodes kept as a single token even though the
// grammar gives them children.
var leafKinds = map[string]bool{
	"interpreted_string_literal": true,
	"raw_string_literal":         true,
	"rune_literal":               true,
}

// TreeSitterParser parses with tree-sitter's Go grammar. Node kinds are
// grammar node types ("call_expression", "func_literal", ...); anonymous
// grammar nodes become tokens.
type TreeSitterParser struct{}

// Name returns the backend name.
func (TreeSitterParser) Name() string { return BackendTreeSitter }

// Parse parses a complete Go file. Tree-sitter recovers from syntax errors;
// a tree containing error nodes is rejected.
func (TreeSitterParser) Parse(ctx context.Context, path string, src []byte) (*Tree, error) {
	root, err := sitter.ParseCtx(ctx, src, golang.GetLanguage())
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse %s: %w", path, err)
	}
	if root == nil {
		return nil, fmt.Errorf("tree-sitter parse %s: empty tree", path)
	}
	if root.HasError() {
		return nil, fmt.Errorf("%w: %s", ErrSyntax, path)
	}
	return &Tree{Path: path, Root: convertSitter(root, src), Dialect: sitterDialect{}}, nil
}

func convertSitter(n *sitter.Node, src []byte) *source.Node {
	node := &source.Node{Kind: n.Type(), Span: sitterSpan(n)}
	if leafKinds[n.Type()] || n.ChildCount() == 0 {
		node.Children = []any{source.Token{Kind: n.Type(), Text: n.Content(src)}}
		return node
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if c.IsNamed() {
			node.Children = append(node.Children, convertSitter(c, src))
		} else {
			node.Children = append(node.Children, source.Token{Kind: c.Type(), Text: c.Content(src)})
		}
	}
	return node
}

// sitterSpan converts tree-sitter's 0-based rows to 1-based lines. Columns
// are byte offsets already and the end point is exclusive.
func sitterSpan(n *sitter.Node) source.Span {
	start, end := n.StartPoint(), n.EndPoint()
	return source.Span{
		FirstLine:   int(start.Row) + 1,
		FirstColumn: int(start.Column),
		LastLine:    int(end.Row) + 1,
		LastColumn:  int(end.Column),
	}
}

type sitterDialect struct{}

func (sitterDialect) FuncLitKind() string { return "func_literal" }
func (sitterDialect) CallKind() string    { return "call_expression" }

func (sitterDialect) Callee(call *source.Node) string {
	nodes := call.Nodes()
	if len(nodes) == 0 {
		return ""
	}
	fun := nodes[0]
	switch fun.Kind {
	case "identifier":
		return fun.Text()
	case "selector_expression":
		parts := fun.Nodes()
		return parts[len(parts)-1].Text()
	}
	return ""
}

func (sitterDialect) Args(call *source.Node) []*source.Node {
	for _, n := range call.Nodes() {
		if n.Kind != "argument_list" {
			continue
		}
		var args []*source.Node
		for _, a := range n.Nodes() {
			if a.Kind != "comment" {
				args = append(args, a)
			}
		}
		return args
	}
	return nil
}

func (sitterDialect) StringValue(n *source.Node) (string, bool) {
	if n.Kind != "interpreted_string_literal" && n.Kind != "raw_string_literal" {
		return "", false
	}
	s, err := strconv.Unquote(n.Text())
	if err != nil {
		return "", false
	}
	return s, true
}

func (sitterDialect) Signature(lit *source.Node) (params, body *source.Node) {
	for _, n := range lit.Nodes() {
		switch n.Kind {
		case "parameter_list":
			// A result list may also be a parameter_list; the first one
			// is the parameters.
			if params == nil {
				params = n
			}
		case "block":
			body = n
		}
	}
	return params, body
}
