// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ast

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/petar-djukic/go-overload/internal/source"
)

// GoParser parses with go/parser. Node kinds are the go/ast type names
// ("CallExpr", "FuncLit", ...).
type GoParser struct{}

// Name returns the backend name.
func (GoParser) Name() string { return BackendGo }

// Parse parses a complete Go file.
func (GoParser) Parse(ctx context.Context, path string, src []byte) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return &Tree{Path: path, Root: Convert(fset, file), Dialect: goDialect{}}, nil
}

// Convert builds a source.Node tree mirroring root. Children keep go/ast's
// field order. Identifiers and basic literals get a terminal token holding
// their text.
func Convert(fset *token.FileSet, root ast.Node) *source.Node {
	var top *source.Node
	var stack []*source.Node

	pre := func(c *astutil.Cursor) bool {
		n := c.Node()
		if n == nil {
			return false
		}
		node := &source.Node{Kind: kindOf(n), Span: spanOf(fset, n)}
		switch x := n.(type) {
		case *ast.Ident:
			node.Children = append(node.Children, source.Token{Kind: token.IDENT.String(), Text: x.Name})
		case *ast.BasicLit:
			node.Children = append(node.Children, source.Token{Kind: x.Kind.String(), Text: x.Value})
		}
		if len(stack) == 0 {
			top = node
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		}
		stack = append(stack, node)
		return true
	}
	post := func(*astutil.Cursor) bool {
		stack = stack[:len(stack)-1]
		return true
	}

	astutil.Apply(root, pre, post)
	return top
}

// kindOf returns the go/ast type name of n without the package prefix.
func kindOf(n ast.Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}

// spanOf converts go/token's 1-based columns to 0-based ones. End() is
// already one past the node, which makes the last column exclusive.
func spanOf(fset *token.FileSet, n ast.Node) source.Span {
	start := fset.Position(n.Pos())
	end := fset.Position(n.End())
	return source.Span{
		FirstLine:   start.Line,
		FirstColumn: start.Column - 1,
		LastLine:    end.Line,
		LastColumn:  end.Column - 1,
	}
}

type goDialect struct{}

func (goDialect) FuncLitKind() string { return "FuncLit" }
func (goDialect) CallKind() string    { return "CallExpr" }

func (goDialect) Callee(call *source.Node) string {
	nodes := call.Nodes()
	if len(nodes) == 0 {
		return ""
	}
	fun := nodes[0]
	switch fun.Kind {
	case "Ident":
		return fun.Text()
	case "SelectorExpr":
		parts := fun.Nodes()
		return parts[len(parts)-1].Text()
	}
	return ""
}

func (goDialect) Args(call *source.Node) []*source.Node {
	nodes := call.Nodes()
	if len(nodes) < 2 {
		return nil
	}
	return nodes[1:]
}

func (goDialect) StringValue(n *source.Node) (string, bool) {
	if n.Kind != "BasicLit" {
		return "", false
	}
	toks := n.Tokens()
	if len(toks) == 0 || toks[0].Kind != token.STRING.String() {
		return "", false
	}
	s, err := strconv.Unquote(toks[0].Text)
	if err != nil {
		return "", false
	}
	return s, true
}

func (goDialect) Signature(lit *source.Node) (params, body *source.Node) {
	for _, n := range lit.Nodes() {
		switch n.Kind {
		case "FuncType":
			// A function literal has no type parameters, so the first
			// field list is always the parameter list.
			for _, f := range n.Nodes() {
				if f.Kind == "FieldList" {
					params = f
					break
				}
			}
		case "BlockStmt":
			body = n
		}
	}
	return params, body
}
