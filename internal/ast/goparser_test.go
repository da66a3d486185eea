// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package ast

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-overload/internal/source"
)

func TestGoParser_Kinds(t *testing.T) {
	tree, _ := parseFixture(t, GoParser{}, "/src/a.go", "package a\n\nvar x = f(1, \"s\")\n")

	assert.Equal(t, "File", tree.Root.Kind)

	calls := source.FindNodes(tree.Root, "CallExpr")
	require.Len(t, calls, 1)
	call := calls[0]

	kinds := make([]string, 0)
	for _, n := range call.Nodes() {
		kinds = append(kinds, n.Kind)
	}
	assert.Equal(t, []string{"Ident", "BasicLit", "BasicLit"}, kinds)
	assert.Equal(t, "f", call.Nodes()[0].Text())
	assert.Equal(t, []source.Token{{Kind: "INT", Text: "1"}}, call.Nodes()[1].Tokens())
	assert.Equal(t, source.Span{FirstLine: 3, FirstColumn: 8, LastLine: 3, LastColumn: 17}, call.Span)
}

func TestGoParser_SpanExtractsNodeText(t *testing.T) {
	tree, loc := parseFixture(t, GoParser{}, "/src/shapes.go", shapesSource)

	lits := source.FindNodes(tree.Root, "FuncLit")
	require.Len(t, lits, 4)

	text, err := loc.Source(tree.Path, lits[1])
	require.NoError(t, err)
	assert.Equal(t, "func(side float64) float64 { return side * side }", text)

	text, err = loc.Source(tree.Path, lits[2])
	require.NoError(t, err)
	assert.Equal(t, "func(w, h float64) float64 {\n\t\t\treturn w * h\n\t\t}", text)
}

func TestGoParser_CallOrder(t *testing.T) {
	tree, _ := parseFixture(t, GoParser{}, "/src/shapes.go", shapesSource)

	var callees []string
	for _, call := range source.FindNodes(tree.Root, tree.Dialect.CallKind()) {
		callees = append(callees, tree.Dialect.Callee(call))
	}
	assert.Equal(t, []string{"Install", "Def", "Def", "Def"}, callees)
}

func TestGoParser_SyntaxError(t *testing.T) {
	_, err := GoParser{}.Parse(context.Background(), "broken.go", []byte("package broken\nfunc broken({\n"))
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestGoParser_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := GoParser{}.Parse(ctx, "a.go", []byte("package a\n"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGoDialect_StringValue(t *testing.T) {
	d := goDialect{}

	s, ok := d.StringValue(&source.Node{Kind: "BasicLit", Children: []any{source.Token{Kind: "STRING", Text: "`raw`"}}})
	assert.True(t, ok)
	assert.Equal(t, "raw", s)

	_, ok = d.StringValue(&source.Node{Kind: "BasicLit", Children: []any{source.Token{Kind: "INT", Text: "1"}}})
	assert.False(t, ok)

	_, ok = d.StringValue(&source.Node{Kind: "Ident", Children: []any{source.Token{Kind: "IDENT", Text: "name"}}})
	assert.False(t, ok)
}

func TestNewParser(t *testing.T) {
	p, err := NewParser("")
	require.NoError(t, err)
	assert.Equal(t, BackendGo, p.Name())

	p, err = NewParser(BackendTreeSitter)
	require.NoError(t, err)
	assert.Equal(t, BackendTreeSitter, p.Name())

	_, err = NewParser("antlr")
	assert.Error(t, err)
}
