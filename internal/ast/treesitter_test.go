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

func TestTreeSitterParser_Kinds(t *testing.T) {
	tree, _ := parseFixture(t, TreeSitterParser{}, "/src/a.go", "package a\n\nvar x = f(1, \"s\")\n")

	assert.Equal(t, "source_file", tree.Root.Kind)

	calls := source.FindNodes(tree.Root, "call_expression")
	require.Len(t, calls, 1)
	call := calls[0]

	assert.Equal(t, "f", tree.Dialect.Callee(call))
	args := tree.Dialect.Args(call)
	require.Len(t, args, 2)
	s, ok := tree.Dialect.StringValue(args[1])
	assert.True(t, ok)
	assert.Equal(t, "s", s)

	// Punctuation stays in the tree as tokens.
	list := call.Nodes()[1]
	assert.Equal(t, "argument_list", list.Kind)
	assert.Contains(t, list.Tokens(), source.Token{Kind: "(", Text: "("})
	assert.Equal(t, source.Span{FirstLine: 3, FirstColumn: 8, LastLine: 3, LastColumn: 17}, call.Span)
}

func TestTreeSitterParser_SpansMatchGoParser(t *testing.T) {
	goTree, _ := parseFixture(t, GoParser{}, "/src/shapes.go", shapesSource)
	tsTree, _ := parseFixture(t, TreeSitterParser{}, "/src/shapes.go", shapesSource)

	goLits := source.FindNodes(goTree.Root, goTree.Dialect.FuncLitKind())
	tsLits := source.FindNodes(tsTree.Root, tsTree.Dialect.FuncLitKind())
	require.Equal(t, len(goLits), len(tsLits))
	for i := range goLits {
		assert.Equal(t, goLits[i].Span, tsLits[i].Span, "literal %d", i)
	}
}

func TestTreeSitterParser_SyntaxError(t *testing.T) {
	_, err := TreeSitterParser{}.Parse(context.Background(), "broken.go", []byte("package broken\nfunc broken({\n"))
	assert.ErrorIs(t, err, ErrSyntax)
}
