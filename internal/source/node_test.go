// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// tree builds:
//
//	A
//	├── B
//	│   ├── "tok"
//	│   └── C
//	└── D
//	    └── C
func tree() *Node {
	return &Node{Kind: "A", Children: []any{
		&Node{Kind: "B", Children: []any{
			Token{Kind: "IDENT", Text: "tok"},
			&Node{Kind: "C", Span: Span{FirstLine: 2}},
		}},
		&Node{Kind: "D", Children: []any{
			&Node{Kind: "C", Span: Span{FirstLine: 3}},
		}},
	}}
}

func TestTraverse_PreOrder(t *testing.T) {
	var kinds []string
	Traverse(tree(), func(n *Node) {
		kinds = append(kinds, n.Kind)
	})
	assert.Equal(t, []string{"A", "B", "C", "D", "C"}, kinds)
}

func TestTraverse_Nil(t *testing.T) {
	called := false
	Traverse(nil, func(*Node) { called = true })
	assert.False(t, called)
}

func TestFindNodes(t *testing.T) {
	root := tree()

	cs := FindNodes(root, "C")
	assert.Len(t, cs, 2)
	assert.Equal(t, 2, cs[0].Span.FirstLine)
	assert.Equal(t, 3, cs[1].Span.FirstLine)

	assert.Len(t, FindNodes(root, "A", "D"), 2)
	assert.Empty(t, FindNodes(root, "Z"))
}

func TestNode_Children(t *testing.T) {
	b := tree().Nodes()[0]
	assert.Len(t, b.Nodes(), 1)
	assert.Equal(t, []Token{{Kind: "IDENT", Text: "tok"}}, b.Tokens())
	assert.Equal(t, "tok", b.Text())
	assert.Equal(t, "", tree().Text())
}

func TestSpan_Contains(t *testing.T) {
	outer := Span{FirstLine: 2, FirstColumn: 4, LastLine: 6, LastColumn: 1}
	assert.True(t, outer.Contains(Span{FirstLine: 3, FirstColumn: 0, LastLine: 4, LastColumn: 9}))
	assert.True(t, outer.Contains(outer))
	assert.False(t, outer.Contains(Span{FirstLine: 2, FirstColumn: 3, LastLine: 3, LastColumn: 0}))
	assert.False(t, outer.Contains(Span{FirstLine: 5, FirstColumn: 0, LastLine: 6, LastColumn: 2}))
}
