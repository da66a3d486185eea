// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package source locates syntax nodes in the text of the file they were
// parsed from. Nodes carry a line/column span; the locator turns that span
// into the exact substring of the original file.
package source

import "fmt"

// Span is the source range of a node. Lines are 1-based, columns are
// 0-based byte offsets within the line, and LastColumn is exclusive.
type Span struct {
	FirstLine   int
	FirstColumn int
	LastLine    int
	LastColumn  int
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.FirstLine, s.FirstColumn, s.LastLine, s.LastColumn)
}

// Token is a terminal child of a node: an identifier, a literal, or a
// piece of punctuation.
type Token struct {
	Kind string
	Text string
}

// Node is an immutable syntax node. Each child is either a *Node or a Token.
type Node struct {
	Kind     string
	Children []any
	Span     Span
}

// Nodes returns the children that are themselves nodes, in order.
func (n *Node) Nodes() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if child, ok := c.(*Node); ok {
			out = append(out, child)
		}
	}
	return out
}

// Tokens returns the terminal children, in order.
func (n *Node) Tokens() []Token {
	var out []Token
	for _, c := range n.Children {
		if tok, ok := c.(Token); ok {
			out = append(out, tok)
		}
	}
	return out
}

// Text returns the text of the node's first terminal token, or "" if it
// has none.
func (n *Node) Text() string {
	for _, c := range n.Children {
		if tok, ok := c.(Token); ok {
			return tok.Text
		}
	}
	return ""
}

// Traverse walks n and every descendant node depth-first in pre-order,
// calling visit on each. Tokens are skipped. Children are visited in the
// order the parser produced them.
func Traverse(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, c := range n.Children {
		if child, ok := c.(*Node); ok {
			Traverse(child, visit)
		}
	}
}

// FindNodes returns every node under n (n included) whose kind is one of
// kinds, in traversal order.
func FindNodes(n *Node, kinds ...string) []*Node {
	want := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	var nodes []*Node
	Traverse(n, func(node *Node) {
		if want[node.Kind] {
			nodes = append(nodes, node)
		}
	})
	return nodes
}

// Contains reports whether span o lies within s.
func (s Span) Contains(o Span) bool {
	if o.FirstLine < s.FirstLine || (o.FirstLine == s.FirstLine && o.FirstColumn < s.FirstColumn) {
		return false
	}
	if o.LastLine > s.LastLine || (o.LastLine == s.LastLine && o.LastColumn > s.LastColumn) {
		return false
	}
	return true
}
