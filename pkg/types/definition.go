// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across go-overload packages.
package types

import "fmt"

// Location identifies a line in a source file.
type Location struct {
	File string `json:"file" yaml:"file"` // Source file path
	Line int    `json:"line" yaml:"line"` // Line number (1-based, 0 if unknown)
}

// String formats the location as file:line.
func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	if l.Line == 0 {
		return l.File
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// IsZero reports whether the location has not been set.
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0
}

// Definition is one overload found in a block. Index numbers every
// definition of the block 0..N-1 in source order, across all names.
type Definition struct {
	Name     string   `json:"name" yaml:"name"`         // Public method name
	Index    int      `json:"index" yaml:"index"`       // Sequence index within the block
	Params   string   `json:"params" yaml:"params"`     // Parameter list source text, without parentheses
	Body     string   `json:"body" yaml:"body"`         // Body source text, without braces
	Location Location `json:"location" yaml:"location"` // Where the definition starts
}

// Signature renders the definition as name(params).
func (d Definition) Signature() string {
	return d.Name + "(" + d.Params + ")"
}

// ImplName is the internal method name of the definition's implementation.
func (d Definition) ImplName() string {
	return fmt.Sprintf("__%s_%d", d.Name, d.Index)
}

// CheckerName is the internal method name of the definition's checker.
func (d Definition) CheckerName() string {
	return d.ImplName() + "_checker"
}

// Group lists, in dispatch order, the indices of the definitions sharing
// a name.
type Group struct {
	Name    string `json:"name" yaml:"name"`
	Indexes []int  `json:"indexes" yaml:"indexes"`
}

// GroupDefinitions groups definitions by name. Groups appear in the order
// their name is first seen and indices stay ascending within a group.
func GroupDefinitions(defs []Definition) []Group {
	var groups []Group
	pos := make(map[string]int)
	for _, d := range defs {
		i, ok := pos[d.Name]
		if !ok {
			i = len(groups)
			pos[d.Name] = i
			groups = append(groups, Group{Name: d.Name})
		}
		groups[i].Indexes = append(groups[i].Indexes, d.Index)
	}
	return groups
}
