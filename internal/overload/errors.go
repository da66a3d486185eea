// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package overload

import (
	"errors"
	"fmt"
	"strings"

	"github.com/petar-djukic/go-overload/pkg/object"
	"github.com/petar-djukic/go-overload/pkg/types"
)

// Error classes of an install and of dispatch.
var (
	ErrParse      = errors.New("cannot parse overload block")
	ErrGeneration = errors.New("cannot generate overload")
	ErrNoMatch    = errors.New("no overload accepts these arguments")
)

// ParseError reports that the block's source could not be read, parsed,
// or located. Nothing is installed.
type ParseError struct {
	Location types.Location
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at %s: %v", ErrParse, e.Location, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// GenerationError reports a definition that cannot become a method.
// Nothing is installed.
type GenerationError struct {
	Definition types.Definition // Zero when the failure concerns the whole block
	Err        error
}

func (e *GenerationError) Error() string {
	if e.Definition.Name == "" && e.Definition.Location.IsZero() {
		return fmt.Sprintf("%v: %v", ErrGeneration, e.Err)
	}
	return fmt.Sprintf("%v %s (#%d) at %s: %v",
		ErrGeneration, e.Definition.Signature(), e.Definition.Index, e.Definition.Location, e.Err)
}

func (e *GenerationError) Unwrap() []error { return []error{ErrGeneration, e.Err} }

// NoMatchError is returned by a dispatcher when no overload binds the
// arguments. It is an argument mismatch of the object system.
type NoMatchError struct {
	Class      string
	Name       string
	Args       int
	Candidates []types.Definition
}

func (e *NoMatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %s#%s called with %d argument", ErrNoMatch, e.Class, e.Name, e.Args)
	if e.Args != 1 {
		b.WriteString("s")
	}
	if len(e.Candidates) > 0 {
		b.WriteString("; candidates:")
		for _, c := range e.Candidates {
			fmt.Fprintf(&b, " %s at %s;", c.Signature(), c.Location)
		}
	}
	return strings.TrimSuffix(b.String(), ";")
}

func (e *NoMatchError) Unwrap() []error {
	return []error{ErrNoMatch, object.ErrArgumentMismatch}
}
