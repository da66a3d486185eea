// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package overload

import (
	"reflect"
	"runtime"

	"github.com/petar-djukic/go-overload/pkg/types"
)

// Definer collects the definitions of an overload block. The block calls
// Def once per overload, in the order the overloads should be tried.
type Definer struct {
	regs []registration
}

type registration struct {
	name     string
	fn       any
	defaults []any
	loc      types.Location
}

// Option adjusts one definition.
type Option func(*registration)

// Defaults gives the last len(values) fixed parameters of a definition
// default values, used when a call omits them.
func Defaults(values ...any) Option {
	return func(r *registration) {
		r.defaults = append(r.defaults, values...)
	}
}

// Def registers fn as an overload of name. fn is any Go function. A first
// parameter of type *object.Object receives the receiver and a last
// parameter of type object.Block receives the caller's block; the other
// parameters bind the call's arguments. fn may return nothing, a value,
// an error, or a value and an error.
func (d *Definer) Def(name string, fn any, opts ...Option) {
	r := registration{name: name, fn: fn, loc: funcLocation(fn)}
	for _, opt := range opts {
		opt(&r)
	}
	d.regs = append(d.regs, r)
}

// Len returns the number of definitions registered so far.
func (d *Definer) Len() int { return len(d.regs) }

// funcLocation returns where fn is defined according to the runtime's
// symbol table.
func funcLocation(fn any) types.Location {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return types.Location{}
	}
	pc := v.Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return types.Location{}
	}
	file, line := f.FileLine(pc)
	return types.Location{File: file, Line: line}
}
