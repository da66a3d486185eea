// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package object is a small dynamic object system. A Class maps method
// names to exactly one Method each; objects respond to messages by looking
// the name up along the superclass chain and calling the method with
// positional arguments and an optional block.
package object

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/petar-djukic/go-overload/pkg/types"
)

// Error types for message sends.
var (
	ErrNoMethod         = errors.New("undefined method")
	ErrArgumentMismatch = errors.New("wrong number or type of arguments")
)

// Value is any value an object system method accepts or returns.
type Value = any

// Block is the callable a caller may pass along with a message.
type Block func(args ...Value) (Value, error)

// Func is the body of a method. blk is nil when the caller passed none.
type Func func(self *Object, args []Value, blk Block) (Value, error)

// Method is a named method in a class's method table.
type Method struct {
	Name     string
	Fn       Func
	Location types.Location // Where the method was defined, if known
}

// Class holds a method table. It is safe for concurrent use.
type Class struct {
	name  string
	super *Class

	mu      sync.RWMutex
	methods map[string]*Method
}

// NewClass returns an empty class. super may be nil.
func NewClass(name string, super *Class) *Class {
	return &Class{
		name:    name,
		super:   super,
		methods: make(map[string]*Method),
	}
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Superclass returns the parent class, or nil.
func (c *Class) Superclass() *Class { return c.super }

// Define installs fn under name, replacing any previous definition.
func (c *Class) Define(name string, fn Func) {
	c.DefineMethod(&Method{Name: name, Fn: fn})
}

// DefineMethod installs m, replacing any previous method of the same name.
func (c *Class) DefineMethod(m *Method) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.methods[m.Name] = m
}

// Replace removes every own method whose name satisfies remove and then
// installs add, as one step: no caller observes the table in between.
// remove may be nil.
func (c *Class) Replace(remove func(name string) bool, add []*Method) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if remove != nil {
		for name := range c.methods {
			if remove(name) {
				delete(c.methods, name)
			}
		}
	}
	for _, m := range add {
		c.methods[m.Name] = m
	}
}

// Remove deletes an own method. It reports whether one existed.
func (c *Class) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.methods[name]
	delete(c.methods, name)
	return ok
}

// Lookup finds name in the class or its ancestors.
func (c *Class) Lookup(name string) (*Method, bool) {
	for k := c; k != nil; k = k.super {
		k.mu.RLock()
		m, ok := k.methods[name]
		k.mu.RUnlock()
		if ok {
			return m, true
		}
	}
	return nil, false
}

// MethodNames returns the class's own method names, sorted.
func (c *Class) MethodNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.methods))
	for name := range c.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// publicNames returns the names visible to callers along the whole chain:
// internal names starting with "__" are left out.
func (c *Class) publicNames() []string {
	seen := make(map[string]bool)
	var names []string
	for k := c; k != nil; k = k.super {
		for _, name := range k.MethodNames() {
			if strings.HasPrefix(name, "__") || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// New returns an instance of the class.
func (c *Class) New() *Object {
	return &Object{class: c}
}

// Object is an instance of a Class.
type Object struct {
	class *Class
}

// Class returns the object's class.
func (o *Object) Class() *Class { return o.class }

// RespondTo reports whether the object has a method called name.
func (o *Object) RespondTo(name string) bool {
	_, ok := o.class.Lookup(name)
	return ok
}

// Send calls the method name with args and no block.
func (o *Object) Send(name string, args ...Value) (Value, error) {
	return o.SendBlock(name, nil, args...)
}

// SendBlock calls the method name with args and blk.
func (o *Object) SendBlock(name string, blk Block, args ...Value) (Value, error) {
	m, ok := o.class.Lookup(name)
	if !ok {
		return nil, &NoMethodError{
			Class:      o.class.name,
			Name:       name,
			Suggestion: suggest(name, o.class.publicNames()),
		}
	}
	if args == nil {
		args = []Value{}
	}
	return m.Fn(o, args, blk)
}

func (o *Object) String() string {
	return fmt.Sprintf("#<%s>", o.class.name)
}

// NoMethodError reports a message the receiver does not understand.
type NoMethodError struct {
	Class      string
	Name       string
	Suggestion string // Closest known method name, or ""
}

func (e *NoMethodError) Error() string {
	msg := fmt.Sprintf("%v %q for %s", ErrNoMethod, e.Name, e.Class)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *NoMethodError) Unwrap() error { return ErrNoMethod }
