// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package overload

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/cast"

	"github.com/petar-djukic/go-overload/pkg/object"
)

var (
	objectType = reflect.TypeOf((*object.Object)(nil))
	blockType  = reflect.TypeOf(object.Block(nil))
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
)

var errNotFunc = errors.New("implementation is not a function")

type resultKind int

const (
	resultNone       resultKind = iota // func(...)
	resultValue                        // func(...) V
	resultError                        // func(...) error
	resultValueError                   // func(...) (V, error)
)

// Shape describes which argument lists an implementation accepts: how many
// arguments, which types, which trailing parameters have defaults, and
// whether a variadic tail takes the rest. Checking a shape never calls the
// implementation.
type Shape struct {
	fn         reflect.Value
	takesSelf  bool
	takesBlock bool
	params     []reflect.Type  // Fixed parameters bound from arguments
	variadic   reflect.Type    // Element type of the variadic tail, or nil
	defaults   []reflect.Value // Values for the last len(defaults) params
	results    resultKind
}

// NewShape inspects fn and builds its shape. defaults are converted to the
// types of the trailing fixed parameters they belong to.
func NewShape(fn any, defaults []any) (*Shape, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: %T", errNotFunc, fn)
	}
	t := v.Type()
	s := &Shape{fn: v}

	first, last := 0, t.NumIn()
	if last > 0 && t.In(0) == objectType {
		s.takesSelf = true
		first = 1
	}
	if t.IsVariadic() {
		s.variadic = t.In(last - 1).Elem()
		last--
	} else if last > first && t.In(last-1) == blockType {
		s.takesBlock = true
		last--
	}
	for i := first; i < last; i++ {
		s.params = append(s.params, t.In(i))
	}

	if len(defaults) > len(s.params) {
		return nil, fmt.Errorf("%d defaults for %d parameters", len(defaults), len(s.params))
	}
	offset := len(s.params) - len(defaults)
	for i, d := range defaults {
		dv, err := convertDefault(d, s.params[offset+i])
		if err != nil {
			return nil, fmt.Errorf("default for parameter %d: %w", offset+i, err)
		}
		s.defaults = append(s.defaults, dv)
	}

	switch {
	case t.NumOut() == 0:
		s.results = resultNone
	case t.NumOut() == 1 && t.Out(0) == errorType:
		s.results = resultError
	case t.NumOut() == 1:
		s.results = resultValue
	case t.NumOut() == 2 && t.Out(1) == errorType:
		s.results = resultValueError
	default:
		return nil, fmt.Errorf("unsupported results %s: want (), (V), (error) or (V, error)", t)
	}
	return s, nil
}

// Min is the fewest arguments the shape accepts.
func (s *Shape) Min() int { return len(s.params) - len(s.defaults) }

// Max is the most arguments the shape accepts, or -1 when unbounded.
func (s *Shape) Max() int {
	if s.variadic != nil {
		return -1
	}
	return len(s.params)
}

// Accepts reports whether args bind to the shape.
func (s *Shape) Accepts(args []object.Value) bool {
	if len(args) < s.Min() {
		return false
	}
	if hi := s.Max(); hi >= 0 && len(args) > hi {
		return false
	}
	for i, arg := range args {
		if !assignable(arg, s.paramType(i)) {
			return false
		}
	}
	return true
}

// Call binds args and invokes the implementation. It fails with
// object.ErrArgumentMismatch if the arguments do not bind.
func (s *Shape) Call(self *object.Object, args []object.Value, blk object.Block) (object.Value, error) {
	if !s.Accepts(args) {
		return nil, fmt.Errorf("%w: %d arguments for %s", object.ErrArgumentMismatch, len(args), s)
	}

	in := make([]reflect.Value, 0, len(args)+2)
	if s.takesSelf {
		in = append(in, reflect.ValueOf(self))
	}
	for i, arg := range args {
		in = append(in, argValue(arg, s.paramType(i)))
	}
	if missing := len(s.params) - len(args); missing > 0 {
		in = append(in, s.defaults[len(s.defaults)-missing:]...)
	}
	if s.takesBlock {
		in = append(in, reflect.ValueOf(blk))
	}

	out := s.fn.Call(in)
	switch s.results {
	case resultValue:
		return out[0].Interface(), nil
	case resultError:
		return nil, asError(out[0])
	case resultValueError:
		return out[0].Interface(), asError(out[1])
	default:
		return nil, nil
	}
}

func (s *Shape) String() string {
	switch hi := s.Max(); {
	case hi < 0:
		return fmt.Sprintf("arity %d+", s.Min())
	case hi == s.Min():
		return fmt.Sprintf("arity %d", hi)
	default:
		return fmt.Sprintf("arity %d..%d", s.Min(), hi)
	}
}

// paramType is the type argument i binds to.
func (s *Shape) paramType(i int) reflect.Type {
	if i < len(s.params) {
		return s.params[i]
	}
	return s.variadic
}

func assignable(v any, t reflect.Type) bool {
	if v == nil {
		return nilable(t)
	}
	return reflect.TypeOf(v).AssignableTo(t)
}

func argValue(v any, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(v)
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	}
	return false
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}

// convertDefault turns a default value into a value of type t. Values
// that are not assignable are coerced for basic kinds.
func convertDefault(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		if nilable(t) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a valid %s", t)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	var out any
	var err error
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out, err = cast.ToInt64E(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		out, err = cast.ToUint64E(v)
	case reflect.Float32, reflect.Float64:
		out, err = cast.ToFloat64E(v)
	case reflect.String:
		out, err = cast.ToStringE(v)
	case reflect.Bool:
		out, err = cast.ToBoolE(v)
	default:
		return reflect.Value{}, fmt.Errorf("%v (%T) is not assignable to %s", v, v, t)
	}
	if err != nil {
		return reflect.Value{}, fmt.Errorf("converting %v to %s: %w", v, t, err)
	}
	return reflect.ValueOf(out).Convert(t), nil
}
