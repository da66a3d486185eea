// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package overload

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-overload/pkg/object"
)

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(Config{Parser: "yacc"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	reg := prometheus.NewRegistry()
	_, err = New(Config{Registerer: reg})
	require.NoError(t, err)
	_, err = New(Config{Registerer: reg})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestInstall_Package(t *testing.T) {
	shape := object.NewClass("Shape", nil)
	err := Install(shape, func(d *Definer) {
		d.Def("area", func(side float64) float64 { return side * side })
		d.Def("area", func(w, h float64) float64 { return w * h })
	})
	require.NoError(t, err)

	obj := shape.New()
	v, err := obj.Send("area", 3.0)
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)

	v, err = obj.Send("area", 2.0, 5.0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)

	_, err = obj.Send("area")
	assert.ErrorIs(t, err, ErrNoMatch)
	assert.ErrorIs(t, err, object.ErrArgumentMismatch)
}

func TestInstaller_Backends(t *testing.T) {
	for _, name := range []string{"go", "treesitter"} {
		t.Run(name, func(t *testing.T) {
			inst, err := New(Config{Parser: name})
			require.NoError(t, err)

			class := object.NewClass("Greeter", nil)
			res, err := inst.Install(context.Background(), class, func(d *Definer) {
				d.Def("greet", func(name string) string { return "hi " + name })
				d.Def("greet", func(name, greeting string) string { return greeting + " " + name }, Defaults("hello"))
			})
			require.NoError(t, err)

			require.Len(t, res.Definitions, 2)
			assert.Equal(t, "name string", res.Definitions[0].Params)
			assert.Equal(t, "name, greeting string", res.Definitions[1].Params)
			assert.Equal(t, `return greeting + " " + name`, res.Definitions[1].Body)
			assert.Equal(t, res.Definitions[0].Location.Line+1, res.Definitions[1].Location.Line)

			v, err := class.New().Send("greet", "ann", "hey")
			require.NoError(t, err)
			assert.Equal(t, "hey ann", v)
		})
	}
}

func TestInstaller_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	inst, err := New(Config{Registerer: reg})
	require.NoError(t, err)

	class := object.NewClass("Counter", nil)
	_, err = inst.Install(context.Background(), class, func(d *Definer) {
		d.Def("inc", func(n int) int { return n + 1 })
	})
	require.NoError(t, err)

	_, err = class.New().Send("inc", 1)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "overload_dispatches_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInstall_NilBlock(t *testing.T) {
	class := object.NewClass("A", nil)
	var define func(*Definer)
	err := Install(class, define)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Empty(t, class.MethodNames())
}
