// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/go-overload/pkg/types"
)

const shapesFile = `package shapes

func Register(c *Class) error {
	return overload.Install(c, func(d *overload.Definer) {
		d.Def("area", func(side float64) float64 { return side * side })
		d.Def("area", func(w, h float64) float64 { return w * h })
	})
}
`

func sampleReport() scanReport {
	return scanReport{
		Root:  "src",
		Files: 1,
		Blocks: []types.BlockReport{{
			File: "shapes.go",
			Line: 4,
			Definitions: []types.Definition{
				{Name: "area", Index: 0, Params: "side float64", Location: types.Location{File: "shapes.go", Line: 5}},
				{Name: "area", Index: 1, Params: "w, h float64", Location: types.Location{File: "shapes.go", Line: 6}},
			},
			Groups: []types.Group{{Name: "area", Indexes: []int{0, 1}}},
		}},
	}
}

func TestWriteReport_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, formatText, sampleReport()))

	want := `src: 1 files, 1 overload blocks

shapes.go:4
  #0 area(side float64) line 5
  #1 area(w, h float64) line 6
  area -> #0, #1
`
	assert.Equal(t, want, buf.String())
}

func TestWriteReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, formatJSON, sampleReport()))

	var got scanReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleReport(), got)
	assert.NotContains(t, buf.String(), `"errors"`)
}

func TestWriteReport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, formatYAML, sampleReport()))

	var got scanReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleReport(), got)
}

func TestScanCmd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shapes.go"), []byte(shapesFile), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"scan", "--format", "json", dir})
	require.NoError(t, cmd.Execute())

	var got scanReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 1, got.Files)
	require.Len(t, got.Blocks, 1)
	assert.Equal(t, "shapes.go", got.Blocks[0].File)
	assert.Equal(t, 4, got.Blocks[0].Line)
	assert.Len(t, got.Blocks[0].Definitions, 2)
}

func TestDemo(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runDemo(context.Background(), &out, "go"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "defined foo() at "))
	assert.True(t, strings.HasPrefix(lines[1], "defined foo(x any) at "))
	assert.True(t, strings.HasPrefix(lines[2], "defined foo(x, y any) at "))
	assert.Equal(t, "A.new.foo[] => foo()", lines[3])
	assert.Equal(t, "A.new.foo[1] => foo(1)", lines[4])
	assert.Equal(t, "A.new.foo[1 2] => foo(1, 2)", lines[5])
	assert.Contains(t, lines[6], "A.new.foo[1 2 3] => error: no overload accepts these arguments")
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "go-overload "+version+"\n", out.String())
}
