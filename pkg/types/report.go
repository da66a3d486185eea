// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// BlockReport describes one overload block found by a source scan.
type BlockReport struct {
	File        string       `json:"file" yaml:"file"`
	Line        int          `json:"line" yaml:"line"`
	Definitions []Definition `json:"definitions" yaml:"definitions"`
	Groups      []Group      `json:"groups" yaml:"groups"`
}
