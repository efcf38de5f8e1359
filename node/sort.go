// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package node

import (
	"fmt"
	"strings"

	"github.com/matthewsot/bitwuzla/fp"
)

// SortKind tags the structure of a sort.
type SortKind int

const (
	SortNull SortKind = iota
	SortBool
	SortBV
	SortFP
	SortRM
	SortArray
	SortFun
	SortUninterpreted
)

// Sort is a hash-consed type handle.  Two structurally identical
// sorts are the same handle; comparison is identity.
type Sort struct {
	d *sortData
}

type sortData struct {
	id   uint64
	kind SortKind

	bvWidth uint32
	fpFmt   fp.Format

	index Sort
	elem  Sort

	domain   []Sort
	codomain Sort

	symbol string
}

// IsNil reports whether s is the zero handle.
func (s Sort) IsNil() bool { return s.d == nil }

// Id returns the unique non-zero id of s.
func (s Sort) Id() uint64 { return s.d.id }

// Kind returns the sort's structural kind.
func (s Sort) Kind() SortKind { return s.d.kind }

func (s Sort) IsBool() bool  { return s.d != nil && s.d.kind == SortBool }
func (s Sort) IsBV() bool    { return s.d != nil && s.d.kind == SortBV }
func (s Sort) IsFP() bool    { return s.d != nil && s.d.kind == SortFP }
func (s Sort) IsRM() bool    { return s.d != nil && s.d.kind == SortRM }
func (s Sort) IsArray() bool { return s.d != nil && s.d.kind == SortArray }
func (s Sort) IsFun() bool   { return s.d != nil && s.d.kind == SortFun }
func (s Sort) IsUninterpreted() bool {
	return s.d != nil && s.d.kind == SortUninterpreted
}

// BVWidth returns the width of a bit-vector sort.
func (s Sort) BVWidth() uint32 { return s.d.bvWidth }

// FPFormat returns the format of a floating-point sort.
func (s Sort) FPFormat() fp.Format { return s.d.fpFmt }

// Index and Elem return the index and element sorts of an array sort.
func (s Sort) Index() Sort { return s.d.index }
func (s Sort) Elem() Sort  { return s.d.elem }

// Domain and Codomain describe a function sort.
func (s Sort) Domain() []Sort  { return s.d.domain }
func (s Sort) Codomain() Sort  { return s.d.codomain }
func (s Sort) Arity() int      { return len(s.d.domain) }
func (s Sort) Symbol() string  { return s.d.symbol }

func (s Sort) String() string {
	if s.d == nil {
		return "<nil-sort>"
	}
	switch s.d.kind {
	case SortBool:
		return "Bool"
	case SortBV:
		return fmt.Sprintf("(_ BitVec %d)", s.d.bvWidth)
	case SortFP:
		return fmt.Sprintf("(_ FloatingPoint %d %d)", s.d.fpFmt.E, s.d.fpFmt.S)
	case SortRM:
		return "RoundingMode"
	case SortArray:
		return fmt.Sprintf("(Array %s %s)", s.d.index, s.d.elem)
	case SortFun:
		parts := make([]string, 0, len(s.d.domain)+1)
		for _, d := range s.d.domain {
			parts = append(parts, d.String())
		}
		parts = append(parts, s.d.codomain.String())
		return "(-> " + strings.Join(parts, " ") + ")"
	case SortUninterpreted:
		if s.d.symbol != "" {
			return s.d.symbol
		}
		return fmt.Sprintf("@bzla.sort_%d", s.d.id)
	}
	return "sort?"
}
