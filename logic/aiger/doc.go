// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// BUG(wsc): This package does not support adding or retrieving aiger comments
// by an API.

// Package aiger implements aiger format version 1.9 ascii and binary
// writers, used to dump the bit-blasted circuit.
//
// The aiger objects are backed by sequential circuits
// as represented in *logic.S
package aiger
