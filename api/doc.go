// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package api is the stable solver façade: opaque Sort and Term
// handles comparing by id, constructor functions for every kind, the
// Bitwuzla session object, and the deterministic SMT-LIB v2 printer
// for terms, sorts and model values.
package api
