// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package z

// C is an opaque clause identifier exchanged between a solver and a
// clause-level simplifier (see inter.CnfSimp).  C values are
// ephemeral: compaction may remap them.
type C uint32

// CNull is the null clause identifier.
const CNull = C(0)
