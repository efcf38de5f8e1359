// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package node implements the hash-consed sort and term DAG at the
// heart of the solver: structurally identical sorts and terms share
// one record, so syntactic equality is handle identity and ids are
// stable for the life of the process.
//
// The Manager is process-wide (Mgr); sessions share it, and its
// interning tables are the only cross-session mutable state.  All
// writes are serialised at manager granularity.
package node
