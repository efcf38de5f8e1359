// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

// Package net provides bitwuzla/inter interface variants adapted to network communications.
//
// Package net mirrors bitwuzla/inter but adds error conditions to methods for the case
// where the implementer needs to check for network/os errors.
package net
