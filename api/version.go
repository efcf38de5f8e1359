// Copyright 2026 The Bitwuzla-Go Authors. All rights reserved.  Use of
// this source code is governed by a license that can be found in the
// LICENSE file.

package api

import "github.com/blang/semver/v4"

// Version is the solver release version.
var Version = semver.MustParse("0.8.0")

// featureFloor maps optional capabilities to the version that first
// provides them, so embedding hosts can gate on a semver range instead
// of probing.
var featureFloor = map[string]semver.Version{
	"incremental":         semver.MustParse("0.1.0"),
	"produce-models":      semver.MustParse("0.1.0"),
	"produce-unsat-cores": semver.MustParse("0.3.0"),
	"fp":                  semver.MustParse("0.5.0"),
	"prop-solver":         semver.MustParse("0.6.0"),
}

// Supports reports whether this build provides the named capability.
func Supports(feature string) bool {
	floor, ok := featureFloor[feature]
	if !ok {
		return false
	}
	return Version.GTE(floor)
}
