/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package version provides build information.
package version

import (
	"fmt"
	"runtime"
)

// Version is the current version of the booking setup service.
// This is set at build time via ldflags:
//
//	-X github.com/friendsincode/bookingsetup/internal/version.Version=X.Y.Z
var Version = "0.3.0"

// Commit is the git revision, set at build time.
var Commit = "dev"

// String formats the build information for the version command and logs.
func String() string {
	return fmt.Sprintf("bookingsetup %s (%s, %s)", Version, Commit, runtime.Version())
}
