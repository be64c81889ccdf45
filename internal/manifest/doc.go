// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package manifest finds conaninfo.txt files beneath a project tree and
// collects the package ids they require.
package manifest
