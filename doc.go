// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// conancleanup is the main package for the conan-cleanup command line tool.
// It wires the CLI and delegates to internal packages.
package main
