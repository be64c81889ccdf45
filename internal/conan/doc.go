// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package conan drives the conan command line tool: it queries the local
// cache through `conan search --json` and removes recipes and packages with
// `conan remove`. Search results are validated field by field so an
// incompatible conan release fails loudly instead of being misread.
package conan
