// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cleanup removes unused packages from the local conan cache in two
// gated phases: first the packages no project requires, then every recipe
// that was left without packages.
package cleanup
