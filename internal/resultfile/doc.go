// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package resultfile owns the single temporary file conan search results are
// written to: where it lives, clearing it between queries, removing it at the
// end of a run, and locking it against concurrent runs.
package resultfile
