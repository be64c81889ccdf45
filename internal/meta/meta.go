// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import "github.com/staranto/conancleanup/internal/config"

// Meta are the run-wide options resolved before flags are parsed.
type Meta struct {
	Args        []string
	Config      config.Type
	ResultPath  string
	StartingDir string
}
