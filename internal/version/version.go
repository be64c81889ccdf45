// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package version

// Version is stamped at build time with
// -ldflags "-X github.com/staranto/conancleanup/internal/version.Version=...".
var Version = "0.1.0-dev"
