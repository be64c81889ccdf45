// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the conan-cleanup command line. It wires flags,
// validators, and the action that runs a cleanup.
package command
