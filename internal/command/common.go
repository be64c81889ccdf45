// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/staranto/conancleanup/internal/meta"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// streams returns the root command's reader and writers, falling back to the
// process's standard streams.
func streams(cmd *cli.Command) (in io.Reader, out io.Writer, errOut io.Writer) {
	in, out, errOut = os.Stdin, os.Stdout, os.Stderr
	root := cmd.Root()
	if root == nil {
		return
	}
	if root.Reader != nil {
		in = root.Reader
	}
	if root.Writer != nil {
		out = root.Writer
	}
	if root.ErrWriter != nil {
		errOut = root.ErrWriter
	}
	return
}
