// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"sort"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/conancleanup/internal/config"
	"github.com/staranto/conancleanup/internal/meta"
	"github.com/staranto/conancleanup/internal/resultfile"
)

const description = `Scans root_path recursively for conaninfo.txt files to learn which packages
are in use, lists every package in the local conan cache, and removes the ones
no project requires. Afterwards recipes left without any package are removed
too. Each step asks for confirmation unless --force is given.`

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// No config file is the common case, not an error.
	cfg, err := config.Load()
	if err != nil {
		log.Debugf("no config loaded: %v", err)
	}

	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		ResultPath:  resultfile.Path(),
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:        "conan-cleanup",
		Usage:       "remove unused packages from the local conan cache",
		UsageText:   "conan-cleanup [options] <root_path>",
		Description: description,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: NewFlags(cfg),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, FlagsValidator(ctx, c)
		},
		Action: cleanupAction,
	}

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}
