// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/conancleanup/internal/cleanup"
	"github.com/staranto/conancleanup/internal/conan"
	"github.com/staranto/conancleanup/internal/manifest"
	"github.com/staranto/conancleanup/internal/output"
	"github.com/staranto/conancleanup/internal/prompt"
	"github.com/staranto/conancleanup/internal/resultfile"
	"github.com/staranto/conancleanup/internal/version"
)

// cleanupAction scans root_path for manifests and then drives the two
// removal phases against the local conan cache.
func cleanupAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	in, out, errOut := streams(cmd)

	if cmd.Bool("version") {
		fmt.Fprintln(out, version.Version)
		return nil
	}

	if m.Config.Source != "" {
		log.Debugf("using config %s", m.Config.Source)
	}

	root, err := RootPathArg(cmd)
	if err != nil {
		return err
	}
	root = ResolveRoot(root, m.StartingDir)

	resultPath := m.ResultPath
	if resultPath == "" {
		resultPath = resultfile.Path()
	}

	lock, err := resultfile.Lock(resultPath)
	if err != nil {
		return err
	}
	defer resultfile.Unlock(lock)
	defer resultfile.Discard(resultPath)

	inUse, err := manifest.Scan(root, cmd.String("manifest"))
	if err != nil {
		return err
	}
	log.Debugf("%d packages in use under %s", len(inUse), root)

	driver := &cleanup.Driver{
		Cache:  conan.NewClient(cmd.String("conan"), resultPath),
		Force:  cmd.Bool("force"),
		DryRun: cmd.Bool("dry-run"),
		Prompt: prompt.New(in, out).YesNo,
		Style:  output.StyleFromConfig(cmd.Bool("color")),
		Out:    out,
		Diag:   errOut,
	}
	return driver.Run(ctx, inUse)
}
