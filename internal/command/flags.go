// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/conancleanup/internal/config"
	"github.com/staranto/conancleanup/internal/conan"
	"github.com/staranto/conancleanup/internal/manifest"
)

// NewFlags builds the flag set. Values not given on the command line fall
// back to env vars and then to keys of the config file at cfg.Source.
func NewFlags(cfg config.Type) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "force",
			Aliases:     []string{"f"},
			Usage:       "remove unused packages and empty recipes without asking",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Aliases:     []string{"n"},
			Usage:       "only show what would be removed",
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:  "conan",
			Usage: "conan executable to run",
			Sources: cli.NewValueSourceChain(append(
				[]cli.ValueSource{cli.EnvVar("CONAN_CLEANUP_CONAN")},
				configSources(cfg.Source, "conan")...)...),
			Value: conan.DefaultBinary,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, NotEmptyValidator)
			},
		},
		&cli.StringFlag{
			Name:    "manifest",
			Usage:   "name of the manifest files to scan for",
			Sources: cli.NewValueSourceChain(configSources(cfg.Source, "manifest")...),
			Value:   manifest.DefaultName,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, NotEmptyValidator, BaseNameValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored plan output",
			Sources: cli.NewValueSourceChain(configSources(cfg.Source, "color")...),
			Value:   term.IsTerminal(int(os.Stdout.Fd())),
		},
		&cli.BoolFlag{
			Name:        "version",
			Aliases:     []string{"v"},
			Usage:       "conan-cleanup version info",
			HideDefault: true,
		},
	}
}

// configSources returns config file value sources for keys, or nothing when
// no config file was found.
func configSources(path string, keys ...string) []cli.ValueSource {
	if path == "" {
		return nil
	}
	srcs := make([]cli.ValueSource, 0, len(keys))
	for _, k := range keys {
		srcs = append(srcs, yaml.YAML(k, altsrc.StringSourcer(path)))
	}
	return srcs
}
