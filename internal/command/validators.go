// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
)

// FlagsValidator checks flag combinations that no single flag validator can.
func FlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("force") && c.Bool("dry-run") {
		return errors.New("--force and --dry-run are mutually exclusive")
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func NotEmptyValidator(value any) error {
	if strings.TrimSpace(value.(string)) == "" {
		return errors.New("must not be empty")
	}
	return nil
}

// BaseNameValidator rejects values that are paths rather than file names.
func BaseNameValidator(value any) error {
	s := value.(string)
	if filepath.Base(s) != s || strings.ContainsRune(s, '/') {
		return fmt.Errorf("must be a file name, not a path: %s", s)
	}
	return nil
}

// RootPathArg returns the single positional root path.
func RootPathArg(c *cli.Command) (string, error) {
	switch n := c.Args().Len(); n {
	case 0:
		return "", errors.New("root_path is required")
	case 1:
		return c.Args().First(), nil
	default:
		return "", fmt.Errorf("expected a single root_path, got %d arguments", n)
	}
}

// ResolveRoot makes a relative root_path absolute against dir, the directory
// the command was started from.
func ResolveRoot(root string, dir string) string {
	if filepath.IsAbs(root) || dir == "" {
		return filepath.Clean(root)
	}
	return filepath.Join(dir, root)
}
