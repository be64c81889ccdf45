// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package conan

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"

	"github.com/staranto/conancleanup/internal/resultfile"
)

// DefaultBinary is the conan executable looked up on PATH.
const DefaultBinary = "conan"

// Client queries and prunes the local conan cache. Every query overwrites
// ResultPath, so a Client must not be shared between concurrent callers.
type Client struct {
	Binary     string
	ResultPath string
	Runner     Runner
}

// NewClient returns a Client running binary through os/exec.
func NewClient(binary string, resultPath string) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Client{
		Binary:     binary,
		ResultPath: resultPath,
		Runner:     ExecRunner{},
	}
}

// Recipes lists every recipe in the local cache.
func (c *Client) Recipes(ctx context.Context) ([]string, error) {
	data, err := c.search(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := ParseRecipeIDs(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipe IDs: %w", err)
	}
	log.Debugf("found %d recipes", len(ids))
	return ids, nil
}

// Packages lists the package ids currently cached for recipe. Nothing is
// remembered between calls; the cache is queried every time.
func (c *Client) Packages(ctx context.Context, recipe string) ([]string, error) {
	data, err := c.search(ctx, recipe)
	if err != nil {
		return nil, err
	}
	ids, err := ParsePackageIDs(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse package IDs of recipe '%s': %w", recipe, err)
	}
	log.WithField("recipe", recipe).Debugf("found %d packages", len(ids))
	return ids, nil
}

// RemovePackage removes a single binary package of recipe without asking.
func (c *Client) RemovePackage(ctx context.Context, recipe string, pkg string) (Output, error) {
	return c.run(ctx, "remove", recipe, "-p", pkg, "-f")
}

// RemoveRecipe removes recipe and all of its packages without asking.
func (c *Client) RemoveRecipe(ctx context.Context, recipe string) (Output, error) {
	return c.run(ctx, "remove", recipe, "-f")
}

func (c *Client) search(ctx context.Context, filter ...string) ([]byte, error) {
	if err := resultfile.Clear(c.ResultPath); err != nil {
		return nil, err
	}

	args := append([]string{"search", "-j", c.ResultPath}, filter...)
	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	if !out.Success() {
		// Not fatal by itself. If conan didn't write a result, reading it fails.
		log.WithField("exit", out.ExitCode).Debugf("'%s search' exited non-zero: %s", c.Binary, out.String())
	}

	data, err := os.ReadFile(c.ResultPath)
	if err != nil {
		return nil, &ResultError{Kind: KindIO, Err: err}
	}
	return data, nil
}

func (c *Client) run(ctx context.Context, args ...string) (Output, error) {
	log.Debugf("running %s %v", c.Binary, args)
	out, err := c.Runner.Run(ctx, c.Binary, args...)
	if err != nil {
		return out, fmt.Errorf("'%s %s' failed: %w", c.Binary, args[0], err)
	}
	return out, nil
}
