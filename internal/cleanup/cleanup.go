// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cleanup

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"

	"github.com/staranto/conancleanup/internal/conan"
	"github.com/staranto/conancleanup/internal/output"
	"github.com/staranto/conancleanup/internal/reconcile"
)

const (
	packagesQuestion = "Do you want to remove the packages listed above?"
	recipesQuestion  = "Do you want to remove recipes that no longer have any packages?"
)

// Cache is the part of the conan client the driver needs.
type Cache interface {
	Recipes(ctx context.Context) ([]string, error)
	Packages(ctx context.Context, recipe string) ([]string, error)
	RemovePackage(ctx context.Context, recipe string, pkg string) (conan.Output, error)
	RemoveRecipe(ctx context.Context, recipe string) (conan.Output, error)
}

// PromptFunc asks a yes/no question.
type PromptFunc func(question string) (bool, error)

// ShouldProceed is the gate in front of each phase: forced runs always
// proceed and never prompt.
func ShouldProceed(force bool, prompt func() (bool, error)) (bool, error) {
	if force {
		return true, nil
	}
	return prompt()
}

// Driver runs a cleanup against Cache.
type Driver struct {
	Cache  Cache
	Force  bool
	DryRun bool
	Prompt PromptFunc
	Style  output.Style

	// Out receives the plan and progress; Diag receives the output of
	// failed conan invocations. Both default to stdout/stderr.
	Out  io.Writer
	Diag io.Writer
}

// Run removes every cached package not listed in inUse, then every recipe
// left without packages. Errors returned are fatal; failed removals are
// reported and skipped.
func (d *Driver) Run(ctx context.Context, inUse []string) error {
	recipes, inventory, err := d.Inventory(ctx)
	if err != nil {
		return err
	}

	plan := reconcile.Build(inUse, inventory)
	log.Debugf("%d in-use ids, %d recipes, %d removable packages", len(inUse), len(recipes), plan.Len())

	if d.DryRun {
		d.show(plan)
		return nil
	}

	if err := d.RemoveUnused(ctx, plan); err != nil {
		return err
	}
	return d.RemoveEmpty(ctx, recipes)
}

// Inventory lists every recipe and the packages currently cached for each.
func (d *Driver) Inventory(ctx context.Context) ([]string, map[string][]string, error) {
	recipes, err := d.Cache.Recipes(ctx)
	if err != nil {
		return nil, nil, err
	}

	inventory := make(map[string][]string, len(recipes))
	for _, recipe := range recipes {
		pkgs, err := d.Cache.Packages(ctx, recipe)
		if err != nil {
			return nil, nil, err
		}
		inventory[recipe] = pkgs
	}
	return recipes, inventory, nil
}

// RemoveUnused is the first phase: show the plan, ask, remove its packages.
func (d *Driver) RemoveUnused(ctx context.Context, plan reconcile.Plan) error {
	if len(plan) == 0 {
		fmt.Fprintln(d.out(), "No unused packages found.")
		return nil
	}

	d.show(plan)

	ok, err := ShouldProceed(d.Force, d.ask(packagesQuestion))
	if err != nil || !ok {
		return err
	}

	for _, recipe := range plan.Recipes() {
		for _, pkg := range plan[recipe] {
			out, err := d.Cache.RemovePackage(ctx, recipe, pkg)
			if err != nil {
				return err
			}
			if !out.Success() {
				d.report(out, log.Fields{"recipe": recipe, "package": pkg}, "failed to remove package")
				continue
			}
			log.WithFields(log.Fields{"recipe": recipe, "package": pkg}).Info("removed package")
		}
	}
	return nil
}

// RemoveEmpty is the second phase. Each recipe is queried again because the
// first phase may have just removed its last package.
func (d *Driver) RemoveEmpty(ctx context.Context, recipes []string) error {
	ok, err := ShouldProceed(d.Force, d.ask(recipesQuestion))
	if err != nil || !ok {
		return err
	}

	for _, recipe := range recipes {
		pkgs, err := d.Cache.Packages(ctx, recipe)
		if err != nil {
			return err
		}
		if len(pkgs) > 0 {
			continue
		}

		fmt.Fprintf(d.out(), "Removing recipe '%s' since it has no packages left\n", recipe)
		out, err := d.Cache.RemoveRecipe(ctx, recipe)
		if err != nil {
			return err
		}
		if !out.Success() {
			d.report(out, log.Fields{"recipe": recipe}, "failed to remove recipe")
		}
	}
	return nil
}

func (d *Driver) show(plan reconcile.Plan) {
	if len(plan) == 0 {
		fmt.Fprintln(d.out(), "No unused packages found.")
		return
	}
	output.WritePlan(d.out(), plan, d.Style)
	fmt.Fprintln(d.out(), output.Summary(plan))
}

func (d *Driver) ask(question string) func() (bool, error) {
	return func() (bool, error) {
		if d.Prompt == nil {
			return false, fmt.Errorf("no prompt available to confirm %q; use --force", question)
		}
		return d.Prompt(question)
	}
}

// report logs a failed removal and echoes what conan printed.
func (d *Driver) report(out conan.Output, fields log.Fields, msg string) {
	log.WithFields(fields).WithField("exit", out.ExitCode).Error(msg)
	if s := out.String(); s != "" {
		fmt.Fprintln(d.diag(), s)
	}
}

func (d *Driver) out() io.Writer {
	if d.Out == nil {
		return os.Stdout
	}
	return d.Out
}

func (d *Driver) diag() io.Writer {
	if d.Diag == nil {
		return os.Stderr
	}
	return d.Diag
}
