// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package reconcile decides which cached packages are unused.
package reconcile

import "sort"

// Plan maps a recipe to the ids of its cached packages that no project
// requires. Recipes with nothing to remove are never present.
type Plan map[string][]string

// Build compares every recipe's cached packages against the in-use ids.
// Package order within a recipe follows the inventory.
func Build(inUse []string, inventory map[string][]string) Plan {
	used := make(map[string]struct{}, len(inUse))
	for _, id := range inUse {
		used[id] = struct{}{}
	}

	plan := Plan{}
	for recipe, packages := range inventory {
		var unused []string
		for _, pkg := range packages {
			if _, ok := used[pkg]; !ok {
				unused = append(unused, pkg)
			}
		}
		if len(unused) > 0 {
			plan[recipe] = unused
		}
	}
	return plan
}

// Recipes returns the recipes in the plan, sorted.
func (p Plan) Recipes() []string {
	recipes := make([]string, 0, len(p))
	for r := range p {
		recipes = append(recipes, r)
	}
	sort.Strings(recipes)
	return recipes
}

// Len is the number of packages the plan removes.
func (p Plan) Len() int {
	n := 0
	for _, pkgs := range p {
		n += len(pkgs)
	}
	return n
}
