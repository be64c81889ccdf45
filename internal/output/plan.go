// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/dustin/go-humanize/english"

	"github.com/staranto/conancleanup/internal/config"
	"github.com/staranto/conancleanup/internal/reconcile"
)

// Style controls how a plan is rendered.
type Style struct {
	Color        bool
	RecipeColor  string
	PackageColor string
	Indent       int
}

// StyleFromConfig builds a Style from the colors.* and indent config keys.
func StyleFromConfig(color bool) Style {
	recipe, _ := config.GetString("colors.recipe", "#f6be00")
	pkg, _ := config.GetString("colors.package", "#00c8f0")
	indent, _ := config.GetInt("indent", 2)
	if indent < 0 {
		indent = 0
	}
	return Style{
		Color:        color,
		RecipeColor:  recipe,
		PackageColor: pkg,
		Indent:       indent,
	}
}

func (s Style) render(color string, text string) string {
	if !s.Color || color == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}

// WritePlan prints every recipe in the plan followed by its indented package
// ids. Recipes are sorted; packages keep the order conan listed them in.
func WritePlan(w io.Writer, plan reconcile.Plan, s Style) {
	pad := strings.Repeat(" ", s.Indent)

	fmt.Fprintln(w, "Packages to remove:")
	for _, recipe := range plan.Recipes() {
		fmt.Fprintln(w, s.render(s.RecipeColor, recipe))
		for _, pkg := range plan[recipe] {
			fmt.Fprintln(w, pad+s.render(s.PackageColor, pkg))
		}
	}
}

// Summary describes the size of the plan, e.g.
// "3 packages in 2 recipes can be removed".
func Summary(plan reconcile.Plan) string {
	return fmt.Sprintf("%s in %s can be removed",
		english.Plural(plan.Len(), "package", ""),
		english.Plural(len(plan), "recipe", ""))
}
