// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"

	"github.com/go-ini/ini"
)

const (
	// DefaultName is the file conan writes into every build folder.
	DefaultName = "conaninfo.txt"

	// Section lists the full transitive dependency closure of the project.
	Section = "full_requires"
)

// ErrMissingSection is returned when a manifest has no [full_requires]
// section. An empty section is fine, a missing one is not.
var ErrMissingSection = errors.New("section '" + Section + "' is missing")

// ParseRequired returns the package ids listed in the manifest's
// [full_requires] section. Only values are used; a line reads
// "<recipe reference>:<package id>" so the key is just the recipe the id
// belongs to.
func ParseRequired(path string) ([]string, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		// [requires] and friends hold bare references with no delimiter.
		AllowBooleanKeys: true,
		// Recipe revisions are written as "ref#rrev".
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return nil, err
	}

	sec, err := f.GetSection(Section)
	if err != nil {
		return nil, ErrMissingSection
	}

	ids := make([]string, 0, len(sec.Keys()))
	for _, key := range sec.Keys() {
		ids = append(ids, key.Value())
	}
	return ids, nil
}
