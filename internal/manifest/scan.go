// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/apex/log"
)

// Scan walks root, following symbolic links, and returns the sorted,
// deduplicated package ids required by every manifest called name. A manifest
// that can't be parsed is logged and skipped. Only an unusable root is an
// error, since an empty result would make every cached package look unused.
func Scan(root string, name string) ([]string, error) {
	if name == "" {
		name = DefaultName
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan root path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path %s is not a directory", root)
	}

	s := &scanner{
		name: name,
		seen: map[string]struct{}{},
		ids:  map[string]struct{}{},
	}
	if err := s.walk(root); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	log.Debugf("scanned %d manifests under %s", s.manifests, root)
	return s.sorted(), nil
}

type scanner struct {
	name      string
	seen      map[string]struct{} // resolved directories already walked
	ids       map[string]struct{}
	manifests int
}

func (s *scanner) walk(root string) error {
	return filepath.WalkDir(root, s.visit)
}

func (s *scanner) visit(path string, d fs.DirEntry, err error) error {
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("skipping unreadable entry")
		return nil
	}

	switch {
	case d.IsDir():
		return s.enter(path)
	case d.Type()&fs.ModeSymlink != 0:
		return s.follow(path)
	case d.Type().IsRegular() && d.Name() == s.name:
		s.collect(path)
	}
	return nil
}

// enter returns fs.SkipDir for a directory that was already reached through
// another path, which is what breaks symlink cycles.
func (s *scanner) enter(path string) error {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("skipping directory")
		return fs.SkipDir
	}
	if _, ok := s.seen[resolved]; ok {
		log.Debugf("already visited %s via %s", path, resolved)
		return fs.SkipDir
	}
	s.seen[resolved] = struct{}{}
	return nil
}

func (s *scanner) follow(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		log.Debugf("ignoring dangling link %s: %v", path, err)
		return nil
	}
	info, err := os.Stat(target)
	if err != nil {
		log.Debugf("ignoring link %s: %v", path, err)
		return nil
	}

	switch {
	case info.IsDir():
		// WalkDir never descends through links, so walk the target on its own.
		return s.walk(target)
	case info.Mode().IsRegular() && filepath.Base(path) == s.name:
		s.collect(path)
	}
	return nil
}

func (s *scanner) collect(path string) {
	ids, err := ParseRequired(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("failed to parse manifest")
		return
	}
	s.manifests++
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

func (s *scanner) sorted() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
