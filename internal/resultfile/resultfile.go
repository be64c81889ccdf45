// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package resultfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/gofrs/flock"
)

// BaseName is the fixed name of the file conan writes search results to.
const BaseName = "conan_search_result.json"

// Dir resolves the directory holding the result file.
// Precedence:
//  1. CONAN_CLEANUP_TMPDIR, if set and non-empty
//  2. os.TempDir()
func Dir() string {
	if d, ok := os.LookupEnv("CONAN_CLEANUP_TMPDIR"); ok && d != "" {
		return d
	}
	return os.TempDir()
}

// Path returns the absolute path of the search result file. Every query
// overwrites the same file.
func Path() string {
	return filepath.Join(Dir(), BaseName)
}

// Clear removes a previous result so that a query which fails to write one
// can't be mistaken for a fresh, successful query. A missing file is fine.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear previous search result %s: %w", path, err)
	}
	return nil
}

// Discard deletes the result file at the end of a run. Failure is only a
// warning; the run's outcome doesn't depend on it.
func Discard(path string) {
	err := os.Remove(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return
	}
	log.WithError(err).Warnf("failed to remove temporary file '%s'", path)
	log.Warn("Please remove the file manually.")
}

// Lock takes an exclusive lock next to the result file. Runs share a single
// result path, so a second concurrent run is refused rather than allowed to
// overwrite the first run's results.
func Lock(path string) (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:mnd
		return nil, fmt.Errorf("failed to create result directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", lock.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("another conan-cleanup run holds %s", lock.Path())
	}
	log.Debugf("acquired lock %s", lock.Path())
	return lock, nil
}

// Unlock releases a lock taken by Lock and removes the lock file. Both steps
// are best effort.
func Unlock(lock *flock.Flock) {
	if err := lock.Unlock(); err != nil {
		log.WithError(err).Warnf("failed to release %s", lock.Path())
		return
	}
	if err := os.Remove(lock.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.WithError(err).Warnf("failed to remove lock file '%s'", lock.Path())
	}
}
