// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/conancleanup/internal/config"
	"github.com/staranto/conancleanup/internal/resultfile"
	"github.com/staranto/conancleanup/internal/version"
)

// fakeConan is a stand-in for the conan executable. It serves search results
// from files next to itself, records every invocation in calls.log, and
// forgets a recipe's package once `conan remove -p` has run.
const fakeConan = `#!/bin/sh
dir=$(dirname "$0")
echo "$*" >> "$dir/calls.log"
case "$1" in
search)
  if [ $# -ge 4 ]; then
    key=$(printf '%s' "$4" | tr '/@' '__')
    cp "$dir/pkg_$key.json" "$3"
  else
    cp "$dir/recipes.json" "$3"
  fi
  ;;
remove)
  key=$(printf '%s' "$2" | tr '/@' '__')
  if [ "$3" = "-p" ]; then
    printf '{"results":[{"items":[{"recipe":{"id":"%s"}}]}]}' "$2" > "$dir/pkg_$key.json"
  fi
  ;;
esac
`

type fixture struct {
	conan   string
	root    string
	tmp     string
	binDir  string
	results string
}

func newFixture(t *testing.T, recipesJSON string) *fixture {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake conan is a shell script")
	}

	f := &fixture{
		binDir: t.TempDir(),
		root:   t.TempDir(),
		tmp:    t.TempDir(),
	}
	f.conan = filepath.Join(f.binDir, "conan")
	f.results = filepath.Join(f.tmp, resultfile.BaseName)

	require.NoError(t, os.WriteFile(f.conan, []byte(fakeConan), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.binDir, "recipes.json"), []byte(recipesJSON), 0o600))

	t.Setenv("CONAN_CLEANUP_TMPDIR", f.tmp)
	t.Setenv("CONAN_CLEANUP_CFG", filepath.Join(f.binDir, "no-config.yaml"))
	config.Config = config.Type{}
	return f
}

func (f *fixture) packages(t *testing.T, recipe string, ids ...string) {
	t.Helper()
	var pkgs []string
	for _, id := range ids {
		pkgs = append(pkgs, `{"id":"`+id+`"}`)
	}
	doc := `{"results":[{"items":[{"recipe":{"id":"` + recipe + `"},"packages":[` + strings.Join(pkgs, ",") + `]}]}]}`
	key := strings.NewReplacer("/", "_", "@", "_").Replace(recipe)
	require.NoError(t, os.WriteFile(filepath.Join(f.binDir, "pkg_"+key+".json"), []byte(doc), 0o600))
}

func (f *fixture) manifest(t *testing.T, rel string, content string) {
	t.Helper()
	path := filepath.Join(f.root, rel, "conaninfo.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func (f *fixture) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(f.binDir, "calls.log"))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func (f *fixture) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	argv := append([]string{"conan-cleanup", "--conan", f.conan, "--no-color"}, args...)

	app, err := InitApp(context.Background(), argv)
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &errOut

	err = app.Run(context.Background(), argv)
	return out.String(), err
}

const twoRecipes = `{"results":[{"items":[
  {"recipe":{"id":"zlib/1.2.11@conan/stable"}},
  {"recipe":{"id":"bzip2/1.0.8@conan/stable"}}
]}]}`

func TestApp_ForceRemovesUnusedAndEmptyRecipes(t *testing.T) {
	f := newFixture(t, twoRecipes)
	f.packages(t, "zlib/1.2.11@conan/stable", "zlib-used")
	f.packages(t, "bzip2/1.0.8@conan/stable", "bzip2-unused")
	f.manifest(t, "app/build", "[full_requires]\nzlib/1.2.11@conan/stable:zlib-used\n")

	out, err := f.run(t, "", "--force", f.root)
	require.NoError(t, err)

	calls := f.calls(t)
	assert.Contains(t, calls, "remove bzip2/1.0.8@conan/stable -p bzip2-unused -f")
	assert.Contains(t, calls, "remove bzip2/1.0.8@conan/stable -f")
	for _, c := range calls {
		assert.False(t, strings.HasPrefix(c, "remove zlib"), c)
	}

	assert.Contains(t, out, "bzip2/1.0.8@conan/stable\n  bzip2-unused\n")
	assert.Contains(t, out, "Removing recipe 'bzip2/1.0.8@conan/stable' since it has no packages left")
	assert.NotContains(t, out, "(yes/no)")

	_, statErr := os.Stat(f.results)
	assert.True(t, os.IsNotExist(statErr), "result file should be removed")
	_, statErr = os.Stat(f.results + ".lock")
	assert.True(t, os.IsNotExist(statErr), "lock file should be removed")
}

func TestApp_VersionSkipsCleanup(t *testing.T) {
	f := newFixture(t, twoRecipes)

	out, err := f.run(t, "", "--version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", out)
	assert.Empty(t, f.calls(t))
}

func TestApp_RelativeRootResolvesAgainstStartingDir(t *testing.T) {
	f := newFixture(t, twoRecipes)
	f.packages(t, "zlib/1.2.11@conan/stable", "zlib-used")
	f.packages(t, "bzip2/1.0.8@conan/stable", "bzip2-used")
	f.manifest(t, "app", "[full_requires]\nzlib/1.2.11@conan/stable:zlib-used\nbzip2/1.0.8@conan/stable:bzip2-used\n")
	t.Chdir(filepath.Dir(f.root))

	out, err := f.run(t, "", "--force", filepath.Base(f.root))
	require.NoError(t, err)
	assert.Contains(t, out, "No unused packages found.")
}

func TestApp_PromptsAndHonoursAnswers(t *testing.T) {
	f := newFixture(t, twoRecipes)
	f.packages(t, "zlib/1.2.11@conan/stable", "zlib-used")
	f.packages(t, "bzip2/1.0.8@conan/stable", "bzip2-unused")
	f.manifest(t, "app", "[full_requires]\nzlib/1.2.11@conan/stable:zlib-used\n")

	out, err := f.run(t, "yes\nno\n", f.root)
	require.NoError(t, err)

	assert.Contains(t, out, "Do you want to remove the packages listed above? (yes/no)")
	assert.Contains(t, out, "Do you want to remove recipes that no longer have any packages? (yes/no)")

	calls := f.calls(t)
	assert.Contains(t, calls, "remove bzip2/1.0.8@conan/stable -p bzip2-unused -f")
	assert.NotContains(t, calls, "remove bzip2/1.0.8@conan/stable -f")
}

func TestApp_DryRunChangesNothing(t *testing.T) {
	f := newFixture(t, twoRecipes)
	f.packages(t, "zlib/1.2.11@conan/stable", "z1", "z2")
	f.packages(t, "bzip2/1.0.8@conan/stable")
	f.manifest(t, "app", "[full_requires]\nzlib/1.2.11@conan/stable:z1\n")

	out, err := f.run(t, "", "--dry-run", f.root)
	require.NoError(t, err)

	assert.Contains(t, out, "zlib/1.2.11@conan/stable\n  z2\n")
	assert.Contains(t, out, "1 package in 1 recipe can be removed")
	for _, c := range f.calls(t) {
		assert.True(t, strings.HasPrefix(c, "search "), c)
	}
}

func TestApp_MalformedSearchResultAborts(t *testing.T) {
	f := newFixture(t, `{"error": false}`)
	f.manifest(t, "app", "[full_requires]\nr/1@u/c:p\n")

	_, err := f.run(t, "", "--force", f.root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conan might have changed its output format")
	assert.Equal(t, []string{"search -j " + f.results}, f.calls(t))
}

func TestApp_MissingConanIsFatal(t *testing.T) {
	f := newFixture(t, twoRecipes)
	f.conan = filepath.Join(f.binDir, "not-conan")

	_, err := f.run(t, "", "--force", f.root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search' failed")
}

func TestApp_RootPathRequired(t *testing.T) {
	f := newFixture(t, twoRecipes)

	_, err := f.run(t, "")
	assert.EqualError(t, err, "root_path is required")

	_, err = f.run(t, "", filepath.Join(f.root, "missing"))
	assert.Error(t, err)
	assert.Nil(t, f.calls(t))
}

func TestApp_ForceAndDryRunConflict(t *testing.T) {
	f := newFixture(t, twoRecipes)

	_, err := f.run(t, "", "--force", "--dry-run", f.root)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestGetMeta(t *testing.T) {
	t.Setenv("CONAN_CLEANUP_TMPDIR", t.TempDir())
	app, err := InitApp(context.Background(), []string{"conan-cleanup"})
	require.NoError(t, err)

	m := GetMeta(app)
	assert.Equal(t, resultfile.Path(), m.ResultPath)
	assert.Equal(t, []string{"conan-cleanup"}, m.Args)
	wd, _ := os.Getwd()
	assert.Equal(t, wd, m.StartingDir)
	assert.Empty(t, GetMeta(nil).Args)
}
