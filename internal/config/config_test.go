// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig sets CONAN_CLEANUP_CFG to point to a test config file.
// Returns cleanup function that should be deferred.
func setupTestConfig(t *testing.T, testdataFile string) (cleanup func()) {
	t.Helper()

	configPath := filepath.Join("testdata", testdataFile)
	absPath, err := filepath.Abs(configPath)
	require.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("CONAN_CLEANUP_CFG", absPath)

	// Reset the global Config to force reload
	Config = Type{}

	return func() {
		Config = Type{}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "/opt/conan/bin/conan", cfg.Data["conan"])
				assert.Equal(t, "conaninfo.txt", cfg.Data["manifest"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				colors, ok := cfg.Data["colors"].(map[string]interface{})
				assert.True(t, ok, "colors should be a map")
				assert.Equal(t, "#00c8f0", colors["recipe"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, true, cfg.Data["color"])
				assert.Equal(t, 4, cfg.Data["indent"])
				assert.Equal(t, 30.5, cfg.Data["timeout"])
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				// Empty YAML unmarshals to nil map, which is acceptable
				assert.NotEmpty(t, cfg.Source, "should have a source path")
				assert.Empty(t, cfg.Data)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			cfg, err := Load()
			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("CONAN_CLEANUP_CFG", "/nonexistent/path/conan-cleanup.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_CfgIsDirectory(t *testing.T) {
	t.Setenv("CONAN_CLEANUP_CFG", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestLoad_StandardLocation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("conan: xdg-conan\n"), 0o600))

	t.Setenv("CONAN_CLEANUP_CFG", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	Config = Type{}
	defer func() { Config = Type{} }()

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), cfg.Source)
	assert.Equal(t, "xdg-conan", cfg.Data["conan"])
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("conan: [unclosed\n"), 0o600))

	t.Setenv("CONAN_CLEANUP_CFG", path)
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{name: "simple string value", testFile: "simple.yaml", key: "conan", want: "/opt/conan/bin/conan"},
		{name: "nested string value", testFile: "nested.yaml", key: "colors.recipe", want: "#00c8f0"},
		{name: "missing key with default", testFile: "simple.yaml", key: "missing", defaultValue: []string{"default-value"}, want: "default-value"},
		{name: "missing key without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "non-string value", testFile: "mixed-types.yaml", key: "indent", wantErr: true},
		{name: "path through a scalar", testFile: "simple.yaml", key: "conan.path", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			got, err := GetString(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{name: "int value", testFile: "mixed-types.yaml", key: "indent", want: 4},
		{name: "float value converted to int", testFile: "mixed-types.yaml", key: "timeout", want: 30},
		{name: "missing key with default", testFile: "simple.yaml", key: "missing", defaultValue: []int{2}, want: 2},
		{name: "missing key without default", testFile: "simple.yaml", key: "missing", wantErr: true},
		{name: "non-int value", testFile: "simple.yaml", key: "conan", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			got, err := GetInt(tt.key, tt.defaultValue...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_GetNestedPath(t *testing.T) {
	cleanup := setupTestConfig(t, "nested.yaml")
	defer cleanup()

	_, err := Load()
	require.NoError(t, err)

	val, err := Config.get("levels.one.two.value")
	assert.NoError(t, err)
	assert.Equal(t, "deep-value", val)
}

func TestConfig_LazyLoad(t *testing.T) {
	cleanup := setupTestConfig(t, "simple.yaml")
	defer cleanup()

	// Don't explicitly call Load(), just use GetString
	val, err := GetString("manifest")
	assert.NoError(t, err)
	assert.Equal(t, "conaninfo.txt", val)
	assert.NotEmpty(t, Config.Source, "Config should be loaded")
}
