package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiscout/internal/config"
	"apiscout/internal/version"
)

const v1Spec = `
openapi: 3.0.0
info: {title: Users, version: 1.0.0}
paths:
  /users:
    get: {summary: List users, tags: [users]}
    post: {summary: Create user, tags: [users]}
  /legacy:
    get: {summary: Legacy endpoint}
`

const v2Spec = `
openapi: 3.0.0
info: {title: Users, version: 2.0.0}
paths:
  /users:
    get: {summary: List users, tags: [users]}
    post: {summary: Create user, tags: [users]}
  /users/{id}:
    get: {summary: Get user, tags: [users]}
`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v1.yaml"), []byte(v1Spec), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v2.yaml"), []byte(v2Spec), 0o644))

	cfg := `
[[specs]]
version = "v1"
path = "v1.yaml"
label = "Legacy"

[[specs]]
version = "v2"
path = "v2.yaml"
default = true

[log]
level = "warn"
file = "` + filepath.ToSlash(filepath.Join(dir, "apiscout.log")) + `"
`
	path := filepath.Join(dir, "apiscout.toml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	cfg := writeFixture(t)

	out, err := run(t, "--config", cfg, "search", "get", "user")
	require.NoError(t, err)
	assert.Contains(t, out, "/users/{id}")
	assert.Contains(t, out, "get_users_id.html")
	assert.Contains(t, out, "1 of 1")
	assert.NotContains(t, out, "post_users.html")
}

func TestSearchCommandVersionScope(t *testing.T) {
	cfg := writeFixture(t)

	out, err := run(t, "--config", cfg, "search", "--version", "v1", "get user")
	require.NoError(t, err)
	assert.Contains(t, out, `No endpoints match "get user"`)

	out, err = run(t, "--config", cfg, "search", "--version", "v1", "/legacy")
	require.NoError(t, err)
	assert.Contains(t, out, "get_legacy.html")

	_, err = run(t, "--config", cfg, "search", "--version", "v9", "users")
	assert.ErrorIs(t, err, version.ErrUnknownVersion)
}

func TestSearchCommandAllVersions(t *testing.T) {
	cfg := writeFixture(t)

	out, err := run(t, "--config", cfg, "search", "--all", "/users")
	require.NoError(t, err)
	// GET and POST /users from both versions plus GET /users/{id}
	assert.Contains(t, out, "5 of 5")
}

func TestSearchCommandLimit(t *testing.T) {
	cfg := writeFixture(t)

	out, err := run(t, "--config", cfg, "search", "-n", "1", "/users")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 3")
}

func TestSearchCommandRequiresQuery(t *testing.T) {
	cfg := writeFixture(t)

	_, err := run(t, "--config", cfg, "search")
	assert.Error(t, err)
}

func TestOneShotCommandsSkipLogFile(t *testing.T) {
	cfg := writeFixture(t)
	logPath := filepath.Join(filepath.Dir(cfg), "apiscout.log")

	for _, args := range [][]string{
		{"search", "users"},
		{"versions"},
		{"diff"},
	} {
		_, err := run(t, append([]string{"--config", cfg}, args...)...)
		require.NoError(t, err, "%v", args)
		assert.NoFileExists(t, logPath, "%v", args)
	}
}

func TestVersionsCommand(t *testing.T) {
	cfg := writeFixture(t)

	out, err := run(t, "--config", cfg, "versions")
	require.NoError(t, err)
	assert.Contains(t, out, "VERSION")
	assert.Contains(t, out, "Legacy")
	assert.Contains(t, out, "v2")
	assert.Contains(t, out, "*")
}

func TestDiffCommand(t *testing.T) {
	cfg := writeFixture(t)

	out, err := run(t, "--config", cfg, "diff")
	require.NoError(t, err)
	assert.Contains(t, out, "v1: 3 endpoints")
	assert.Contains(t, out, "v2 (from v1): 3 endpoints, +1 -1")
	assert.Contains(t, out, "+ GET /users/{id}")
	assert.Contains(t, out, "- GET /legacy")
}

func TestDiffCommandSingleVersion(t *testing.T) {
	cfg := writeFixture(t)
	spec := filepath.Join(filepath.Dir(cfg), "v2.yaml")

	out, err := run(t, "--config", cfg, "diff", "--spec", spec)
	require.NoError(t, err)
	assert.Contains(t, out, "Only one version loaded")
}

func TestMissingConfigFile(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "versions")
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestSpecSources(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Specs = []config.SpecSource{{Version: "v1", Path: "/a.yaml", Label: "One", Default: true}}

	sources := specSources(cfg, nil)
	require.Len(t, sources, 1)
	assert.Equal(t, "v1", sources[0].Version)
	assert.True(t, sources[0].Default)

	// a single command line spec takes its version from the document
	sources = specSources(cfg, []string{"/tmp/api.yaml"})
	require.Len(t, sources, 1)
	assert.Equal(t, "", sources[0].Version)

	sources = specSources(cfg, []string{"/tmp/v1.yaml", "/tmp/v2.json"})
	require.Len(t, sources, 2)
	assert.Equal(t, "v1", sources[0].Version)
	assert.Equal(t, "v2", sources[1].Version)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Search.Threshold = 0.2
	cfg.Search.DebounceMS = 200

	assert.Equal(t, 0.2, matchOptions(cfg).Threshold)
	assert.Equal(t, 200*time.Millisecond, searchOptions(cfg).Debounce)
	assert.Equal(t, 10, searchOptions(cfg).MaxResults)
}
