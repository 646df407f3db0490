package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pilha/pkg/adapters/fs"
	"github.com/aretw0/pilha/pkg/core"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// setupData writes the "todo" (A, B, C) and "empty" stacks and isolates the
// command from the user's config and environment.
func setupData(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PILHA_DIR", "")
	t.Setenv("PILHA_STACK", "")
	t.Setenv("PILHA_FORMAT", "")

	dir := t.TempDir()
	repo := fs.NewRepository(fs.Config{Path: dir})
	ctx := context.Background()

	var todo []core.Item
	for i, c := range []string{"A", "B", "C"} {
		todo = append(todo, core.NewItem(c, base.Add(time.Duration(i)*time.Minute)))
	}
	require.NoError(t, repo.Save(ctx, "todo", todo))
	require.NoError(t, repo.Save(ctx, "empty", nil))
	require.NoError(t, repo.Save(ctx, "work/today", todo[:1]))
	require.NoError(t, repo.Save(ctx, "work/later", todo[:1]))
	return dir
}

func resetFlags() {
	verbose, quiet = false, false
	stackName, dataDir, formatName, configPath = "", "", "", ""
	matchPattern = ""
	watchChanges = 0
	current = nil
}

type result struct {
	out  string
	code int
	err  error
}

func run(t *testing.T, ctx context.Context, args ...string) result {
	t.Helper()
	resetFlags()

	res := result{}
	exit = func(code int) { res.code = code }
	t.Cleanup(func() { exit = os.Exit })

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	res.err = rootCmd.ExecuteContext(ctx)
	res.out = out.String()
	return res
}

func invoke(t *testing.T, dir string, args ...string) result {
	t.Helper()
	return run(t, context.Background(), append([]string{"--dir", dir}, args...)...)
}

func TestScenarioTodo(t *testing.T) {
	dir := setupData(t)

	tests := []struct {
		args []string
		want string
		code int
	}{
		{[]string{"peek"}, "Now C\n", 0},
		{[]string{"list"}, "0 C 2024-01-01T00:02:00Z\n1 B 2024-01-01T00:01:00Z\n2 A 2024-01-01T00:00:00Z\n", 0},
		{[]string{"head", "2"}, "0 C 2024-01-01T00:02:00Z\n1 B 2024-01-01T00:01:00Z\n", 0},
		{[]string{"tail", "2"}, "1 B 2024-01-01T00:01:00Z\n2 A 2024-01-01T00:00:00Z\n", 0},
		{[]string{"count"}, "3\n", 0},
		{[]string{"is-empty"}, "false\n", 1},
	}

	for _, tc := range tests {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			args := append([]string{"-t", "todo", "-f", "simple"}, tc.args...)
			res := invoke(t, dir, args...)
			require.NoError(t, res.err)
			assert.Equal(t, tc.want, res.out)
			assert.Equal(t, tc.code, res.code)
		})
	}
}

func TestScenarioEmpty(t *testing.T) {
	dir := setupData(t)

	tests := []struct {
		args []string
		want string
		code int
	}{
		{[]string{"peek"}, "", 0},
		{[]string{"list"}, "[]\n", 0},
		{[]string{"head"}, "[]\n", 0},
		{[]string{"tail"}, "[]\n", 0},
		{[]string{"count"}, "[{\"items\":\"0\"}]\n", 0},
		{[]string{"is-empty"}, "[{\"empty\":\"true\"}]\n", 0},
	}

	for _, tc := range tests {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			args := append([]string{"-t", "empty", "-f", "json-compact"}, tc.args...)
			res := invoke(t, dir, args...)
			require.NoError(t, res.err)
			assert.Equal(t, tc.want, res.out)
			assert.Equal(t, tc.code, res.code)
		})
	}
}

func TestMissingStack(t *testing.T) {
	dir := setupData(t)

	for _, view := range []string{"peek", "list", "head", "tail", "count"} {
		res := invoke(t, dir, "-t", "nope", "-f", "json", view)
		require.NoError(t, res.err, view)
		assert.Empty(t, res.out, view)
		assert.Equal(t, 0, res.code, view)
	}

	res := invoke(t, dir, "-t", "nope", "-f", "simple", "is-empty")
	require.NoError(t, res.err)
	assert.Equal(t, "true\n", res.out)
	assert.Equal(t, 0, res.code)
}

func TestHumanOutput(t *testing.T) {
	dir := setupData(t)

	res := invoke(t, dir, "-t", "todo", "list")
	require.NoError(t, res.err)
	assert.Equal(t, "Now: C\n  1: B\n  2: A\n", res.out)

	res = invoke(t, dir, "-t", "todo", "-q", "tail", "1")
	require.NoError(t, res.err)
	assert.Equal(t, "A\n", res.out)

	res = invoke(t, dir, "-t", "todo", "-v", "head", "1")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.out, "Now: C  (created "), res.out)

	// Bare invocation peeks.
	res = invoke(t, dir, "-t", "todo")
	require.NoError(t, res.err)
	assert.Equal(t, "Now: C\n", res.out)
}

func TestSilent(t *testing.T) {
	dir := setupData(t)

	for _, view := range []string{"list", "head", "tail", "peek", "count"} {
		res := invoke(t, dir, "-t", "todo", "-f", "silent", view)
		require.NoError(t, res.err)
		assert.Empty(t, res.out, view)
	}

	res := invoke(t, dir, "-t", "todo", "-f", "silent", "is-empty")
	require.NoError(t, res.err)
	assert.Empty(t, res.out)
	assert.Equal(t, 1, res.code)
}

func TestAliases(t *testing.T) {
	dir := setupData(t)

	res := invoke(t, dir, "-t", "todo", "-f", "simple", "top", "1")
	require.NoError(t, res.err)
	assert.Equal(t, "0 C 2024-01-01T00:02:00Z\n", res.out)

	res = invoke(t, dir, "-t", "todo", "-f", "simple", "size")
	require.NoError(t, res.err)
	assert.Equal(t, "3\n", res.out)

	res = invoke(t, dir, "-t", "todo", "-f", "simple", "show")
	require.NoError(t, res.err)
	assert.Equal(t, "Now C\n", res.out)
}

func TestUsageErrors(t *testing.T) {
	dir := setupData(t)

	assert.Error(t, invoke(t, dir, "-t", "todo", "head", "x").err)
	assert.Error(t, invoke(t, dir, "-t", "todo", "head", "-1").err)
	assert.Error(t, invoke(t, dir, "-t", "todo", "head", "1", "2").err)
	assert.Error(t, invoke(t, dir, "-t", "todo", "count", "1").err)
	assert.Error(t, invoke(t, dir, "-f", "ron", "count").err)
	assert.Error(t, invoke(t, dir, "push", "x").err)
}

func TestConfigAndEnv(t *testing.T) {
	dir := setupData(t)

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := "data_dir = \"" + filepath.ToSlash(dir) + "\"\nstack = \"todo\"\nformat = \"csv\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))

	res := run(t, context.Background(), "--config", cfgPath, "count")
	require.NoError(t, res.err)
	assert.Equal(t, "items\n3\n", res.out)

	t.Setenv("PILHA_STACK", "empty")
	res = run(t, context.Background(), "--config", cfgPath, "count")
	require.NoError(t, res.err)
	assert.Equal(t, "items\n0\n", res.out)

	// Flags beat the environment.
	res = run(t, context.Background(), "--config", cfgPath, "-t", "todo", "-f", "tsv", "count")
	require.NoError(t, res.err)
	assert.Equal(t, "items\n3\n", res.out)
}

func TestStacks(t *testing.T) {
	dir := setupData(t)

	res := invoke(t, dir, "-f", "simple", "stacks")
	require.NoError(t, res.err)
	assert.Equal(t, "empty\ntodo\nwork/later\nwork/today\n", res.out)

	res = invoke(t, dir, "-f", "simple", "stacks", "--match", "work/**")
	require.NoError(t, res.err)
	assert.Equal(t, "work/later\nwork/today\n", res.out)

	res = invoke(t, dir, "-f", "simple", "stacks", "--match", "work/[")
	assert.Error(t, res.err)
}

func TestState(t *testing.T) {
	dir := setupData(t)

	res := invoke(t, dir, "state")
	require.NoError(t, res.err)

	var got struct {
		Component string         `json:"component"`
		State     map[string]any `json:"state"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.out), &got))
	assert.Equal(t, "repository", got.Component)
	assert.Equal(t, dir, got.State["path"])
	assert.Equal(t, ".json", got.State["storage"])
}

func TestVersion(t *testing.T) {
	res := run(t, context.Background(), "version")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.out, "pilha version "), res.out)
}

func TestWatch(t *testing.T) {
	dir := setupData(t)
	repo := fs.NewRepository(fs.Config{Path: dir})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(300 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = repo.Save(ctx, "todo", []core.Item{core.NewItem("D", base)})
			}
		}
	}()

	res := run(t, ctx, "--dir", dir, "-t", "todo", "-f", "simple", "watch", "peek", "--changes", "1")
	close(done)

	require.NoError(t, res.err)
	require.NoError(t, ctx.Err(), "watch did not stop after one change")
	assert.True(t, strings.HasSuffix(res.out, "\nNow D\n"), res.out)
}

func TestWatchRejectsIsEmpty(t *testing.T) {
	dir := setupData(t)
	res := invoke(t, dir, "-t", "todo", "watch", "is-empty")
	assert.Error(t, res.err)
}
