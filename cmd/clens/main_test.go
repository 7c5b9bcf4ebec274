package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default; cobra commands are package
// globals and keep parsed values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	current = nil
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--color", "never", "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	if terr := teardown(nil, nil); err == nil {
		err = terr
	}
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAnalyzeJSON(t *testing.T) {
	out, _, err := execute(t, "", "analyze", "--format", "json", "-e", "int x; for(int i=0;i<n;i++){}")
	require.NoError(t, err)

	var bundle map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &bundle))
	for _, key := range []string{"tokens", "parseTree", "scopes", "flow", "complexity", "diagnostics"} {
		assert.Contains(t, bundle, key)
	}
	assert.JSONEq(t, "[]", string(bundle["diagnostics"]))
	assert.Contains(t, string(bundle["complexity"]), `"O(n)"`)
}

func TestDiagExitsWithErrors(t *testing.T) {
	out, _, err := execute(t, "", "diag", "--format", "short", "-e", "int x = (1;")
	require.ErrorIs(t, err, errDiagnostics)
	assert.True(t, strings.HasPrefix(out, "error SYN2002 <code>:1:9 "), out)
}

func TestDiagCleanInputSucceeds(t *testing.T) {
	out, _, err := execute(t, "", "diag", "-e", "int x = 1;")
	require.NoError(t, err)
	assert.Contains(t, out, "no diagnostics")
}

func TestDiagDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.c"), "int a;\n")
	writeFile(t, filepath.Join(dir, "sub", "bad.c"), "int b = @;\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "int c = @;\n")
	writeFile(t, filepath.Join(dir, "vendor", "lib.c"), "int d = @;\n")

	out, _, err := execute(t, "", "diag", "--format", "short", "--progress", "off", dir)
	require.ErrorIs(t, err, errDiagnostics)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1, out)
	assert.Contains(t, lines[0], "error LEX1001 ")
	assert.Contains(t, lines[0], "bad.c:1:9 Invalid token: @")
}

func TestDiagDirectoryJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.c"), "int a;")
	writeFile(t, filepath.Join(dir, "b.c"), "while (x { }")

	out, _, err := execute(t, "", "diag", "--format", "json", "--progress", "off", "--jobs", "2", dir)
	require.ErrorIs(t, err, errDiagnostics)

	dec := json.NewDecoder(strings.NewReader(out))
	var docs []struct {
		Path        string           `json:"path"`
		Diagnostics []map[string]any `json:"diagnostics"`
	}
	for dec.More() {
		var doc struct {
			Path        string           `json:"path"`
			Diagnostics []map[string]any `json:"diagnostics"`
		}
		require.NoError(t, dec.Decode(&doc))
		docs = append(docs, doc)
	}
	require.Len(t, docs, 2)
	assert.True(t, strings.HasSuffix(docs[0].Path, "a.c"))
	assert.Empty(t, docs[0].Diagnostics)
	assert.True(t, strings.HasSuffix(docs[1].Path, "b.c"))
	require.Len(t, docs[1].Diagnostics, 1)
	assert.Equal(t, "SYN2002", docs[1].Diagnostics[0]["code"])
}

func TestTokenizeFromStdin(t *testing.T) {
	out, _, err := execute(t, "x;", "tokenize")
	require.NoError(t, err)
	assert.Equal(t, "  1: IDENTIFIER   \"x\" at 1:1\n  2: PUNCTUATION  \";\" at 1:2\n", out)
}

func TestScopesUseConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "clens.toml")
	writeFile(t, cfg, "[analysis]\nscope_mode = \"sticky\"\n")

	src := "for(;;){ } int y;"
	out, _, err := execute(t, "", "--config", cfg, "scopes", "--json", "-e", src)
	require.NoError(t, err)
	var global struct {
		Declarations map[string]any `json:"declarations"`
		Children     []struct {
			Declarations map[string]any `json:"declarations"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &global))
	assert.NotContains(t, global.Declarations, "y")
	require.Len(t, global.Children, 1)
	assert.Contains(t, global.Children[0].Declarations, "y")

	// флаг перекрывает файл
	global.Declarations, global.Children = nil, nil
	out, _, err = execute(t, "", "--config", cfg, "--scope-mode", "block", "scopes", "--json", "-e", src)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &global))
	assert.Contains(t, global.Declarations, "y")
}

func TestInvalidConfigFails(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "clens.toml")
	writeFile(t, cfg, "[output]\nformat = \"xml\"\n")
	_, _, err := execute(t, "", "--config", cfg, "parse", "-e", "int x;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
}

func TestCodeAndFileAreExclusive(t *testing.T) {
	_, _, err := execute(t, "", "parse", "-e", "int x;", "file.c")
	require.Error(t, err)
}

func TestMetricsOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.prom")
	_, _, err := execute(t, "", "--metrics-out", path, "complexity", "-e", "while (1) { }")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "clens_analyses_total")
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")
	_, _, err := execute(t, "", "--cpu-profile", cpu, "--mem-profile", mem, "flow", "-e", "if (x) { }")
	require.NoError(t, err)
	assert.FileExists(t, cpu)
	assert.FileExists(t, mem)
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "", "version", "--format", "json")
	require.NoError(t, err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "clens", payload.Tool)
	assert.NotEmpty(t, payload.Version)
}
