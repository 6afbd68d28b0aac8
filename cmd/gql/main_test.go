package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type output struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
}

// run executes the CLI against a fresh config in dir.
func run(t *testing.T, dir, stdin string, args ...string) (*output, error) {
	t.Helper()

	cfg := filepath.Join(dir, ".gql.yaml")
	if _, err := os.Stat(cfg); os.IsNotExist(err) {
		require.NoError(t, os.WriteFile(cfg, []byte("log:\n  level: error\n"), 0o600))
	}

	out := &output{}
	app := newApp(strings.NewReader(stdin), &out.stdout, &out.stderr)
	err := app.Run(context.Background(), append([]string{"gql", "--config", cfg}, args...))

	return out, err
}

func writeQuery(t *testing.T, path, content string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeQuery(t, filepath.Join(dir, "q.gql"), "MATCH (a:Person) RETURN a")

	out, err := run(t, dir, "", "parse", "--stats", path)
	require.NoError(t, err)

	lines := strings.Split(out.stdout.String(), "\n")
	assert.Equal(t, "(program (match (graph (pattern (node a :Person)))) (return a))", lines[0])
	assert.Contains(t, out.stdout.String(), "     1  Program\n")
	assert.Contains(t, out.stdout.String(), "     1  MatchStatement\n")
	assert.Empty(t, out.stderr.String())
}

func TestParseCommandStdin(t *testing.T) {
	t.Parallel()

	out, err := run(t, t.TempDir(), "RETURN a < b < c", "parse", "-")
	require.ErrorIs(t, err, ErrDiagnosticErrors)

	assert.Contains(t, out.stderr.String(), "error[P003]")
	assert.Contains(t, out.stderr.String(), "--> <stdin>:1:")
}

func TestTokenizeCommand(t *testing.T) {
	t.Parallel()

	out, err := run(t, t.TempDir(), "RETURN 1", "tokenize", "--json")
	require.NoError(t, err)

	var toks []jsonToken
	require.NoError(t, json.Unmarshal(out.stdout.Bytes(), &toks))
	require.Len(t, toks, 3)
	assert.Equal(t, "RETURN", toks[0].Kind)
	assert.Equal(t, "1", toks[1].Text)
	assert.Equal(t, 8, toks[2].Start)
	assert.Equal(t, 8, toks[2].End)

	out, err = run(t, t.TempDir(), "RETURN 1", "tokenize")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.stdout.String(), "1:1"))
	assert.Contains(t, out.stdout.String(), `"RETURN"`)
}

func TestCheckCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeQuery(t, filepath.Join(dir, "queries", "good.gql"), "MATCH (a) RETURN a")
	writeQuery(t, filepath.Join(dir, "queries", "bad.gqls"), "MATCH (a RETURN a")
	writeQuery(t, filepath.Join(dir, "queries", "notes.txt"), "not a query (")

	out, err := run(t, dir, "", "check", "--format", "json", filepath.Join(dir, "queries"))
	require.ErrorIs(t, err, ErrDiagnosticErrors)

	var doc struct {
		Files []struct {
			Name        string `json:"name"`
			Diagnostics []any  `json:"diagnostics"`
		} `json:"files"`
		Errors int `json:"errors"`
	}

	require.NoError(t, json.Unmarshal(out.stdout.Bytes(), &doc))
	require.Len(t, doc.Files, 2)
	assert.Equal(t, "bad.gqls", filepath.Base(doc.Files[0].Name))
	assert.NotEmpty(t, doc.Files[0].Diagnostics)
	assert.Empty(t, doc.Files[1].Diagnostics)
	assert.Positive(t, doc.Errors)
}

func TestCheckCommandFilter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeQuery(t, filepath.Join(dir, "bad.gql"), "MATCH (a RETURN a")

	out, err := run(t, dir, "", "check", "--no-color", "--filter", `severity == "warning"`, path)
	require.NoError(t, err)
	assert.Equal(t, "checked 1 file: 0 errors, 0 warnings\n", out.stdout.String())

	_, err = run(t, dir, "", "check", "--filter", `severity ==`, path)
	assert.Error(t, err)
}

func TestCheckCommandConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeQuery(t, filepath.Join(dir, ".gql.yaml"), "limits:\n  max_input_bytes: 4\nlog:\n  level: error\n")
	path := writeQuery(t, filepath.Join(dir, "big.gql"), "RETURN 1")

	out, err := run(t, dir, "", "check", "--no-color", path)
	require.ErrorIs(t, err, ErrDiagnosticErrors)
	assert.Contains(t, out.stdout.String(), "input too large")
}

func TestCheckCommandNoFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := run(t, dir, "", "check", filepath.Join(dir))
	assert.ErrorIs(t, err, ErrNoQueryFiles)
}

func TestInvalidLogLevel(t *testing.T) {
	t.Parallel()

	_, err := run(t, t.TempDir(), "RETURN 1", "--log-level", "loud", "parse")
	assert.Error(t, err)
}
