package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const sampleFixture = `{
  "functions": [
    {"path": "one", "outputs": ["out"]},
    {"path": "add", "inputs": ["lhs", "rhs"], "outputs": ["out"]}
  ],
  "calls": [
    {"id": "a", "path": "one"},
    {"id": "b", "path": "one"},
    {"id": "sum", "path": "add"}
  ],
  "connections": [
    {"src_call": "a", "src_socket": "out", "dst_call": "sum", "dst_socket": "lhs"},
    {"src_call": "b", "src_socket": "out", "dst_call": "sum", "dst_socket": "rhs"}
  ],
  "root": {"call": "sum", "socket": "out"}
}`

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadGraphResolvesCallsConnectionsAndRoot(t *testing.T) {
	path := writeFixture(t, sampleFixture)
	g, root, err := loadGraph(zerolog.Nop(), path)
	require.NoError(t, err)
	require.False(t, root.IsZero())

	owner, ok := g.NodeOf(root)
	require.True(t, ok)
	name, ok := g.Name(owner)
	require.True(t, ok)
	require.Equal(t, "add", name)
}

func TestLoadGraphRejectsUnknownCallReference(t *testing.T) {
	bad := `{
      "functions": [{"path": "one", "outputs": ["out"]}],
      "calls": [{"id": "a", "path": "one"}],
      "connections": [{"src_call": "a", "src_socket": "out", "dst_call": "missing", "dst_socket": "in"}],
      "root": {"call": "a", "socket": "out"}
    }`
	path := writeFixture(t, bad)
	_, _, err := loadGraph(zerolog.Nop(), path)
	require.Error(t, err)
}

func TestLoadGraphRejectsUnknownSocketName(t *testing.T) {
	bad := `{
      "functions": [{"path": "one", "outputs": ["out"]}],
      "calls": [{"id": "a", "path": "one"}],
      "connections": [],
      "root": {"call": "a", "socket": "nonexistent"}
    }`
	path := writeFixture(t, bad)
	_, _, err := loadGraph(zerolog.Nop(), path)
	require.Error(t, err)
}
