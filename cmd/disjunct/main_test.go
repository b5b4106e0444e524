package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/disjunct/problem"
	"github.com/katalvlaran/disjunct/world"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func tableRows(out string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n")[1:] {
		rows = append(rows, strings.Fields(line))
	}

	return rows
}

func TestGenerateThenSolve(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "random.json")

	_, err := execute(t, "generate", "--jobs", "3", "--machines", "2", "--seed", "4", "-o", file)
	require.NoError(t, err)
	g, err := problem.Load(file)
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 3*3)

	metrics := filepath.Join(dir, "metrics.prom")
	out, err := execute(t, "solve", file, "--timeout", "30s", "--metrics", metrics)
	require.NoError(t, err)

	rows := tableRows(out)
	require.Len(t, rows, 1)
	assert.Equal(t, "random.json", rows[0][0])
	assert.Equal(t, world.DefaultSettings().String(), rows[0][1])
	assert.Equal(t, "optimal", rows[0][2])
	assert.NotEqual(t, "-", rows[0][3])

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "disjunct_nodes_solved_total")
	assert.Contains(t, string(data), `disjunct_last_bound{kind="value"}`)
}

func TestSolveDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "b.json"} {
		_, err := execute(t, "generate", "--jobs", "2", "--machines", "2", "-o", filepath.Join(dir, name))
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	out, err := execute(t, "solve", dir, "--jobs", "3")
	require.NoError(t, err)
	rows := tableRows(out)
	require.Len(t, rows, 2*len(defaultMatrix()))
	assert.Equal(t, "a.json", rows[0][0])
	assert.Equal(t, "chrono", rows[0][1])
	assert.Equal(t, "b.json", rows[len(rows)-1][0])

	// Every strategy agrees on the optimum of an instance.
	for _, r := range rows {
		assert.Equal(t, "optimal", r[2])
		if r[0] == rows[0][0] {
			assert.Equal(t, rows[0][3], r[3])
		}
	}
}

func TestSolveMatrixFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "p.json")
	_, err := execute(t, "generate", "-o", file)
	require.NoError(t, err)

	matrix := filepath.Join(dir, "matrix.yaml")
	require.NoError(t, os.WriteFile(matrix, []byte(`settings:
  - name: fast
    strong_branching: true
  - wdg_bound: true
    wdg_relaxed: true
`), 0o644))

	out, err := execute(t, "solve", file, "--matrix", matrix)
	require.NoError(t, err)
	rows := tableRows(out)
	require.Len(t, rows, 2)
	assert.Equal(t, "fast", rows[0][1])
	assert.Equal(t, "chrono+wdg-relaxed", rows[1][1])
}

func TestSolveInfeasible(t *testing.T) {
	file := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`nodes:
  - {lb: 0, ub: 10, coeff: 1, threshold: 0}
edge_sets:
  - []
`), 0o644))

	out, err := execute(t, "solve", file)
	require.NoError(t, err)
	rows := tableRows(out)
	require.Len(t, rows, 1)
	assert.Equal(t, "infeasible", rows[0][2])
	assert.Equal(t, "-", rows[0][3])
}

func TestSolveErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "solve", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = execute(t, "solve", dir)
	assert.ErrorContains(t, err, "no problem files")

	file := filepath.Join(dir, "p.json")
	_, err = execute(t, "generate", "-o", file)
	require.NoError(t, err)

	_, err = execute(t, "solve", file, "--wdg=false", "--wdg-relaxed")
	assert.ErrorIs(t, err, world.ErrInvalidSettings)

	_, err = execute(t, "solve", file, "--jobs", "0")
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"nodes": [], "edge_sets": []}`), 0o644))
	_, err = execute(t, "solve", bad)
	assert.ErrorIs(t, err, problem.ErrNoNodes)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "instances"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "instances", "tiny"), []byte("2 2\n0 3 1 2\n1 4 0 1\n"), 0o644))
	index := filepath.Join(dir, "instances.json")
	require.NoError(t, os.WriteFile(index, []byte(`[{"name": "tiny", "jobs": 2, "machines": 2, "optimum": 9, "path": "instances/tiny"}]`), 0o644))

	out := filepath.Join(dir, "out")
	_, err := execute(t, "convert", "--index", index, "--out", out)
	require.NoError(t, err)
	g, err := problem.Load(filepath.Join(out, "jsp_tiny.json"))
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 6)
	assert.Len(t, g.EdgeSets, 6)

	single := filepath.Join(dir, "single.json")
	_, err = execute(t, "convert", filepath.Join(dir, "instances", "tiny"), "-o", single)
	require.NoError(t, err)
	g2, err := problem.Load(single)
	require.NoError(t, err)
	assert.Equal(t, g, g2)

	_, err = execute(t, "convert", "-o", single)
	assert.Error(t, err)
	_, err = execute(t, "convert", filepath.Join(dir, "instances", "tiny"))
	assert.Error(t, err, "--out is required")
}

func TestGenerateFormats(t *testing.T) {
	out, err := execute(t, "generate", "--jobs", "2", "--machines", "3", "--format", "jsplib")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2 3", lines[0])

	a, err := execute(t, "generate", "--seed", "9")
	require.NoError(t, err)
	b, err := execute(t, "generate", "--seed", "9")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = execute(t, "generate", "--format", "xml")
	assert.Error(t, err)

	// A rejected format leaves no file behind.
	path := filepath.Join(t.TempDir(), "random.xml")
	_, err = execute(t, "generate", "--format", "xml", "-o", path)
	assert.Error(t, err)
	assert.NoFileExists(t, path)

	path = filepath.Join(t.TempDir(), "random.txt")
	_, err = execute(t, "generate", "--format", "jsplib", "--jobs", "2", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "2 3\n"))
	_, err = execute(t, "generate", "--jobs", "0")
	assert.Error(t, err)
}

func TestLoadMatrix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.yaml")

	require.NoError(t, os.WriteFile(path, []byte("settings:\n  - name: x\n    wdg_relaxed: true\n"), 0o644))
	_, err := loadMatrix(path)
	assert.ErrorIs(t, err, world.ErrInvalidSettings)

	require.NoError(t, os.WriteFile(path, []byte("settings: []\n"), 0o644))
	_, err = loadMatrix(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("settings:\n  - strong_branching: true\n    wdg_bound: true\n"), 0o644))
	m, err := loadMatrix(path)
	require.NoError(t, err)
	assert.Equal(t, []namedSettings{{Name: "strong+wdg", Settings: world.DefaultSettings()}}, m)
}
