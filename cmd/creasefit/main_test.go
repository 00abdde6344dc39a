package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/creasefit/internal/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFoldCommand_HalvesTheSquare(t *testing.T) {
	out, err := execute(t, "fold", "--line", "0,1/2 1,1/2")
	require.NoError(t, err)

	sol, err := model.ReadSolution(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.NoError(t, sol.Validate())
	assert.Len(t, sol.Facets, 2)
}

func TestCheckCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.txt")
	require.NoError(t, os.WriteFile(path, []byte("4\n0,0\n1,0\n1,1\n0,1\n1\n4 0 1 2 3\n0,0\n1,0\n1,1\n0,1\n"), 0644))

	out, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid")
}

func TestCheckCommand_RejectsPartialCover(t *testing.T) {
	path := filepath.Join(t.TempDir(), "half.txt")
	require.NoError(t, os.WriteFile(path, []byte("4\n0,0\n1,0\n1,1/2\n0,1/2\n1\n4 0 1 2 3\n0,0\n1,0\n1,1/2\n0,1/2\n"), 0644))

	_, err := execute(t, "check", path)
	assert.Error(t, err)
}

func TestParsePoints(t *testing.T) {
	pts, err := parsePoints([]string{"1/2,0", "1,-3/4"})
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.Equal(t, "1,-3/4", pts[1].String())

	_, err = parsePoints([]string{"nope"})
	assert.Error(t, err)
}

func TestScoreCommand(t *testing.T) {
	dir := t.TempDir()
	sol := filepath.Join(dir, "half.txt")
	_, err := execute(t, "fold", "--line", "0,1/2 1,1/2", "-o", sol)
	require.NoError(t, err)

	out := filepath.Join(dir, "half.nc")
	_, err = execute(t, "score", "--size", "100", "-o", out, sol)
	require.NoError(t, err)

	code, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(code), "Y50.000")
}
