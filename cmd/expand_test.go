package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandCmd_Stdout(t *testing.T) {
	dir := writeCrate(t)

	stdout, _, err := executeSubcommand(t, newExpandCmd(), filepath.Join(dir, "..."))
	require.NoError(t, err)

	assert.Contains(t, stdout, "// file: "+filepath.Join(dir, "src", "lib.rs"))
	assert.Contains(t, stdout, "pub fn get(v: &Vec<u8>) -> &u8 {")
	assert.Contains(t, stdout, "pub fn get_mut(v: &mut Vec<u8>) -> &mut u8 {")
	assert.NotContains(t, stdout, "plain.rs")
}

func TestExpandCmd_Write(t *testing.T) {
	dir := writeCrate(t)

	_, stderr, err := executeSubcommand(t, newExpandCmd(), "--mode", "write", filepath.Join(dir, "src"))
	require.NoError(t, err)

	assert.Contains(t, stderr, "expanded 1 files (write)")

	content, err := os.ReadFile(filepath.Join(dir, "src", "lib.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "pub fn get_mut(")
	assert.NotContains(t, string(content), "#[mwt]")
}

func TestExpandCmd_OutputDir(t *testing.T) {
	dir := writeCrate(t)
	out := filepath.Join(t.TempDir(), "gen")

	_, _, err := executeSubcommand(t, newExpandCmd(), "-m", "output", "-o", out, filepath.Join(dir, "..."))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "src", "lib.rs"))
	assert.NoFileExists(t, filepath.Join(out, "src", "plain.rs"))
}

func TestExpandCmd_Diff(t *testing.T) {
	dir := writeCrate(t)
	patch := filepath.Join(t.TempDir(), "out.patch")

	_, _, err := executeSubcommand(t, newExpandCmd(), "--mode", "diff", "--diff-file", patch, filepath.Join(dir, "..."))
	require.NoError(t, err)

	content, err := os.ReadFile(patch)
	require.NoError(t, err)
	assert.Contains(t, string(content), "+pub fn get_mut(v: &mut Vec<u8>) -> &mut u8 {")
}

func TestExpandCmd_Exclude(t *testing.T) {
	dir := writeCrate(t)

	stdout, _, err := executeSubcommand(t, newExpandCmd(), "-x", `lib\.rs$`, filepath.Join(dir, "..."))
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestExpandCmd_Errors(t *testing.T) {
	dir := writeCrate(t)

	_, _, err := executeSubcommand(t, newExpandCmd(), "--mode", "print", dir)
	require.Error(t, err)

	bad := filepath.Join(dir, "src", "bad.rs")
	require.NoError(t, os.WriteFile(bad, []byte("#[mwt(nope)]\nfn f() {}\n"), 0o644))

	_, _, err = executeSubcommand(t, newExpandCmd(), "--mode", "stdout", filepath.Join(dir, "..."))
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad+":1:1:")
}
