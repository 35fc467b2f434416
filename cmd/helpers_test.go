package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const markedSource = `use mwt::mwt;

#[mwt]
pub fn get_mwt(v: &Mwt<Vec<u8>>) -> &Mwt<u8> {
    &mwt!(v[0])
}
`

// withTestConfig keeps the log file and viper overrides inside the test.
func withTestConfig(t *testing.T) {
	t.Helper()

	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "mwt.log"))
	t.Cleanup(func() {
		viper.Set(logFilenameKey, defaultLogFilename)
		viper.Set(presetsConfigKey, []map[string]string{})
	})
}

// writeCrate creates src/lib.rs with a marked function and src/plain.rs
// without one.
func writeCrate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "lib.rs"), []byte(markedSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "plain.rs"), []byte("fn plain() {}\n"), 0o644))

	return dir
}

func executeSubcommand(t *testing.T, sub *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	withTestConfig(t)

	cmd := newRootCmd()
	cmd.AddCommand(sub)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(append([]string{sub.Name()}, args...))

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}
