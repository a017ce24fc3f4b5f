package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/byte4ever/powergit/hosting/commands"
	"github.com/byte4ever/powergit/hosting/config"
)

// testEnv is a commands.Env backed by a fresh config
// directory and in-memory writers.
type testEnv struct {
	commands.Env

	paths config.Paths
	out   *bytes.Buffer
	err   *bytes.Buffer
}

func newTestEnv(tb testing.TB) *testEnv {
	tb.Helper()

	paths, err := config.ResolvePaths(
		filepath.Join(tb.TempDir(), "power_git"),
	)
	require.NoError(tb, err)

	te := &testEnv{
		paths: paths,
		out:   &bytes.Buffer{},
		err:   &bytes.Buffer{},
	}

	te.Env = commands.Env{
		Store: config.NewStore(paths),
		Out:   te.out,
		Err:   te.err,
	}

	return te
}

// seed writes doc as the current config.
func (te *testEnv) seed(tb testing.TB, doc config.Document) {
	tb.Helper()

	require.NoError(tb, os.MkdirAll(te.paths.Dir, 0o700))
	require.NoError(tb, te.Store.ReplaceAll(doc))
}

// raw returns the config file bytes.
func (te *testEnv) raw(tb testing.TB) []byte {
	tb.Helper()

	by, err := os.ReadFile(te.paths.File)
	require.NoError(tb, err)

	return by
}

func (te *testEnv) load(tb testing.TB) config.Document {
	tb.Helper()

	doc, err := te.Store.Load()
	require.NoError(tb, err)

	return doc
}

func (te *testEnv) exists() bool {
	_, err := os.Stat(te.paths.File)

	return err == nil
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
