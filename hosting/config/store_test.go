package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/powergit/hosting/config"
)

func newStore(tb testing.TB) (*config.Store, config.Paths) {
	tb.Helper()

	paths, err := config.ResolvePaths(
		filepath.Join(tb.TempDir(), "power_git"),
	)
	require.NoError(tb, err)

	return config.NewStore(paths), paths
}

func TestResolvePaths_override(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	paths, err := config.ResolvePaths(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, paths.Dir)
	assert.Equal(t, filepath.Join(dir, "config.json"), paths.File)
}

func TestResolvePaths_home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	paths, err := config.ResolvePaths("")

	require.NoError(t, err)
	assert.Equal(
		t,
		filepath.Join(home, ".config", "power_git"),
		paths.Dir,
	)
	assert.Equal(
		t,
		filepath.Join(home, ".config", "power_git", "config.json"),
		paths.File,
	)
}

func TestStore_Load_not_found(t *testing.T) {
	t.Parallel()

	st, _ := newStore(t)

	doc, err := st.Load()

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestStore_Load_corrupt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "not json"},
		{name: "null document", content: "null"},
		{name: "unknown platform", content: `[{"name":"foo"}]`},
		{
			name: "unknown platform among known",
			content: `[{"name":"github","cfg":{}},` +
				`{"name":"svn","cfg":{}}]`,
		},
		{name: "empty file", content: ""},
		{name: "object instead of array", content: `{"name":"github"}`},
		{name: "wrong field type", content: `[{"name":"github","cfg":{"url":1}}]`},
		{
			name: "duplicate names",
			content: `[{"name":"github","cfg":{}},` +
				`{"name":"github","cfg":{}}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st, paths := newStore(t)

			require.NoError(t, os.MkdirAll(paths.Dir, 0o700))
			require.NoError(t, os.WriteFile(
				paths.File, []byte(tt.content), 0o600,
			))

			doc, err := st.Load()

			assert.Nil(t, doc)
			assert.ErrorIs(t, err, config.ErrCorrupt)
			assert.ErrorContains(t, err, paths.File)
		})
	}
}

func TestStore_Load_reads_persisted_shape(t *testing.T) {
	t.Parallel()

	st, paths := newStore(t)

	raw := `[
  {"name": "github", "cfg": {"url": "https://api.github.com", "token": "t1", "default": true}},
  {"name": "gitlab", "cfg": {"url": "", "token": "", "default": false}}
]`

	require.NoError(t, os.MkdirAll(paths.Dir, 0o700))
	require.NoError(t, os.WriteFile(paths.File, []byte(raw), 0o600))

	doc, err := st.Load()

	require.NoError(t, err)
	assert.Equal(t, config.Document{
		{
			Name: "github",
			Cfg: config.Settings{
				URL:     "https://api.github.com",
				Token:   "t1",
				Default: true,
			},
		},
		{Name: "gitlab"},
	}, doc)
}

func TestStore_EnsureInitialized_creates_default(t *testing.T) {
	t.Parallel()

	st, paths := newStore(t)

	created, err := st.EnsureInitialized()

	require.NoError(t, err)
	assert.True(t, created)

	info, err := os.Stat(paths.File)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	doc, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultDocument(), doc)
	assert.Equal(
		t,
		[]string{"github", "gitlab", "bitbucket"},
		doc.Names(),
	)

	for _, r := range doc {
		assert.Empty(t, r.Cfg.URL)
		assert.Empty(t, r.Cfg.Token)
		assert.False(t, r.Cfg.Default)
	}
}

func TestStore_EnsureInitialized_idempotent(t *testing.T) {
	t.Parallel()

	st, paths := newStore(t)

	_, err := st.EnsureInitialized()
	require.NoError(t, err)

	first, err := os.ReadFile(paths.File)
	require.NoError(t, err)

	created, err := st.EnsureInitialized()
	require.NoError(t, err)
	assert.False(t, created)

	second, err := os.ReadFile(paths.File)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStore_EnsureInitialized_keeps_existing(t *testing.T) {
	t.Parallel()

	st, _ := newStore(t)

	_, err := st.EnsureInitialized()
	require.NoError(t, err)

	doc := config.DefaultDocument()
	doc[0].Cfg.Token = "keep-me"
	require.NoError(t, st.ReplaceAll(doc))

	created, err := st.EnsureInitialized()
	require.NoError(t, err)
	assert.False(t, created)

	got, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, "keep-me", got[0].Cfg.Token)
}

func TestStore_ReplaceAll_round_trip(t *testing.T) {
	t.Parallel()

	docs := map[string]config.Document{
		"default": config.DefaultDocument(),
		"all set": {
			{Name: "github", Cfg: config.Settings{URL: "https://ghe.example.com", Token: "gh", Default: true}},
			{Name: "gitlab", Cfg: config.Settings{URL: "https://gitlab.example.com", Token: "gl"}},
			{Name: "bitbucket", Cfg: config.Settings{URL: "https://api.bitbucket.org/2.0/repositories/ws", Token: "bb"}},
		},
		"mixed empty": {
			{Name: "github", Cfg: config.Settings{Token: "only-token"}},
			{Name: "gitlab", Cfg: config.Settings{URL: "https://gitlab.com"}},
			{Name: "bitbucket", Cfg: config.Settings{Default: true}},
		},
		"special characters": {
			{Name: "github", Cfg: config.Settings{Token: `quo"te\back<>&`}},
			{Name: "gitlab", Cfg: config.Settings{URL: "https://例え.jp/グループ"}},
			{Name: "bitbucket"},
		},
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			st, paths := newStore(t)
			require.NoError(t, os.MkdirAll(paths.Dir, 0o700))

			require.NoError(t, st.ReplaceAll(doc))

			got, err := st.Load()
			require.NoError(t, err)
			assert.Equal(t, doc, got)
		})
	}
}

func TestStore_ReplaceAll_leaves_no_temp_files(t *testing.T) {
	t.Parallel()

	st, paths := newStore(t)

	_, err := st.EnsureInitialized()
	require.NoError(t, err)

	for range 3 {
		require.NoError(t, st.ReplaceAll(config.DefaultDocument()))
	}

	entries, err := os.ReadDir(paths.Dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.json", entries[0].Name())
}

func TestStore_ReplaceAll_rejects_duplicates(t *testing.T) {
	t.Parallel()

	st, paths := newStore(t)

	_, err := st.EnsureInitialized()
	require.NoError(t, err)

	before, err := os.ReadFile(paths.File)
	require.NoError(t, err)

	err = st.ReplaceAll(config.Document{
		{Name: "gitlab"}, {Name: "gitlab"},
	})
	assert.ErrorIs(t, err, config.ErrCorrupt)

	after, err := os.ReadFile(paths.File)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestStore_ReplaceAll_missing_dir(t *testing.T) {
	t.Parallel()

	st, paths := newStore(t)

	err := st.ReplaceAll(config.DefaultDocument())

	assert.ErrorIs(t, err, config.ErrIO)
	assert.ErrorContains(t, err, paths.File)
}

func TestStore_Path(t *testing.T) {
	t.Parallel()

	st, paths := newStore(t)

	assert.Equal(t, paths.File, st.Path())
}

func TestStore_Load_empty_array(t *testing.T) {
	t.Parallel()

	st, paths := newStore(t)

	require.NoError(t, os.MkdirAll(paths.Dir, 0o700))
	require.NoError(t, os.WriteFile(paths.File, []byte("[]"), 0o600))

	doc, err := st.Load()

	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestStore_ReplaceAll_rejects_unknown_platform(t *testing.T) {
	t.Parallel()

	st, paths := newStore(t)
	require.NoError(t, os.MkdirAll(paths.Dir, 0o700))

	err := st.ReplaceAll(config.Document{{Name: "foo"}})

	assert.ErrorIs(t, err, config.ErrCorrupt)
	assert.NoFileExists(t, paths.File)
}

func TestStore_ReplaceAll_overwrites_existing(t *testing.T) {
	t.Parallel()

	st, _ := newStore(t)

	_, err := st.EnsureInitialized()
	require.NoError(t, err)

	want := config.Document{
		{Name: "gitlab", Cfg: config.Settings{Token: "t"}},
	}
	require.NoError(t, st.ReplaceAll(want))

	got, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSyncDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	require.NoError(t, config.SyncDirForTest(dir))

	err := config.SyncDirForTest(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, config.ErrIO)
}
