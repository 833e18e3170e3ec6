package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = "/home/user/.config/git-site-clone/default-config.yml"

func newTestStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewStore(fs, testPath), fs
}

func TestLoadCreatesDefault(t *testing.T) {
	store, fs := newTestStore(t)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Base)
	assert.Empty(t, cfg.Mappings)
	assert.NotNil(t, cfg.Mappings)

	exists, err := afero.Exists(fs, testPath)
	require.NoError(t, err)
	assert.True(t, exists, "default configuration should be persisted on first use")
}

func TestLoadExistingFile(t *testing.T) {
	store, fs := newTestStore(t)
	content := "base: /src\nmappings:\n  github.com: /gh\n  gitlab.example.com: /work/gitlab\n"
	require.NoError(t, afero.WriteFile(fs, testPath, []byte(content), 0o644))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "/src", cfg.Base)
	assert.Equal(t, map[string]string{
		"github.com":         "/gh",
		"gitlab.example.com": "/work/gitlab",
	}, cfg.Mappings)
}

func TestLoadWithoutMappings(t *testing.T) {
	store, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, testPath, []byte("base: /src\n"), 0o644))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "/src", cfg.Base)
	assert.NotNil(t, cfg.Mappings)
	assert.Empty(t, cfg.Mappings)
}

func TestLoadCorrupt(t *testing.T) {
	store, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, testPath, []byte("base: [unterminated\nmappings: 12"), 0o644))

	cfg, err := store.Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, ErrCorrupt))

	var corrupt *CorruptError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, testPath, corrupt.Path)
}

func TestLoadWrongShape(t *testing.T) {
	store, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, testPath, []byte("mappings:\n  - github.com\n"), 0o644))

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	cfg := &Config{
		Base: "/src",
		Mappings: map[string]string{
			"github.com":    "/gh",
			"codeberg.org":  "/cb",
			"git.corp.test": "/work",
		},
	}
	require.NoError(t, store.Save(cfg))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	require.NoError(t, store.Save(loaded))
	reloaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestSaveOverwrites(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Save(&Config{Base: "/old", Mappings: map[string]string{"a.test": "/a"}}))
	require.NoError(t, store.Save(&Config{Base: "/new", Mappings: map[string]string{}}))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "/new", cfg.Base)
	assert.Empty(t, cfg.Mappings)
}

func TestSaveReadOnlyFs(t *testing.T) {
	store := NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), testPath)

	err := store.Save(NewConfig())
	assert.Error(t, err)

	_, err = store.Load()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCorrupt)
}

func TestMappingAddRemoveRestoresTable(t *testing.T) {
	cfg := &Config{Mappings: map[string]string{"github.com": "/gh"}}
	before := map[string]string{"github.com": "/gh"}

	cfg.AddMapping("gitlab.com", "/gl")
	path, ok := cfg.Mapping("gitlab.com")
	assert.True(t, ok)
	assert.Equal(t, "/gl", path)

	cfg.RemoveMapping("gitlab.com")
	assert.Equal(t, before, cfg.Mappings)
}

func TestAddMappingOverwrites(t *testing.T) {
	cfg := &Config{}
	cfg.AddMapping("github.com", "/gh")
	cfg.AddMapping("github.com", "/other")
	assert.Equal(t, map[string]string{"github.com": "/other"}, cfg.Mappings)
}

func TestRemoveMissingMapping(t *testing.T) {
	cfg := &Config{Mappings: map[string]string{"github.com": "/gh"}}
	cfg.RemoveMapping("gitlab.com")
	assert.Equal(t, map[string]string{"github.com": "/gh"}, cfg.Mappings)

	empty := &Config{}
	empty.RemoveMapping("gitlab.com")
	assert.Empty(t, empty.Mappings)
}

func TestRaw(t *testing.T) {
	store, fs := newTestStore(t)

	data, err := store.Raw()
	require.NoError(t, err)
	assert.Contains(t, string(data), "base:")

	content := "# hand edited\nbase: /src\nmappings: {}\n"
	require.NoError(t, afero.WriteFile(fs, testPath, []byte(content), 0o644))
	data, err = store.Raw()
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestRawDoesNotDecode(t *testing.T) {
	store, fs := newTestStore(t)
	require.NoError(t, afero.WriteFile(fs, testPath, []byte("base: [\n"), 0o644))

	data, err := store.Raw()
	require.NoError(t, err)
	assert.Equal(t, "base: [\n", string(data))
}

func TestExpandPath(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	expanded, err := ExpandPath("~/src")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "src"), expanded)

	expanded, err = ExpandPath("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", expanded)

	_, err = ExpandPath("~someone/src")
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, configFileName, filepath.Base(path))
	assert.Equal(t, AppName, filepath.Base(filepath.Dir(path)))
}

func TestNewDefaultStore(t *testing.T) {
	store, err := NewDefaultStore()
	require.NoError(t, err)
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
}
