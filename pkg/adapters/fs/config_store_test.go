package fs_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/writego/pkg/adapters/fs"
	"github.com/aretw0/writego/pkg/core"
)

// setupStore creates a store rooted in a fresh temp directory.
// The directory itself is not created, as on a first login.
func setupStore(t *testing.T) (*fs.ConfigStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "writego")
	return fs.NewConfigStore(fs.Config{Dir: dir}), dir
}

func TestConfigStore_RoundTrip(t *testing.T) {
	creds := []core.Credential{
		{Instance: "write.as", AccessToken: "00000000-0000-0000-0000-000000000000"},
		{Instance: "blog.example.com:8443", AccessToken: "tök€n with spaces"},
	}

	for _, cred := range creds {
		store, dir := setupStore(t)

		require.NoError(t, store.Save(cred))
		assert.Equal(t, filepath.Join(dir, fs.DefaultFileName), store.Path())

		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, cred, got)
	}
}

func TestConfigStore_SaveFormat(t *testing.T) {
	store, _ := setupStore(t)
	require.NoError(t, store.Save(core.Credential{Instance: "write.as", AccessToken: "abc"}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"instance":"write.as","access_token":"abc"}`, string(data))
	assert.Contains(t, string(data), "\n    \"instance\"")

	if runtime.GOOS != "windows" {
		info, err := os.Stat(store.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestConfigStore_SaveOverwrites(t *testing.T) {
	store, _ := setupStore(t)
	require.NoError(t, store.Save(core.Credential{Instance: "old.example", AccessToken: "old"}))
	require.NoError(t, store.Save(core.Credential{Instance: "new.example", AccessToken: "new"}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "new.example", got.Instance)
}

func TestConfigStore_SaveUnwritable(t *testing.T) {
	// A regular file where the directory should be: MkdirAll fails (logged),
	// and the write then fails too.
	base := t.TempDir()
	blocker := filepath.Join(base, "writego")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	store := fs.NewConfigStore(fs.Config{Dir: blocker})
	err := store.Save(core.Credential{Instance: "write.as", AccessToken: "abc"})

	var ioErr *core.ConfigIOError
	require.True(t, errors.As(err, &ioErr), "got %v", err)
	assert.Equal(t, "write", ioErr.Op)
}

func TestConfigStore_Load(t *testing.T) {
	t.Run("Missing File", func(t *testing.T) {
		store, _ := setupStore(t)

		_, err := store.Load()
		var missing *core.ConfigMissingError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "no config file", missing.Reason)
	})

	t.Run("Missing Token Differs From Missing File", func(t *testing.T) {
		store, dir := setupStore(t)
		require.NoError(t, os.MkdirAll(dir, 0o700))
		require.NoError(t, os.WriteFile(store.Path(), []byte(`{"instance":"write.as"}`), 0o600))

		_, err := store.Load()
		var missing *core.ConfigMissingError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "access_token is missing", missing.Reason)
	})

	t.Run("Empty Instance", func(t *testing.T) {
		store, dir := setupStore(t)
		require.NoError(t, os.MkdirAll(dir, 0o700))
		require.NoError(t, os.WriteFile(store.Path(), []byte(`{"instance":"","access_token":"abc"}`), 0o600))

		_, err := store.Load()
		assert.True(t, core.IsConfigMissing(err))
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		store, dir := setupStore(t)
		require.NoError(t, os.MkdirAll(dir, 0o700))
		require.NoError(t, os.WriteFile(store.Path(), []byte(`{"instance":`), 0o600))

		_, err := store.Load()
		var ioErr *core.ConfigIOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, "parse", ioErr.Op)
		assert.False(t, core.IsConfigMissing(err))
	})

	t.Run("Unknown Keys Ignored", func(t *testing.T) {
		store, dir := setupStore(t)
		require.NoError(t, os.MkdirAll(dir, 0o700))
		raw, _ := json.Marshal(map[string]any{
			"instance":     "write.as",
			"access_token": "abc",
			"theme":        "dark",
		})
		require.NoError(t, os.WriteFile(store.Path(), raw, 0o600))

		got, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, core.Credential{Instance: "write.as", AccessToken: "abc"}, got)
	})
}

func TestConfigStore_Delete(t *testing.T) {
	store, _ := setupStore(t)

	// Absent file is fine.
	assert.NoError(t, store.Delete())

	require.NoError(t, store.Save(core.Credential{Instance: "write.as", AccessToken: "abc"}))
	require.NoError(t, store.Delete())

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))

	_, err = store.Load()
	assert.True(t, core.IsConfigMissing(err))
}

func TestConfigStore_State(t *testing.T) {
	store, _ := setupStore(t)

	state := store.State().(fs.StoreState)
	assert.False(t, state.Exists)

	require.NoError(t, store.Save(core.Credential{Instance: "write.as", AccessToken: "abc"}))
	state = store.State().(fs.StoreState)
	assert.True(t, state.Exists)
	assert.NotNil(t, state.Modified)
	assert.Equal(t, "config-store", store.ComponentType())
}
