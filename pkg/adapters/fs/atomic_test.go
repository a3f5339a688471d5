package fs

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Creates New File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "config.json")

		require.NoError(t, writeFileAtomic(filename, []byte(`{"instance":"a"}`), 0o600))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, `{"instance":"a"}`, string(got))
	})

	t.Run("Overwrites Existing File", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(filename, []byte("initial"), 0o644))

		require.NoError(t, writeFileAtomic(filename, []byte("overwritten"), 0o600))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "overwritten", string(got))
	})

	t.Run("Applies Permissions", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("unix permissions only")
		}
		filename := filepath.Join(t.TempDir(), "config.json")

		require.NoError(t, writeFileAtomic(filename, []byte("secret"), 0o600))

		info, err := os.Stat(filename)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, writeFileAtomic(filepath.Join(dir, "config.json"), []byte("x"), 0o600))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), TempFilePrefix), "leftover %s", e.Name())
		}
	})

	t.Run("Fails if Directory Missing", func(t *testing.T) {
		filename := filepath.Join(t.TempDir(), "missing_folder", "config.json")

		assert.Error(t, writeFileAtomic(filename, []byte("fail"), 0o600))
	})
}
