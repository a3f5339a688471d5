package platform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/writego/internal/platform"
	"github.com/aretw0/writego/pkg/adapters/fs"
)

func TestResolveConfigDir(t *testing.T) {
	realDir, err := fs.DefaultDir()
	require.NoError(t, err)

	tests := []struct {
		name      string
		dir       string
		env       string
		devSafety bool
		expected  string
	}{
		{
			name:     "Explicit Dir Wins Over Env",
			dir:      "/explicit/",
			env:      "/from/env",
			expected: filepath.Clean("/explicit/"),
		},
		{
			name:     "Env Overrides Default",
			env:      "/from/env",
			expected: filepath.Clean("/from/env"),
		},
		{
			name:      "Env Wins Over Dev Sandbox",
			env:       "/from/env",
			devSafety: true,
			expected:  filepath.Clean("/from/env"),
		},
		{
			name:      "Dev Run Is Sandboxed",
			devSafety: true,
			expected:  filepath.Join(os.TempDir(), "writego-dev"),
		},
		{
			name:     "Without Safety Uses User Config Dir",
			expected: realDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(platform.EnvConfigDir, tt.env)

			got, err := platform.ResolveConfigDir(tt.dir, tt.devSafety)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsDevRun(t *testing.T) {
	// Test binaries end in .test or live in the build cache under the temp dir.
	assert.True(t, platform.IsDevRun())
}
