package platform

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/writego/pkg/adapters/fs"
)

// EnvConfigDir overrides the default config directory.
const EnvConfigDir = "WRITEGO_CONFIG_DIR"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}

	tempDir := os.TempDir()
	return strings.HasPrefix(strings.ToLower(exe), strings.ToLower(tempDir))
}

// ResolveConfigDir picks the directory holding the credential file.
//
// Order: the explicit dir, then $WRITEGO_CONFIG_DIR, then the user's config
// directory. With devSafety on, a dev run that named no directory is
// re-rooted into a temporary directory so it never touches the real login.
func ResolveConfigDir(dir string, devSafety bool) (string, error) {
	if dir != "" {
		return filepath.Clean(dir), nil
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Clean(env), nil
	}
	if devSafety && IsDevRun() {
		return filepath.Join(os.TempDir(), fs.AppDirName+"-dev"), nil
	}
	return fs.DefaultDir()
}
