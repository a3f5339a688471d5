// Package fs stores the credential as a JSON file on the local filesystem.
package fs

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/writego/pkg/core"
)

const (
	// AppDirName is the directory created under the user's config directory.
	AppDirName = "writego"
	// DefaultFileName is the credential file name.
	DefaultFileName = "config.json"

	dirPerm  os.FileMode = 0o700
	filePerm os.FileMode = 0o600
)

// Config holds the configuration for the credential store.
type Config struct {
	Dir      string // e.g. ~/.config/writego
	FileName string // defaults to config.json
	Logger   *slog.Logger
}

// DefaultDir returns the per-user directory holding the credential file.
// It honors XDG_CONFIG_HOME through os.UserConfigDir.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDirName), nil
}

// ConfigStore implements core.CredentialStore with a single JSON file.
type ConfigStore struct {
	dir    string
	path   string
	logger *slog.Logger
}

// NewConfigStore creates a store for the file described by config.
// No I/O happens until a method is called.
func NewConfigStore(config Config) *ConfigStore {
	name := config.FileName
	if name == "" {
		name = DefaultFileName
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &ConfigStore{
		dir:    config.Dir,
		path:   filepath.Join(config.Dir, name),
		logger: logger,
	}
}

// Path returns the location of the credential file.
func (s *ConfigStore) Path() string {
	return s.path
}

// Save writes the credential, replacing any existing file.
//
// Failing to create the directory is only logged: the write is still
// attempted and reports the real failure.
func (s *ConfigStore) Save(cred core.Credential) error {
	data, err := json.MarshalIndent(cred, "", "    ")
	if err != nil {
		return &core.ConfigIOError{Op: "encode", Path: s.path, Err: err}
	}

	if err := os.MkdirAll(s.dir, dirPerm); err != nil {
		s.logger.Warn("could not create config directory", "dir", s.dir, "error", err)
	}

	s.logger.Debug("writing config", "path", s.path)
	if err := writeFileAtomic(s.path, append(data, '\n'), filePerm); err != nil {
		return &core.ConfigIOError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

// Load reads the credential.
//
// A missing file, or a file without an instance or token, yields a
// *core.ConfigMissingError. An unreadable or malformed file yields a
// *core.ConfigIOError. Unknown keys are ignored.
func (s *ConfigStore) Load() (core.Credential, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return core.Credential{}, &core.ConfigMissingError{Path: s.path, Reason: "no config file"}
	}
	if err != nil {
		return core.Credential{}, &core.ConfigIOError{Op: "read", Path: s.path, Err: err}
	}

	var cred core.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		s.logger.Debug("config is not valid JSON", "path", s.path, "error", err)
		return core.Credential{}, &core.ConfigIOError{Op: "parse", Path: s.path, Err: err}
	}

	switch {
	case cred.Instance == "":
		return core.Credential{}, &core.ConfigMissingError{Path: s.path, Reason: "instance is missing"}
	case cred.AccessToken == "":
		return core.Credential{}, &core.ConfigMissingError{Path: s.path, Reason: "access_token is missing"}
	}
	return cred, nil
}

// Delete removes the credential file. A missing file is not an error.
func (s *ConfigStore) Delete() error {
	err := os.Remove(s.path)
	if err == nil {
		s.logger.Debug("removed config", "path", s.path)
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return &core.ConfigIOError{Op: "delete", Path: s.path, Err: err}
}

var _ core.CredentialStore = (*ConfigStore)(nil)
