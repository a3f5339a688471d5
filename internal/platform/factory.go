// Package platform wires the core service to its adapters.
package platform

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/writego/pkg/adapters/fs"
	"github.com/aretw0/writego/pkg/adapters/writefreely"
	"github.com/aretw0/writego/pkg/core"
)

// New builds a Service from the options.
//
//	svc, err := platform.New(platform.WithConfigDir(dir), platform.WithTimeout(10*time.Second))
func New(opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	store := o.store
	if store == nil {
		dir, err := ResolveConfigDir(o.configDir, o.devSafety)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config directory: %w", err)
		}
		logger.Debug("using config directory", "dir", dir)

		store = fs.NewConfigStore(fs.Config{
			Dir:      dir,
			FileName: o.configFile,
			Logger:   logger,
		})
	}

	api := o.api
	if api == nil {
		api = writefreely.New(writefreely.Config{
			HTTPClient: o.httpClient,
			Timeout:    o.timeout,
			UserAgent:  o.userAgent,
			Logger:     logger,
		})
	}

	return core.NewService(store, api, logger), nil
}

// ConfigPath returns where the credential file lives for the options,
// without touching the filesystem. It is empty when a custom store is set.
func ConfigPath(opts ...Option) (string, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.store != nil {
		if p, ok := o.store.(interface{ Path() string }); ok {
			return p.Path(), nil
		}
		return "", nil
	}

	dir, err := ResolveConfigDir(o.configDir, o.devSafety)
	if err != nil {
		return "", err
	}
	return fs.NewConfigStore(fs.Config{Dir: dir, FileName: o.configFile}).Path(), nil
}
