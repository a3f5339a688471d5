package writego

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/writego/internal/platform"
	"github.com/aretw0/writego/pkg/core"
)

// --- Configuration ---

// Option defines a functional option for configuring writego.
type Option = platform.Option

// WithConfigDir sets the directory holding the credential file.
func WithConfigDir(dir string) Option {
	return platform.WithConfigDir(dir)
}

// WithConfigFile sets the credential file name inside the config directory.
func WithConfigFile(name string) Option {
	return platform.WithConfigFile(name)
}

// WithDevSafety keeps `go run` and `go test` away from the real credential file.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithHTTPClient sets the HTTP client used to reach the instance.
func WithHTTPClient(client *http.Client) Option {
	return platform.WithHTTPClient(client)
}

// WithTimeout bounds every request to the instance.
func WithTimeout(timeout time.Duration) Option {
	return platform.WithTimeout(timeout)
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return platform.WithUserAgent(ua)
}

// WithStore allows injecting a custom credential store.
func WithStore(store core.CredentialStore) Option {
	return platform.WithStore(store)
}

// WithAPI allows injecting a custom API implementation.
func WithAPI(api core.API) Option {
	return platform.WithAPI(api)
}

// --- Factory ---

// New creates a new writego Service.
func New(opts ...Option) (*core.Service, error) {
	base := []Option{platform.WithUserAgent(UserAgent())}
	return platform.New(append(base, opts...)...)
}

// ConfigPath returns the credential file location New would use.
func ConfigPath(opts ...Option) (string, error) {
	return platform.ConfigPath(opts...)
}

// UserAgent is the default User-Agent header, e.g. "writego/0.1.0".
func UserAgent() string {
	return "writego/" + strings.TrimSpace(Version)
}
