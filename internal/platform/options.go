package platform

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/writego/pkg/core"
)

// options holds the internal configuration for the writego service.
type options struct {
	configDir  string
	configFile string
	devSafety  bool
	logger     *slog.Logger
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	store      core.CredentialStore
	api        core.API
}

// Option defines a functional option for configuring the service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		devSafety: true,
	}
}

// WithConfigDir sets the directory holding the credential file.
// Defaults to $WRITEGO_CONFIG_DIR, then the user's config directory.
func WithConfigDir(dir string) Option {
	return func(o *options) {
		o.configDir = dir
	}
}

// WithConfigFile sets the credential file name. Defaults to config.json.
func WithConfigFile(name string) Option {
	return func(o *options) {
		o.configFile = name
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or
// `go test` without an explicit config directory.
// By default (true), credentials go to a temporary directory so a dev run
// never overwrites the real login.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.devSafety = enabled
	}
}

// WithLogger sets the logger for the service and its adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHTTPClient sets the HTTP client used to reach the instance.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTimeout bounds every request. Zero means the default (30s).
// It is ignored when the HTTP client set with WithHTTPClient has its own timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header sent to the instance.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithStore allows injecting a custom credential store (e.g. in-memory).
// If provided, the JSON file store is skipped.
func WithStore(store core.CredentialStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAPI allows injecting a custom API implementation.
// If provided, the WriteFreely HTTP client is skipped.
func WithAPI(api core.API) Option {
	return func(o *options) {
		o.api = api
	}
}
