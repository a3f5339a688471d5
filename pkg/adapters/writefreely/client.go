// Package writefreely implements core.API over the WriteFreely REST API.
//
// Every call is a single HTTPS request with no retry. Failures are mapped to
// the core error taxonomy: no response at all is a *core.TransportError, an
// unexpected status is a *core.APIRejection, and an expected status missing
// an expected field is a *core.MalformedResponseError.
package writefreely

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/writego/pkg/core"
)

const (
	// DefaultTimeout bounds every request when the HTTP client has none.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent when Config.UserAgent is empty.
	DefaultUserAgent = "writego"

	maxResponseBytes = 4 << 20
)

// Config holds the configuration for the API client.
type Config struct {
	HTTPClient *http.Client  // nil means a fresh client
	Timeout    time.Duration // applied only if HTTPClient has no timeout
	UserAgent  string
	Logger     *slog.Logger
}

// Client talks to any WriteFreely instance; the instance is given per call.
type Client struct {
	http      *http.Client
	userAgent string
	logger    *slog.Logger

	requests   int
	lastStatus int
}

// New creates a new API client.
func New(config Config) *Client {
	hc := config.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	if hc.Timeout == 0 {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		withTimeout := *hc
		withTimeout.Timeout = timeout
		hc = &withTimeout
	}

	ua := config.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{http: hc, userAgent: ua, logger: logger}
}

// envelope is the wrapper WriteFreely puts around every JSON response.
type envelope struct {
	Code     int             `json:"code"`
	ErrorMsg string          `json:"error_msg"`
	Data     json.RawMessage `json:"data"`
}

type request struct {
	op       string
	method   string
	instance string
	path     string
	token    string
	body     any
}

type response struct {
	status int
	body   []byte
}

func (c *Client) do(ctx context.Context, r request) (*response, error) {
	url := "https://" + r.instance + r.path

	var payload io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", r.op, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, url, payload)
	if err != nil {
		return nil, &core.TransportError{Op: r.op, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if r.token != "" {
		req.Header.Set("Authorization", "Token "+r.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.requests++
	if err != nil {
		c.logger.Debug("request failed", "op", r.op, "method", r.method, "url", url, "error", err)
		return nil, &core.TransportError{Op: r.op, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &core.TransportError{Op: r.op, URL: url, Err: err}
	}

	c.lastStatus = resp.StatusCode
	c.logger.Debug("request done",
		"op", r.op, "method", r.method, "url", url,
		"status", resp.StatusCode, "duration", time.Since(start))

	return &response{status: resp.StatusCode, body: body}, nil
}

// expect turns any status other than want into a rejection, carrying the
// instance's error message when the body has one.
func expect(op string, resp *response, want int) error {
	if resp.status == want {
		return nil
	}

	rej := &core.APIRejection{Op: op, Status: resp.status}
	var env envelope
	if json.Unmarshal(resp.body, &env) == nil {
		rej.Message = env.ErrorMsg
	}
	return rej
}

// decodeData unmarshals the data member of the envelope into v.
func decodeData(op string, resp *response, v any) error {
	var env envelope
	if err := json.Unmarshal(resp.body, &env); err != nil {
		return &core.MalformedResponseError{Op: op, Reason: "body is not JSON"}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &core.MalformedResponseError{Op: op, Reason: "no data"}
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return &core.MalformedResponseError{Op: op, Reason: fmt.Sprintf("unexpected data: %v", err)}
	}
	return nil
}

var _ core.API = (*Client)(nil)
