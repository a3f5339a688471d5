package writefreely

import (
	"github.com/aretw0/introspection"
)

// ClientState exposes internal state for observability.
type ClientState struct {
	Timeout    string `json:"timeout"`
	UserAgent  string `json:"user_agent"`
	Requests   int    `json:"requests"`
	LastStatus int    `json:"last_status,omitempty"`
}

// State implements introspection.Introspectable.
func (c *Client) State() any {
	return ClientState{
		Timeout:    c.http.Timeout.String(),
		UserAgent:  c.userAgent,
		Requests:   c.requests,
		LastStatus: c.lastStatus,
	}
}

// ComponentType implements introspection.Component.
func (c *Client) ComponentType() string {
	return "writefreely-api"
}

var _ introspection.Introspectable = (*Client)(nil)
var _ introspection.Component = (*Client)(nil)
