package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	missing := fmt.Errorf("load: %w", &ConfigMissingError{Path: "/cfg/config.json", Reason: "no config file"})
	assert.True(t, IsConfigMissing(missing))
	assert.True(t, errors.Is(missing, ErrConfigMissing))

	ioErr := &ConfigIOError{Op: "read", Path: "/cfg/config.json", Err: errors.New("bad json")}
	assert.False(t, IsConfigMissing(ioErr))

	transport := fmt.Errorf("wrapped: %w", &TransportError{Op: "list posts", URL: "https://x/api", Err: errors.New("timeout")})
	assert.True(t, IsTransport(transport))
	_, rejected := IsRejection(transport)
	assert.False(t, rejected)

	rejection := fmt.Errorf("wrapped: %w", &APIRejection{Op: "delete post", Status: 404, Message: "Post not found."})
	status, ok := IsRejection(rejection)
	assert.True(t, ok)
	assert.Equal(t, 404, status)
	assert.False(t, IsTransport(rejection))
	assert.Contains(t, rejection.Error(), "Post not found.")
}
