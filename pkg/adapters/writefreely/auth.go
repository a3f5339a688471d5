package writefreely

import (
	"context"
	"net/http"

	"github.com/aretw0/writego/pkg/core"
)

type loginRequest struct {
	Alias string `json:"alias"`
	Pass  string `json:"pass"`
}

type loginData struct {
	AccessToken string `json:"access_token"`
}

// Login posts the credentials to /api/auth/login and returns the token.
func (c *Client) Login(ctx context.Context, instance, alias, password string) (string, error) {
	const op = "login"

	resp, err := c.do(ctx, request{
		op:       op,
		method:   http.MethodPost,
		instance: instance,
		path:     "/api/auth/login",
		body:     loginRequest{Alias: alias, Pass: password},
	})
	if err != nil {
		return "", err
	}
	if err := expect(op, resp, http.StatusOK); err != nil {
		return "", err
	}

	var data loginData
	if err := decodeData(op, resp, &data); err != nil {
		return "", err
	}
	if data.AccessToken == "" {
		return "", &core.MalformedResponseError{Op: op, Reason: "no access token"}
	}
	return data.AccessToken, nil
}

// RevokeToken invalidates the credential's token with DELETE /api/auth/me.
// Only 204 counts as revoked.
func (c *Client) RevokeToken(ctx context.Context, cred core.Credential) error {
	const op = "logout"

	resp, err := c.do(ctx, request{
		op:       op,
		method:   http.MethodDelete,
		instance: cred.Instance,
		path:     "/api/auth/me",
		token:    cred.AccessToken,
	})
	if err != nil {
		return err
	}
	return expect(op, resp, http.StatusNoContent)
}
