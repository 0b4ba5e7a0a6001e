package apiclient

import (
	"context"

	"github.com/damrufest/judgeboard/comp"
)

// WhoAmI resolves the current session. An anonymous session is reported
// as an error (HTTP 401), which callers usually treat as "not logged in"
// rather than a failure.
func (c *Client) WhoAmI(ctx context.Context) (*comp.User, error) {
	var data struct {
		User comp.User `json:"user"`
	}
	if err := c.getJson(ctx, "/auth/me", &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// Login authenticates with email and password. On success the session
// cookie lands in the client's jar; every later call carries it.
func (c *Client) Login(ctx context.Context, email, password string) (*comp.User, error) {
	body := map[string]string{"email": email, "password": password}
	var data struct {
		User comp.User `json:"user"`
	}
	if err := c.postJson(ctx, "/auth/login", body, &data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// Logout tells the server to drop the session. Callers treat failures as
// best-effort; local state is cleared regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJson(ctx, "/auth/logout", struct{}{}, nil)
}
