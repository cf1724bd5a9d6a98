package api

import (
	"context"
	"net/http"

	"heladeria-storefront/internal/domain"
)

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", creds, &out, nil); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Register creates a customer account. The backend logs nobody in here; the
// caller is expected to follow up with Login.
func (c *Client) Register(ctx context.Context, in domain.RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/auth/register-cliente", "", in, nil, nil)
}
