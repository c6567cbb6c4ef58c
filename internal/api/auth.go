package api

import (
	"context"
	"net/http"

	"github.com/readerly/circulate/internal/domain"
)

// Login exchanges credentials for a bearer token and the normalized principal.
func (c *Client) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	var resp authResponse
	payload := loginRequest{Email: email, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, payload, &resp); err != nil {
		return domain.AuthResult{}, err
	}
	return domain.AuthResult{User: mapUser(resp.User), Token: resp.Token}, nil
}

// Register creates an account and logs it in.
func (c *Client) Register(ctx context.Context, name, email, password string) (domain.AuthResult, error) {
	var resp authResponse
	payload := registerRequest{Name: name, Email: email, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register", nil, payload, &resp); err != nil {
		return domain.AuthResult{}, err
	}
	return domain.AuthResult{User: mapUser(resp.User), Token: resp.Token}, nil
}

// Me fetches the authenticated principal.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var dto userDTO
	if err := c.doRequest(ctx, http.MethodGet, "/auth/me", nil, nil, &dto); err != nil {
		return domain.User{}, err
	}
	return mapUser(dto), nil
}
