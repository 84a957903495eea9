package api

import (
	"context"
	"net/http"
)

// LoginResponse is the backend's answer to a credential check. Only the
// token matters to the client; identity claims are decoded from it.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a session token. The caller decides
// whether the decoded role is allowed in; the backend enforces real
// authorization on every later request regardless.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/user/login", body, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
