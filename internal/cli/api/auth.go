package api

import (
	"context"
	"errors"

	"PolicyDesk/internal/cli/model"
)

// LoginRequest — тело /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// Login authenticates against /api/login and returns the user record from the response.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*model.User, error) {
	var resp loginResponse
	if err := c.PostJSON(ctx, "/api/login", req, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, errors.New("login response carries no user")
	}
	return resp.User, nil
}

// Logout — best-effort инвалидация сессии на сервере.
func (c *Client) Logout(ctx context.Context) error {
	return c.PostJSON(ctx, "/api/logout", struct{}{}, nil)
}

// Status запрашивает флаги готовности /api/status.
func (c *Client) Status(ctx context.Context) (model.Status, error) {
	var st model.Status
	err := c.GetJSON(ctx, "/api/status", nil, &st)
	return st, err
}
