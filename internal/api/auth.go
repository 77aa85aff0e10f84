package api

import (
	"context"
	"net/http"

	"shophub-client/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an auth token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login/", nil, loginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Register creates a new account and returns its representation. It does not
// log the user in; callers follow up with Login.
func (c *Client) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	var user domain.User
	err := c.do(ctx, http.MethodPost, "/auth/register/", nil, registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Users lists users. Requires a token.
func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, "/users/", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CurrentUser returns the account bound to the current token.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/users/me/", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
