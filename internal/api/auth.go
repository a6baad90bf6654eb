package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"otakufest/internal/models"
)

// LoginRequest is the credential payload for the backend login endpoint
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for account creation. Registration
// returns no session; the caller must log in afterward.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Login exchanges credentials for a backend token and user profile.
// A backend 401 maps to models.ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, username, password string) (*models.Session, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login/", "", LoginRequest{
		Username: username,
		Password: password,
	}, nil)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if session.Token == "" {
		return nil, fmt.Errorf("login response carries no token")
	}
	return &session, nil
}

// Register creates a new account on the backend
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/register/", "", req, nil)
	return err
}

// Logout invalidates the backend token. The caller clears the local
// session regardless of the outcome.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout/", token, nil, nil)
	return err
}
