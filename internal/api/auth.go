package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/balkashynov/taskbit/internal/models"
)

// AuthResponse is returned by every /api/auth endpoint
type AuthResponse struct {
	Message string    `json:"message,omitempty"`
	UserID  models.ID `json:"userId,omitempty"`
	Token   string    `json:"token,omitempty"`
}

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token. A 401 here is a credential failure
// and does not touch the session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   map[string]string{"email": strings.TrimSpace(email), "password": password},
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login response did not include a token")
	}
	return &resp, nil
}

func (c *Client) Register(ctx context.Context, in RegisterRequest) (*AuthResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	var resp AuthResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/auth/register", body: in, out: &resp}); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword asks the backend to email a reset link and returns its message
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp AuthResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/forgot-password",
		body:   map[string]string{"email": strings.TrimSpace(email)},
		out:    &resp,
	})
	return resp.Message, err
}

// ResetPassword sets a new password using the emailed token
func (c *Client) ResetPassword(ctx context.Context, token, password string) (string, error) {
	var resp AuthResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/reset-password",
		body:   map[string]string{"token": strings.TrimSpace(token), "password": password},
		out:    &resp,
	})
	return resp.Message, err
}

// Ping checks that the backend is up and returns its greeting
func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/ping", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", decodeError(resp)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return strings.TrimSpace(string(body)), nil
}
