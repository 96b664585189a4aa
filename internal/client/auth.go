package client

import (
	"context"
	"net/http"

	"github.com/wolfeidau/devmarket/internal/models"
)

// AuthService covers signup, login and logout.
type AuthService struct {
	c *Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new account. payload is the role specific signup body.
func (s *AuthService) Signup(ctx context.Context, payload any) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := s.c.do(ctx, "auth.signup", http.MethodPost, "/signup", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := s.c.do(ctx, "auth.login", http.MethodPost, "/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout ends the session on the server.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.c.do(ctx, "auth.logout", http.MethodPost, "/logout", nil, nil)
}
