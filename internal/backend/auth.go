package backend

import (
	"context"
	"net/http"
)

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// Session is what every successful auth call hands back: the bearer
// token plus the user it belongs to.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

type googleLoginRequest struct {
	Credential string `json:"credential"`
}

func (c *Client) LoginWithGoogle(ctx context.Context, credential string) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/google", googleLoginRequest{Credential: credential}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Me validates the client's token. ErrUnauthorized means the token is
// stale and the session should be dropped.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
