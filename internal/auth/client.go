package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"posdesk/internal/logger"
	"posdesk/internal/transport"

	"go.uber.org/zap"
)

var ErrLoginFailed = errors.New("login failed")

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Email string `json:"email"`
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Client authenticates the register operator against the backend and
// feeds the resulting token into the session.
type Client struct {
	http    *transport.Client
	session *Session
}

func NewClient(http *transport.Client, session *Session) *Client {
	return &Client{http: http, session: session}
}

// Login exchanges operator credentials for an access token and stores it
// on the session. The role from the response is returned for display.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.L().With(zap.String("email", email))

	res, err := c.http.Do(ctx, http.MethodPost, "/login", loginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", err
	}

	if res.Status != http.StatusOK {
		log.Warn("Login rejected", zap.Int("status", res.Status))
		return "", fmt.Errorf("%w: status %d", ErrLoginFailed, res.Status)
	}

	var body loginResponse
	if err := res.Decode(&body); err != nil {
		return "", err
	}
	if body.Token == "" {
		return "", fmt.Errorf("%w: empty token", ErrLoginFailed)
	}

	c.session.SetToken(body.Token)
	log.Info("Operator logged in", zap.String("role", body.Role))

	return body.Role, nil
}

// LoggedIn reports whether the session holds an unexpired token.
func (c *Client) LoggedIn() bool {
	return !c.session.Expired()
}
