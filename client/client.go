// Package client is the Go counterpart of the platform front end's auth
// layer: a communications client that talks to the auth API over a cookie
// jar, and a session container mirroring server-side login state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"edu-platform-api/model"
)

// User is the client-side view of the authenticated principal.
type User struct {
	Username string
	Name     string
	Role     string
}

// Client performs the auth API round-trips. The cookie jar carries the signed
// session cookie between calls, like a browser would.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Login authenticates with email and password; the session cookie lands in
// the jar on success.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	return c.authCall(ctx, http.MethodPost, "/api/v1/user/login", body, http.StatusOK)
}

// Signup registers a new account and starts a session in one round-trip.
func (c *Client) Signup(ctx context.Context, username, name, email, password string) (*User, error) {
	body := map[string]string{
		"username": username,
		"name":     name,
		"email":    email,
		"password": password,
	}
	return c.authCall(ctx, http.MethodPost, "/api/v1/user/signup", body, http.StatusCreated)
}

// AuthStatus round-trips the session cookie through server-side verification.
func (c *Client) AuthStatus(ctx context.Context) (*User, error) {
	return c.authCall(ctx, http.MethodGet, "/api/v1/user/auth-status", nil, http.StatusOK)
}

// Logout ends the session; the server expires the cookie.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.authCall(ctx, http.MethodPost, "/api/v1/user/logout", nil, http.StatusOK)
	return err
}

func (c *Client) authCall(ctx context.Context, method, path string, body interface{}, wantStatus int) (*User, error) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var appErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&appErr)
		if appErr.Message != "" {
			return nil, fmt.Errorf("%s %s: %s (status %d)", method, path, appErr.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	var out model.AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &User{
		Username: out.Username,
		Name:     out.Name,
		Role:     out.Role,
	}, nil
}
