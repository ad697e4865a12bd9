package router_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edu-platform-api/app"
	"edu-platform-api/config"
	"edu-platform-api/model"

	"github.com/stretchr/testify/assert"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()

	cfg := config.Config{}
	cfg.Server.Port = "0"
	cfg.JWT = config.JWTConfig{SecretKey: "router-test-secret", ExpiresIn: time.Hour}
	cfg.Cookie = config.CookieConfig{Name: "auth_token", SigningKey: "router-test-cookie-key"}

	a, err := app.New(cfg)
	assert.NoError(t, err)
	return a
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	assert.NoError(t, err)
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, c *http.Client, url, body string) *http.Response {
	t.Helper()
	resp, err := c.Post(url, "application/json", strings.NewReader(body))
	assert.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	return string(raw)
}

// seedAdmin creates an admin account directly in the store, the way an
// operator would provision one.
func seedAdmin(t *testing.T, a *app.App, username, email, password string) {
	t.Helper()
	hashed, err := a.Auth.HashPassword(password)
	assert.NoError(t, err)
	err = a.Repo.CreateUser(&model.User{
		Username: username,
		Name:     "Admin " + username,
		Email:    email,
		Password: hashed,
		Role:     string(model.RoleAdmin),
	})
	assert.NoError(t, err)
}

func TestHealthCheck_Integration(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"service":"edu-platform-api","status":"ok"}`, bodyString(t, resp))
}

func TestAdminSession_Integration(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	seedAdmin(t, a, "alice", "alice@example.com", "password123")
	browser := newBrowser(t)

	// Login stores the signed session cookie in the jar.
	resp := postJSON(t, browser, srv.URL+"/api/v1/user/login",
		`{"email":"alice@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The same session passes the admin gate and the downstream handler sees
	// the admin principal.
	resp, err := browser.Get(srv.URL + "/api/v1/user/auth-status")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var status model.AuthResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	resp.Body.Close()
	assert.Equal(t, "alice", status.Username)
	assert.Equal(t, "admin", status.Role)

	resp, err = browser.Get(srv.URL + "/api/v1/admin/users")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var users []model.User
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	resp.Body.Close()
	assert.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
}

func TestUserCannotReachAdminRoutes_Integration(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	browser := newBrowser(t)

	resp := postJSON(t, browser, srv.URL+"/api/v1/user/signup",
		`{"username":"bob","name":"Bob B","email":"bob@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err := browser.Get(srv.URL + "/api/v1/admin/users")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.JSONEq(t, `{"code":403,"message":"Access denied. Not an Admin."}`, bodyString(t, resp))

	// The user-scoped surface still works for the same session.
	resp, err = browser.Get(srv.URL + "/api/v1/user/profile")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminCannotUseUserGate_Integration(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	seedAdmin(t, a, "alice", "alice@example.com", "password123")
	browser := newBrowser(t)

	resp := postJSON(t, browser, srv.URL+"/api/v1/user/login",
		`{"email":"alice@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := browser.Get(srv.URL + "/api/v1/user/profile")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.JSONEq(t, `{"code":403,"message":"Access denied. Not a user."}`, bodyString(t, resp))
}

func TestLogoutEndsSession_Integration(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	browser := newBrowser(t)

	resp := postJSON(t, browser, srv.URL+"/api/v1/user/signup",
		`{"username":"bob","name":"Bob B","email":"bob@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, browser, srv.URL+"/api/v1/user/logout", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// The jar dropped the expired cookie, so the next status check carries
	// no credential at all.
	resp, err := browser.Get(srv.URL + "/api/v1/user/auth-status")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotAcceptable, resp.StatusCode)
	assert.JSONEq(t, `{"code":406,"message":"Token Not Received"}`, bodyString(t, resp))
}

func TestMissingTokenStatusSplit_Integration(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	cases := []struct {
		path       string
		wantStatus int
	}{
		{"/api/v1/user/auth-status", http.StatusNotAcceptable},
		{"/api/v1/user/profile", http.StatusUnauthorized},
		{"/api/v1/admin/users", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		resp, err := http.Get(srv.URL + tc.path)
		assert.NoError(t, err)
		assert.Equal(t, tc.wantStatus, resp.StatusCode, tc.path)
		assert.JSONEq(t,
			fmt.Sprintf(`{"code":%d,"message":"Token Not Received"}`, tc.wantStatus),
			bodyString(t, resp))
	}
}

func TestAdminRoleManagement_Integration(t *testing.T) {
	a := newTestApp(t)
	srv := httptest.NewServer(a.Router)
	defer srv.Close()

	seedAdmin(t, a, "alice", "alice@example.com", "password123")
	browser := newBrowser(t)

	resp := postJSON(t, browser, srv.URL+"/api/v1/user/signup",
		`{"username":"bob","name":"Bob B","email":"bob@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.AuthResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	// Promote bob using the admin session.
	admin := newBrowser(t)
	resp = postJSON(t, admin, srv.URL+"/api/v1/user/login",
		`{"email":"alice@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	bob, err := a.Repo.GetUserByUsername("bob")
	assert.NoError(t, err)

	req, err := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/api/v1/admin/users/%d/role", srv.URL, bob.ID),
		strings.NewReader(`{"role":"admin"}`))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err = admin.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	promoted, err := a.Repo.GetUserByUsername("bob")
	assert.NoError(t, err)
	assert.Equal(t, "admin", promoted.Role)

	// Bob's old session still carries the user role; tokens are not revoked,
	// the role applies at next login.
	resp, err = browser.Get(srv.URL + "/api/v1/admin/users")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}
