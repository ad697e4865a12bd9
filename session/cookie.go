// Package session moves the signed token between HTTP responses and requests.
// The cookie value is wrapped in an HMAC envelope so the transport layer can
// detect tampering before the token itself is ever inspected.
package session

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"edu-platform-api/config"

	"github.com/gorilla/securecookie"
)

// ErrNoSession means no usable session cookie was presented: the cookie is
// absent, empty, or its signed envelope failed to decode. A tampered envelope
// is indistinguishable from an absent one on purpose.
var ErrNoSession = errors.New("no session cookie")

// Codec signs tokens into the session cookie and reads them back.
type Codec struct {
	name string
	sc   *securecookie.SecureCookie
}

func NewCodec(cfg config.CookieConfig) (*Codec, error) {
	if strings.TrimSpace(cfg.Name) == "" {
		return nil, errors.New("session cookie requires a name")
	}
	if strings.TrimSpace(cfg.SigningKey) == "" {
		return nil, errors.New("session cookie requires a signing key")
	}

	// Sign-only: the token is already opaque, it just needs tamper evidence.
	sc := securecookie.New([]byte(cfg.SigningKey), nil)
	// The envelope proves integrity; lifetime is the token's concern. Without
	// this, securecookie's default 30-day validity would reject sessions whose
	// configured token TTL outlives it.
	sc.MaxAge(0)
	return &Codec{name: cfg.Name, sc: sc}, nil
}

// Name returns the configured cookie name.
func (c *Codec) Name() string {
	return c.name
}

// Set attaches the token as a signed HTTP-only cookie whose expiry matches
// the token's.
func (c *Codec) Set(w http.ResponseWriter, token string, ttl time.Duration) error {
	encoded, err := c.sc.Encode(c.name, token)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    encoded,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read extracts the token string from the request's session cookie.
func (c *Codec) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(c.name)
	if err != nil {
		return "", ErrNoSession
	}
	if strings.TrimSpace(cookie.Value) == "" {
		return "", ErrNoSession
	}

	var token string
	if err := c.sc.Decode(c.name, cookie.Value, &token); err != nil {
		return "", ErrNoSession
	}
	if strings.TrimSpace(token) == "" {
		return "", ErrNoSession
	}
	return token, nil
}

// Clear expires the session cookie on the client.
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
