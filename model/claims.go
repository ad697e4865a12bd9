package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the only claims shape this service signs or accepts.
// The wire form is {username, role, iat, exp, jti}.
type SessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
