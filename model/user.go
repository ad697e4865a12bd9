package model

import "time"

// Role is a user's authorization level. Signing accepts any string, but the
// role-scoped middleware only recognizes this closed set.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DeniedLabel is the role's name as it appears in an access-denied response,
// article included. These strings are part of the public contract.
func (r Role) DeniedLabel() string {
	if r == RoleAdmin {
		return "an Admin"
	}
	return "a " + string(r)
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
