package model

// SignupRequest defines the payload for creating a new account.
// Validation tags enforce data integrity at the entry point.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest defines the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserRoleRequest defines the payload for changing a user's role.
// Only the recognized roles can be assigned.
type UpdateUserRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=admin user"`
}

// AuthResponse is returned by signup, login and auth-status.
type AuthResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
}
