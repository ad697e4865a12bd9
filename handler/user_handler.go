package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"edu-platform-api/common"
	"edu-platform-api/logger"
	"edu-platform-api/model"
	"edu-platform-api/repository"
	"edu-platform-api/service"
	"edu-platform-api/session"

	"github.com/sirupsen/logrus"
)

// UserHandler owns the account endpoints: signup, login, logout, auth-status
// and the admin user management surface.
type UserHandler struct {
	userService *service.UserService
	auth        *service.AuthService
	cookie      *session.Codec
}

func NewUserHandler(userService *service.UserService, auth *service.AuthService, cookie *session.Codec) *UserHandler {
	return &UserHandler{
		userService: userService,
		auth:        auth,
		cookie:      cookie,
	}
}

// issueSession mints a token for the user and attaches it as the signed
// session cookie. Cookie expiry tracks the token expiry.
func (h *UserHandler) issueSession(w http.ResponseWriter, user *model.User) *common.AppError {
	token, err := h.auth.CreateToken(user.Username, user.Role, h.auth.TokenTTL())
	if err != nil {
		return common.InternalError(err)
	}
	if err := h.cookie.Set(w, token, h.auth.TokenTTL()); err != nil {
		return common.InternalError(err)
	}
	return nil
}

// Signup godoc
// @Summary      Register a new user
// @Description  Creates an account, starts a session and sets the auth cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignupRequest  true  "Signup payload"
// @Success      201      {object}  model.AuthResponse
// @Failure      400      {object}  common.AppError
// @Failure      409      {object}  common.AppError
// @Router       /api/v1/user/signup [post]
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignupRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.userService.Signup(req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) || errors.Is(err, repository.ErrDuplicateUsername) {
			return common.NewAppError(http.StatusConflict, err.Error(), nil)
		}
		return common.InternalError(err)
	}

	if appErr := h.issueSession(w, user); appErr != nil {
		return appErr
	}

	logger.Log.WithFields(logrus.Fields{
		"username": user.Username,
		"role":     user.Role,
	}).Info("Signup completed, session issued")

	writeJSON(w, http.StatusCreated, model.AuthResponse{
		Message:  "Signup successful",
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
	})
	return nil
}

// Login godoc
// @Summary      Authenticate a user
// @Description  Validates credentials, starts a session and sets the auth cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.LoginRequest  true  "Login payload"
// @Success      200      {object}  model.AuthResponse
// @Failure      401      {object}  common.AppError
// @Router       /api/v1/user/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, err := h.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewAppError(http.StatusUnauthorized, "Invalid email or password", nil)
		}
		return common.InternalError(err)
	}

	if appErr := h.issueSession(w, user); appErr != nil {
		return appErr
	}

	writeJSON(w, http.StatusOK, model.AuthResponse{
		Message:  "Login successful",
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
	})
	return nil
}

// Logout godoc
// @Summary      End the current session
// @Description  Clears the auth cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/v1/user/logout [post]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, _, _ := PrincipalFromContext(r.Context())
	h.cookie.Clear(w)

	logger.Log.WithField("username", username).Info("User logged out")

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
	return nil
}

// AuthStatus godoc
// @Summary      Report the current session's principal
// @Description  Round-trips the verified token so clients can rehydrate state
// @Tags         auth
// @Produce      json
// @Success      200  {object}  model.AuthResponse
// @Failure      406  {object}  common.AppError
// @Router       /api/v1/user/auth-status [get]
func (h *UserHandler) AuthStatus(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, role, ok := PrincipalFromContext(r.Context())
	if !ok {
		return common.InternalError(errors.New("verified request without principal in context"))
	}

	resp := model.AuthResponse{
		Message:  "OK",
		Username: username,
		Role:     role,
	}
	// Name is display-only; a missing record still yields a valid status.
	if user, err := h.userService.GetByUsername(username); err == nil {
		resp.Name = user.Name
	}

	writeJSON(w, http.StatusOK, resp)
	return nil
}

// Profile godoc
// @Summary      Return the caller's own user record
// @Tags         user
// @Produce      json
// @Success      200  {object}  model.User
// @Failure      401  {object}  common.AppError
// @Failure      403  {object}  common.AppError
// @Router       /api/v1/user/profile [get]
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) *common.AppError {
	username, _, ok := PrincipalFromContext(r.Context())
	if !ok {
		return common.InternalError(errors.New("verified request without principal in context"))
	}

	user, err := h.userService.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.InternalError(err)
	}

	writeJSON(w, http.StatusOK, user)
	return nil
}

// ListUsers godoc
// @Summary      List all users (admin only)
// @Tags         admin
// @Produce      json
// @Success      200  {array}   model.User
// @Failure      403  {object}  common.AppError
// @Router       /api/v1/admin/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) *common.AppError {
	users, err := h.userService.ListUsers()
	if err != nil {
		return common.InternalError(err)
	}
	writeJSON(w, http.StatusOK, users)
	return nil
}

// UpdateUserRole godoc
// @Summary      Change a user's role (admin only)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      int                          true  "User ID"
// @Param        request  body      model.UpdateUserRoleRequest  true  "New role"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  common.AppError
// @Failure      404      {object}  common.AppError
// @Router       /api/v1/admin/users/{id}/role [put]
func (h *UserHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) *common.AppError {
	userID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid user ID", err)
	}

	var req model.UpdateUserRoleRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.userService.UpdateUserRole(userID, req.Role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return common.NewAppError(http.StatusNotFound, "User not found", nil)
		}
		return common.NewAppError(http.StatusBadRequest, err.Error(), nil)
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id": userID,
		"role":    req.Role,
	}).Info("User role updated")

	writeJSON(w, http.StatusOK, map[string]string{"message": "Role updated"})
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
