package service

import (
	"errors"

	"edu-platform-api/logger"
	"edu-platform-api/model"
	"edu-platform-api/repository"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so login responses never reveal which one was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService handles account business logic on top of the repository.
type UserService struct {
	userRepo repository.IUserRepository
	auth     *AuthService
}

func NewUserService(userRepo repository.IUserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// Signup hashes the password and stores a new user with the default role.
func (s *UserService) Signup(req model.SignupRequest) (*model.User, error) {
	hashed, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     string(model.RoleUser),
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, err
	}

	logger.Log.WithField("username", user.Username).Info("New user registered")
	return user, nil
}

// Authenticate validates credentials and returns the matching user.
func (s *UserService) Authenticate(email, password string) (*model.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.auth.CheckPasswordHash(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByUsername returns the user behind a verified principal.
func (s *UserService) GetByUsername(username string) (*model.User, error) {
	return s.userRepo.GetUserByUsername(username)
}

// ListUsers returns every registered user.
func (s *UserService) ListUsers() ([]*model.User, error) {
	return s.userRepo.GetAllUsers()
}

// UpdateUserRole validates the role against the recognized set and applies it.
func (s *UserService) UpdateUserRole(userID int, newRole model.Role) error {
	if newRole != model.RoleAdmin && newRole != model.RoleUser {
		return errors.New("invalid role specified")
	}
	return s.userRepo.UpdateUserRole(userID, string(newRole))
}
