package repository

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"edu-platform-api/model"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateUsername = errors.New("username already taken")
)

// IUserRepository defines the contract for user storage operations.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByEmail(email string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetAllUsers() ([]*model.User, error)
	UpdateUserRole(userID int, newRole string) error
}

// UserRepository is an in-memory IUserRepository. The platform keeps its
// user records outside this service; this store backs credential validation
// and is safe for concurrent request handling.
type UserRepository struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]*model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		nextID: 1,
		users:  make(map[int]*model.User),
	}
}

func (r *UserRepository) CreateUser(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicateEmail
		}
		if u.Username == user.Username {
			return ErrDuplicateUsername
		}
	}

	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()

	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *UserRepository) GetUserByUsername(username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *UserRepository) GetAllUsers() ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) UpdateUserRole(userID int, newRole string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.Role = newRole
	return nil
}
