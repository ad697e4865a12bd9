package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"edu-platform-api/config"
	"edu-platform-api/logger"
	"edu-platform-api/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrTokenExpired means the token was valid but is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers signature mismatch, malformed tokens and any
	// other verification failure that is not an expiry.
	ErrTokenInvalid = errors.New("invalid token")
)

// AuthService issues and verifies the session tokens. The signing secret is
// injected at construction and read-only afterwards; both operations are pure
// computation with no I/O.
type AuthService struct {
	secret    []byte
	expiresIn time.Duration
}

// NewAuthService builds the token service from configuration. An empty
// signing secret is a fatal misconfiguration, not a per-request error.
func NewAuthService(cfg config.JWTConfig) (*AuthService, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errors.New("auth service requires a signing secret")
	}
	if cfg.ExpiresIn <= 0 {
		return nil, errors.New("auth service requires a positive token lifetime")
	}
	return &AuthService{
		secret:    []byte(cfg.SecretKey),
		expiresIn: cfg.ExpiresIn,
	}, nil
}

// TokenTTL reports the configured token lifetime; the session cookie expiry
// is kept in lockstep with it.
func (s *AuthService) TokenTTL() time.Duration {
	return s.expiresIn
}

// CreateToken signs a token carrying {username, role} that verifies back to
// the same pair until expiresIn elapses. Role is not checked against the
// recognized set here; only the role-scoped middleware enforces that.
func (s *AuthService) CreateToken(username, role string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := &model.SessionClaims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("username", username).Error("Failed to sign session token")
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken parses and verifies a token string. Expiry is always reported
// as ErrTokenExpired, every other failure as ErrTokenInvalid, so callers can
// map the two to distinct responses.
func (s *AuthService) VerifyToken(tokenString string) (*model.SessionClaims, error) {
	claims := &model.SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// HashPassword hashes a plaintext password for storage.
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether password matches the stored hash.
func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
