package services

import (
	"fmt"
	"time"

	"github.com/acquisitions/users-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried inside a bearer token.
type Claims struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the compact, time-limited bearer tokens
// that carry a user's identity and role between requests.
type TokenService interface {
	// Issue produces a signed, expiring token for the given user.
	Issue(user *models.User) (string, error)
	// Verify parses the token and returns its claims, failing with
	// ErrInvalidToken on bad signature, malformed input, or expiry.
	Verify(token string) (*Claims, error)
	// Expiry reports the configured token lifetime.
	Expiry() time.Duration
}

type tokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService creates a TokenService from the process-wide secret and
// expiry configuration. Both are fixed for the life of the process.
func NewTokenService(secret string, expiry time.Duration) TokenService {
	return &tokenService{secret: []byte(secret), expiry: expiry}
}

func (s *tokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method to prevent algorithm confusion attacks
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *tokenService) Expiry() time.Duration {
	return s.expiry
}
