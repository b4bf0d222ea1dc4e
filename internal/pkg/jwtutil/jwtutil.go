package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed        = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrExpired          = errors.New("token expired")
)

// Claims is the token payload. Only user_id is emitted unless an expiry is
// configured.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 tokens with a server-held secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager returns a Manager. A ttl of zero issues tokens without an exp
// claim.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *Manager) Issue(userID uint) (string, error) {
	if userID == 0 {
		return "", fmt.Errorf("issue token: %w", ErrMalformed)
	}

	claims := Claims{UserID: userID}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(m.now().Add(m.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token failed: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and returns the user id carried by the token.
func (m *Manager) Verify(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, ErrMalformed
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrExpired
		default:
			return 0, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
	}
	if claims.UserID == 0 {
		return 0, fmt.Errorf("%w: missing user_id", ErrMalformed)
	}
	return claims.UserID, nil
}
