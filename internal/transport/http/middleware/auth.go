package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"typespeed/internal/metrics"
	"typespeed/internal/model"
)

var (
	ErrMissingToken = errors.New("token is missing")
	ErrInvalidToken = errors.New("invalid token")
	ErrUnknownUser  = errors.New("token user no longer exists")
)

const ContextUserKey = "current_user"

type TokenVerifier interface {
	Verify(token string) (uint, error)
}

type UserResolver interface {
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
}

// Authenticator resolves the Authorization header of a request to a user.
type Authenticator struct {
	tokens TokenVerifier
	users  UserResolver
}

func NewAuthenticator(tokens TokenVerifier, users UserResolver) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Authenticate accepts "Bearer <token>" or a bare token. Store failures are
// returned as-is; every other failure wraps one of ErrMissingToken,
// ErrInvalidToken or ErrUnknownUser.
func (a *Authenticator) Authenticate(r *http.Request) (*model.User, error) {
	token := ExtractToken(r.Header.Get("Authorization"))
	if token == "" {
		return nil, ErrMissingToken
	}

	userID, err := a.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	user, err := a.users.GetUserByID(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	return user, nil
}

// RequireUser aborts the chain unless the request authenticates; the
// resolved user is available through CurrentUser.
func (a *Authenticator) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.Authenticate(c.Request)
		if err != nil {
			metrics.AuthFailuresTotal.WithLabelValues(failureReason(err)).Inc()
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

func ExtractToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "Bearer") {
		return ""
	}
	if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(rest)
	}
	return header
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "missing_token"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	case errors.Is(err, ErrUnknownUser):
		return "unknown_user"
	default:
		return "lookup_failed"
	}
}
