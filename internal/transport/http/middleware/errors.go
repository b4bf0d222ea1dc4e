package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"typespeed/internal/app"
	"typespeed/internal/transport/http/response"
)

// ErrorHandler renders the last error attached with c.Error once the chain
// has finished. Unknown errors become a generic 500 and are logged with
// their cause.
func ErrorHandler(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, code, message := Resolve(err)
		if status >= http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request.Method).
				Str("path", c.FullPath()).
				Str("request_id", c.GetString(ContextRequestIDKey)).
				Msg("unhandled error")
		} else {
			log.Debug().
				Err(err).
				Str("path", c.FullPath()).
				Str("request_id", c.GetString(ContextRequestIDKey)).
				Msg("request rejected")
		}
		response.Error(c, status, code, message)
	}
}

// Resolve maps an error to its status, code and client-facing message.
func Resolve(err error) (int, string, string) {
	switch {
	case errors.Is(err, app.ErrUsernameExists):
		return http.StatusBadRequest, response.CodeDuplicateUsername, "Username already exists"
	case errors.Is(err, app.ErrEmailExists):
		return http.StatusBadRequest, response.CodeDuplicateEmail, "Email already exists"
	case errors.Is(err, app.ErrInvalidInput):
		return http.StatusBadRequest, response.CodeValidation, validationMessage(err)
	case errors.Is(err, app.ErrInvalidCredential):
		return http.StatusUnauthorized, response.CodeInvalidCredentials, "Invalid credentials"
	case errors.Is(err, ErrMissingToken):
		return http.StatusUnauthorized, response.CodeMissingToken, "Token is missing"
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrUnknownUser):
		return http.StatusUnauthorized, response.CodeInvalidToken, "Invalid token"
	}
	return http.StatusInternalServerError, response.CodeInternalServer, "Internal server error"
}

func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), app.ErrInvalidInput.Error()+": ")
	if msg == "" || msg == app.ErrInvalidInput.Error() {
		return "Invalid request"
	}
	return msg
}
