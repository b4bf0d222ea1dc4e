package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"typespeed/internal/model"
)

type UserLister interface {
	ListUsers(ctx context.Context) ([]model.User, error)
}

// DebugHandler exposes internal state for local development only. Password
// hashes never leave the process.
type DebugHandler struct {
	users UserLister
}

func NewDebugHandler(users UserLister) *DebugHandler {
	return &DebugHandler{users: users}
}

func (h *DebugHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	out := make([]model.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	c.JSON(http.StatusOK, out)
}
