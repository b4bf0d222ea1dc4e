package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"typespeed/internal/app"
	"typespeed/internal/model"
	"typespeed/internal/transport/http/middleware"
)

type AuthService interface {
	Register(ctx context.Context, input app.RegisterInput) (*app.AuthResult, error)
	Login(ctx context.Context, input app.LoginInput) (*app.AuthResult, error)
}

type AuthHandler struct {
	authService AuthService
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=80"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest identifies the account by email or by username; email wins
// when both are sent.
type LoginRequest struct {
	Email    string `json:"email" binding:"omitempty,max=120"`
	Username string `json:"username" binding:"omitempty,max=80"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    model.UserSummary `json:"user"`
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	result, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   result.Token,
		User:    result.User.Summary(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}
	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Identifier: identifier,
		Password:   req.Password,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    result.User.Summary(),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(middleware.ErrMissingToken)
		return
	}
	c.JSON(http.StatusOK, user.Summary())
}
