package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"typespeed/internal/app"
)

type PassageService interface {
	Random() app.Passage
}

type PassageHandler struct {
	passages PassageService
}

func NewPassageHandler(passages PassageService) *PassageHandler {
	return &PassageHandler{passages: passages}
}

func (h *PassageHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.passages.Random())
}
