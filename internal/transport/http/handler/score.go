package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"typespeed/internal/app"
	"typespeed/internal/model"
	"typespeed/internal/transport/http/middleware"
	"typespeed/internal/transport/http/response"
)

type ScoreService interface {
	Record(ctx context.Context, user *model.User, input app.RecordInput) (*model.Score, error)
	ListAll(ctx context.Context) ([]model.ScoreEntry, error)
	Top(ctx context.Context, duration int) ([]model.ScoreEntry, error)
	PersonalBest(ctx context.Context, userID uint) (map[int]*model.ScoreEntry, error)
}

type ScoreHandler struct {
	scoreService ScoreService
}

// CreateScoreRequest uses pointers so that an explicit 0 passes "required".
type CreateScoreRequest struct {
	WPM      *float64 `json:"wpm" binding:"required,gte=0"`
	Accuracy *float64 `json:"accuracy" binding:"required,gte=0,lte=100"`
	Duration *int     `json:"duration" binding:"required,gte=0"`
}

type scoreResponse struct {
	ID        uint    `json:"id"`
	WPM       float64 `json:"wpm"`
	Accuracy  float64 `json:"accuracy"`
	Duration  int     `json:"duration"`
	Timestamp string  `json:"timestamp"`
	Username  string  `json:"username"`
}

func NewScoreHandler(scoreService ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

func (h *ScoreHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(middleware.ErrMissingToken)
		return
	}

	var req CreateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	if _, err := h.scoreService.Record(c.Request.Context(), user, app.RecordInput{
		WPM:      *req.WPM,
		Accuracy: *req.Accuracy,
		Duration: *req.Duration,
	}); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, http.StatusCreated, "Score added successfully")
}

func (h *ScoreHandler) List(c *gin.Context) {
	entries, err := h.scoreService.ListAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toScoreResponses(entries))
}

func (h *ScoreHandler) Top(c *gin.Context) {
	duration, err := strconv.Atoi(c.Param("duration"))
	if err != nil {
		_ = c.Error(fmt.Errorf("%w: duration must be an integer", app.ErrInvalidInput))
		return
	}

	entries, err := h.scoreService.Top(c.Request.Context(), duration)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toScoreResponses(entries))
}

// PersonalBest is keyed by duration in seconds; durations without a score
// map to null.
func (h *ScoreHandler) PersonalBest(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(middleware.ErrMissingToken)
		return
	}

	best, err := h.scoreService.PersonalBest(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	out := make(map[string]*scoreResponse, len(best))
	for duration, entry := range best {
		var item *scoreResponse
		if entry != nil {
			r := toScoreResponse(*entry)
			item = &r
		}
		out[strconv.Itoa(duration)] = item
	}
	c.JSON(http.StatusOK, out)
}

func toScoreResponse(e model.ScoreEntry) scoreResponse {
	return scoreResponse{
		ID:        e.ID,
		WPM:       e.WPM,
		Accuracy:  e.Accuracy,
		Duration:  e.Duration,
		Timestamp: model.FormatTimestamp(e.Timestamp),
		Username:  e.Username,
	}
}

func toScoreResponses(entries []model.ScoreEntry) []scoreResponse {
	out := make([]scoreResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toScoreResponse(e))
	}
	return out
}
