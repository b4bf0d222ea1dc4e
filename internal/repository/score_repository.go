package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"typespeed/internal/model"
)

const (
	scoreEntryColumns = "scores.id, scores.user_id, scores.wpm, scores.accuracy, scores.duration, scores.timestamp, users.username"
	scoreUserJoin     = "JOIN users ON users.id = scores.user_id"
)

// ScoreRepository is append-only: it exposes no update or delete.
type ScoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) Create(ctx context.Context, score *model.Score) error {
	if err := r.db.WithContext(ctx).Create(score).Error; err != nil {
		return fmt.Errorf("create score failed: %w", err)
	}
	return nil
}

// ListWithUsernames returns every score newest first; equal timestamps are
// ordered by descending id.
func (r *ScoreRepository) ListWithUsernames(ctx context.Context) ([]model.ScoreEntry, error) {
	var entries []model.ScoreEntry
	err := r.entries(ctx).
		Order("scores.timestamp DESC").
		Order("scores.id DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list scores failed: %w", err)
	}
	return entries, nil
}

func (r *ScoreRepository) TopByDuration(ctx context.Context, duration, limit int) ([]model.ScoreEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var entries []model.ScoreEntry
	err := r.entries(ctx).
		Where("scores.duration = ?", duration).
		Order("scores.wpm DESC").
		Order("scores.id ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list top scores failed: %w", err)
	}
	return entries, nil
}

// BestByUserAndDuration returns nil when the user has no score for duration.
func (r *ScoreRepository) BestByUserAndDuration(ctx context.Context, userID uint, duration int) (*model.ScoreEntry, error) {
	var entry model.ScoreEntry
	err := r.entries(ctx).
		Where("scores.user_id = ? AND scores.duration = ?", userID, duration).
		Order("scores.wpm DESC").
		Order("scores.id ASC").
		Limit(1).
		Take(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query personal best failed: %w", err)
	}
	return &entry, nil
}

func (r *ScoreRepository) entries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("scores").
		Select(scoreEntryColumns).
		Joins(scoreUserJoin)
}
