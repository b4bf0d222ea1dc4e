package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"typespeed/internal/metrics"
	"typespeed/internal/model"
)

var ErrUnsupportedDuration = errors.New("unsupported duration")

// ScoreStore is the append-only score ledger.
type ScoreStore interface {
	Create(ctx context.Context, score *model.Score) error
	ListWithUsernames(ctx context.Context) ([]model.ScoreEntry, error)
	TopByDuration(ctx context.Context, duration, limit int) ([]model.ScoreEntry, error)
	BestByUserAndDuration(ctx context.Context, userID uint, duration int) (*model.ScoreEntry, error)
}

type LeaderboardCache interface {
	GetTop(ctx context.Context, duration int) ([]model.ScoreEntry, bool, error)
	SetTop(ctx context.Context, duration int, entries []model.ScoreEntry) error
	InvalidateTop(ctx context.Context, duration int) error
}

type ScoreEventPublisher interface {
	PublishScoreRecorded(ctx context.Context, event model.ScoreRecordedEvent) error
}

type ScoreService struct {
	scoreRepo ScoreStore
	cache     LeaderboardCache
	publisher ScoreEventPublisher
	log       zerolog.Logger
	durations []int
	topLimit  int
	now       func() time.Time
}

type ScoreServiceOptions struct {
	// Cache and Publisher are optional.
	Cache     LeaderboardCache
	Publisher ScoreEventPublisher
	Logger    zerolog.Logger
	Durations []int
	TopLimit  int
}

type RecordInput struct {
	WPM      float64
	Accuracy float64
	Duration int
}

func NewScoreService(scoreRepo ScoreStore, opts ScoreServiceOptions) *ScoreService {
	durations := opts.Durations
	if len(durations) == 0 {
		durations = []int{30, 60}
	}
	topLimit := opts.TopLimit
	if topLimit <= 0 {
		topLimit = 10
	}
	return &ScoreService{
		scoreRepo: scoreRepo,
		cache:     opts.Cache,
		publisher: opts.Publisher,
		log:       opts.Logger,
		durations: slices.Clone(durations),
		topLimit:  topLimit,
		now:       time.Now,
	}
}

// Record appends a score for user. Cache eviction and event publishing run
// after the insert and never fail the call.
func (s *ScoreService) Record(ctx context.Context, user *model.User, input RecordInput) (*model.Score, error) {
	if user == nil || user.ID == 0 {
		return nil, fmt.Errorf("%w: score owner is required", ErrInvalidInput)
	}
	if err := validateRecordInput(input); err != nil {
		return nil, err
	}

	score := &model.Score{
		UserID:    user.ID,
		WPM:       input.WPM,
		Accuracy:  input.Accuracy,
		Duration:  input.Duration,
		Timestamp: s.now().UTC(),
	}
	if err := s.scoreRepo.Create(ctx, score); err != nil {
		return nil, err
	}

	durationLabel := "other"
	if s.IsLeaderboardDuration(score.Duration) {
		durationLabel = strconv.Itoa(score.Duration)
	}
	metrics.ScoresRecordedTotal.WithLabelValues(durationLabel).Inc()
	metrics.ScoreWPM.Observe(score.WPM)

	if s.cache != nil && s.IsLeaderboardDuration(score.Duration) {
		if err := s.cache.InvalidateTop(ctx, score.Duration); err != nil {
			s.log.Warn().Err(err).Int("duration", score.Duration).Msg("invalidate leaderboard cache failed")
		}
	}
	if s.publisher != nil {
		event := model.NewScoreRecordedEvent(score, user.Username)
		if err := s.publisher.PublishScoreRecorded(ctx, event); err != nil {
			s.log.Warn().Err(err).Uint("score_id", score.ID).Msg("publish score event failed")
		}
	}
	return score, nil
}

// ListAll returns every user's scores, newest first.
func (s *ScoreService) ListAll(ctx context.Context) ([]model.ScoreEntry, error) {
	entries, err := s.scoreRepo.ListWithUsernames(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.ScoreEntry{}
	}
	return entries, nil
}

func (s *ScoreService) Top(ctx context.Context, duration int) ([]model.ScoreEntry, error) {
	if !s.IsLeaderboardDuration(duration) {
		return nil, fmt.Errorf("%w: %w %d", ErrInvalidInput, ErrUnsupportedDuration, duration)
	}

	if s.cache != nil {
		entries, ok, err := s.cache.GetTop(ctx, duration)
		switch {
		case err != nil:
			metrics.LeaderboardCacheTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Int("duration", duration).Msg("read leaderboard cache failed")
		case ok:
			metrics.LeaderboardCacheTotal.WithLabelValues("hit").Inc()
			return entries, nil
		default:
			metrics.LeaderboardCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	return s.loadTop(ctx, duration)
}

// RefreshTop recomputes the top list for duration and stores it in the cache.
func (s *ScoreService) RefreshTop(ctx context.Context, duration int) error {
	if !s.IsLeaderboardDuration(duration) || s.cache == nil {
		return nil
	}
	_, err := s.loadTop(ctx, duration)
	return err
}

// PersonalBest returns the user's best score per leaderboard duration; the
// map holds nil for durations without a score.
func (s *ScoreService) PersonalBest(ctx context.Context, userID uint) (map[int]*model.ScoreEntry, error) {
	bests := make(map[int]*model.ScoreEntry, len(s.durations))
	for _, d := range s.durations {
		best, err := s.scoreRepo.BestByUserAndDuration(ctx, userID, d)
		if err != nil {
			return nil, err
		}
		bests[d] = best
	}
	return bests, nil
}

func (s *ScoreService) Durations() []int {
	return slices.Clone(s.durations)
}

func (s *ScoreService) IsLeaderboardDuration(duration int) bool {
	return slices.Contains(s.durations, duration)
}

func (s *ScoreService) loadTop(ctx context.Context, duration int) ([]model.ScoreEntry, error) {
	entries, err := s.scoreRepo.TopByDuration(ctx, duration, s.topLimit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.ScoreEntry{}
	}
	if s.cache != nil {
		if err := s.cache.SetTop(ctx, duration, entries); err != nil {
			s.log.Warn().Err(err).Int("duration", duration).Msg("write leaderboard cache failed")
		}
	}
	return entries, nil
}

func validateRecordInput(input RecordInput) error {
	switch {
	case math.IsNaN(input.WPM) || math.IsInf(input.WPM, 0) || input.WPM < 0:
		return fmt.Errorf("%w: wpm must be a non-negative number", ErrInvalidInput)
	case math.IsNaN(input.Accuracy) || input.Accuracy < 0 || input.Accuracy > 100:
		return fmt.Errorf("%w: accuracy must be between 0 and 100", ErrInvalidInput)
	case input.Duration < 0:
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}
	return nil
}
