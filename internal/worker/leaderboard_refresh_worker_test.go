package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typespeed/internal/model"
)

type recordingRefresher struct {
	durations []int
	err       error
}

func (r *recordingRefresher) RefreshTop(_ context.Context, duration int) error {
	r.durations = append(r.durations, duration)
	return r.err
}

func TestLeaderboardRefreshWorker_Handle(t *testing.T) {
	refresher := &recordingRefresher{}
	w := NewLeaderboardRefreshWorker(nil, refresher, "q", zerolog.Nop())

	body, err := json.Marshal(model.ScoreRecordedEvent{ScoreID: 3, Duration: 60, Username: "alice"})
	require.NoError(t, err)

	require.NoError(t, w.Handle(context.Background(), body))
	assert.Equal(t, []int{60}, refresher.durations)
}

func TestLeaderboardRefreshWorker_Handle_BadPayload(t *testing.T) {
	refresher := &recordingRefresher{}
	w := NewLeaderboardRefreshWorker(nil, refresher, "q", zerolog.Nop())

	err := w.Handle(context.Background(), []byte("{not json"))
	var decodeErr *decodeError
	assert.True(t, errors.As(err, &decodeErr))
	assert.Empty(t, refresher.durations)
}

func TestLeaderboardRefreshWorker_Handle_RefreshError(t *testing.T) {
	refresher := &recordingRefresher{err: errors.New("db down")}
	w := NewLeaderboardRefreshWorker(nil, refresher, "q", zerolog.Nop())

	body, _ := json.Marshal(model.ScoreRecordedEvent{Duration: 30})
	err := w.Handle(context.Background(), body)
	require.Error(t, err)

	var decodeErr *decodeError
	assert.False(t, errors.As(err, &decodeErr))
}

func TestLeaderboardRefreshWorker_CloseWithoutStart(t *testing.T) {
	w := NewLeaderboardRefreshWorker(nil, &recordingRefresher{}, "q", zerolog.Nop())
	w.Close()
}
