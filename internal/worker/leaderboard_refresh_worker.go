package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"typespeed/internal/model"
	"typespeed/internal/platform/rabbitmq"
)

type LeaderboardRefresher interface {
	RefreshTop(ctx context.Context, duration int) error
}

// LeaderboardRefreshWorker consumes score.recorded events and re-warms the
// cached top list of the event's duration.
type LeaderboardRefreshWorker struct {
	conn      *amqp.Connection
	refresher LeaderboardRefresher
	queueName string
	log       zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewLeaderboardRefreshWorker(conn *amqp.Connection, refresher LeaderboardRefresher, queueName string, log zerolog.Logger) *LeaderboardRefreshWorker {
	return &LeaderboardRefreshWorker{
		conn:      conn,
		refresher: refresher,
		queueName: queueName,
		log:       log.With().Str("component", "leaderboard_refresh_worker").Logger(),
	}
}

func (w *LeaderboardRefreshWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				w.ack(d, w.Handle(workerCtx, d.Body))
			}
		}
	}()

	return nil
}

// Handle processes one event body. Undecodable bodies are rejected without
// requeue; refresh failures are requeued once.
func (w *LeaderboardRefreshWorker) Handle(ctx context.Context, body []byte) error {
	var event model.ScoreRecordedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return &decodeError{err: err}
	}
	if err := w.refresher.RefreshTop(ctx, event.Duration); err != nil {
		return fmt.Errorf("refresh leaderboard for duration %d failed: %w", event.Duration, err)
	}
	w.log.Debug().Uint("score_id", event.ScoreID).Int("duration", event.Duration).Msg("leaderboard refreshed")
	return nil
}

func (w *LeaderboardRefreshWorker) ack(d amqp.Delivery, err error) {
	if err == nil {
		_ = d.Ack(false)
		return
	}
	var decodeErr *decodeError
	if errors.As(err, &decodeErr) {
		w.log.Warn().Err(err).Msg("drop undecodable score event")
		_ = d.Nack(false, false)
		return
	}
	w.log.Error().Err(err).Bool("redelivered", d.Redelivered).Msg("score event handling failed")
	_ = d.Nack(false, !d.Redelivered)
}

func (w *LeaderboardRefreshWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "decode score event: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }
