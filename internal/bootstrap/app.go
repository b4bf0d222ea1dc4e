package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"typespeed/internal/app"
	"typespeed/internal/cache"
	"typespeed/internal/config"
	"typespeed/internal/model"
	mysqlClient "typespeed/internal/platform/mysql"
	rabbitmqClient "typespeed/internal/platform/rabbitmq"
	redisClient "typespeed/internal/platform/redis"
	"typespeed/internal/pkg/jwtutil"
	"typespeed/internal/repository"
	"typespeed/internal/worker"
)

type App struct {
	Config *config.Config
	Logger zerolog.Logger

	MySQL *gorm.DB
	// Redis and MQConn are nil unless enabled in config.
	Redis  *redis.Client
	MQConn *amqp.Connection

	Tokens         *jwtutil.Manager
	AuthService    *app.AuthService
	ScoreService   *app.ScoreService
	PassageService *app.PassageService
	RefreshWorker  *worker.LeaderboardRefreshWorker

	StartedAt time.Time
}

func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{
		Config:    cfg,
		Logger:    log,
		StartedAt: time.Now(),
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	a.MySQL = mysqlDB
	if err := mysqlDB.AutoMigrate(&model.User{}, &model.Score{}); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	scoreOpts := app.ScoreServiceOptions{
		Logger:    log.With().Str("component", "score_service").Logger(),
		Durations: cfg.Leaderboard.Durations,
		TopLimit:  cfg.Leaderboard.TopLimit,
	}

	if cfg.Redis.Enabled {
		redisCli, err := redisClient.New(ctx, redisClient.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Redis = redisCli
		ttl := time.Duration(cfg.Redis.LeaderboardTTLSeconds) * time.Second
		scoreOpts.Cache = cache.NewLeaderboardCache(redisCli, ttl)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("leaderboard cache enabled")
	}

	if cfg.RabbitMQ.Enabled {
		mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.ScoreEventsQueue)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.MQConn = mqConn
		scoreOpts.Publisher = rabbitmqClient.NewScorePublisher(mqConn, cfg.RabbitMQ.ScoreEventsQueue)
		log.Info().Str("queue", cfg.RabbitMQ.ScoreEventsQueue).Msg("score events enabled")
	}

	userRepo := repository.NewUserRepository(mysqlDB)
	scoreRepo := repository.NewScoreRepository(mysqlDB)

	a.Tokens = jwtutil.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.JWTExpireMinute)*time.Minute)
	a.AuthService = app.NewAuthService(userRepo, a.Tokens)
	a.ScoreService = app.NewScoreService(scoreRepo, scoreOpts)
	a.PassageService = app.NewPassageService()

	if a.MQConn != nil {
		a.RefreshWorker = worker.NewLeaderboardRefreshWorker(a.MQConn, a.ScoreService, cfg.RabbitMQ.ScoreEventsQueue, log)
		if err := a.RefreshWorker.Start(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("start leaderboard refresh worker failed: %w", err)
		}
	}

	return a, nil
}

// HealthChecks returns a probe per configured dependency.
func (a *App) HealthChecks() map[string]func(ctx context.Context) error {
	checks := map[string]func(ctx context.Context) error{
		"mysql": func(ctx context.Context) error {
			sqlDB, err := a.MySQL.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if a.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return a.Redis.Ping(ctx).Err()
		}
	}
	if a.MQConn != nil {
		checks["rabbitmq"] = func(context.Context) error {
			if a.MQConn.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}
	}
	return checks
}

func (a *App) Close() error {
	var closeErr error
	if a.RefreshWorker != nil {
		a.RefreshWorker.Close()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = errors.Join(closeErr, err)
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = errors.Join(closeErr, err)
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = errors.Join(closeErr, err)
			}
		}
	}
	return closeErr
}
