package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"typespeed/internal/bootstrap"
	"typespeed/internal/transport/http/handler"
	"typespeed/internal/transport/http/middleware"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Score   *handler.ScoreHandler
	Passage *handler.PassageHandler
	Health  *handler.HealthHandler
	// Debug is only mounted when set.
	Debug *handler.DebugHandler
}

type EngineOptions struct {
	GinMode     string
	APIPrefix   string
	Origins     []string
	Logger      zerolog.Logger
	RequireUser gin.HandlerFunc
	Handlers    Handlers
}

func NewRouter(app *bootstrap.App) *gin.Engine {
	checks := make(map[string]handler.DependencyCheck)
	for name, check := range app.HealthChecks() {
		checks[name] = check
	}

	handlers := Handlers{
		Auth:    handler.NewAuthHandler(app.AuthService),
		Score:   handler.NewScoreHandler(app.ScoreService),
		Passage: handler.NewPassageHandler(app.PassageService),
		Health:  handler.NewHealthHandler(app.Config.App.Name, app.Config.App.Env, app.StartedAt, checks),
	}
	if app.Config.App.EnableDebugRoutes {
		handlers.Debug = handler.NewDebugHandler(app.AuthService)
		app.Logger.Warn().Msg("debug routes enabled")
	}

	authenticator := middleware.NewAuthenticator(app.Tokens, app.AuthService)
	return NewEngine(EngineOptions{
		GinMode:     app.Config.App.GinMode,
		APIPrefix:   app.Config.App.APIPrefix,
		Origins:     app.Config.Origins(),
		Logger:      app.Logger,
		RequireUser: authenticator.RequireUser(),
		Handlers:    handlers,
	})
}

func NewEngine(opts EngineOptions) *gin.Engine {
	if opts.GinMode != "" {
		gin.SetMode(opts.GinMode)
	}
	router := gin.New()
	router.Use(
		middleware.RequestLogger(opts.Logger),
		gin.Recovery(),
		middleware.CORS(opts.Origins),
		middleware.ErrorHandler(opts.Logger),
	)

	h := opts.Handlers
	router.GET("/healthz", h.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group(opts.APIPrefix)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.GET("/me", opts.RequireUser, h.Auth.Me)

	scoreGroup := api.Group("/scores")
	scoreGroup.GET("/top/:duration", h.Score.Top)
	scoreGroup.POST("", opts.RequireUser, h.Score.Create)
	scoreGroup.GET("", opts.RequireUser, h.Score.List)
	scoreGroup.GET("/personal-best", opts.RequireUser, h.Score.PersonalBest)

	api.GET("/text", h.Passage.Get)

	if h.Debug != nil {
		api.GET("/debug/users", h.Debug.ListUsers)
	}

	return router
}
