package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigFile(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CONFIG_FILE", path)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "typespeed", cfg.App.Name)
	assert.Equal(t, "/api", cfg.App.APIPrefix)
	assert.False(t, cfg.App.EnableDebugRoutes)
	assert.Equal(t, 0, cfg.Auth.JWTExpireMinute)
	assert.Equal(t, []int{30, 60}, cfg.Leaderboard.Durations)
	assert.Equal(t, "0.0.0.0:5000", cfg.HTTPAddr())
	assert.Contains(t, cfg.MySQLDSN(), "loc=UTC")
}

func TestLoad_FileThenEnv(t *testing.T) {
	withConfigFile(t, `
[app]
port = 9000
env = "staging"

[auth]
jwt_secret = "from-file"

[leaderboard]
durations = [15, 30]
`)
	t.Setenv("SECRET_KEY", "from-env")
	t.Setenv("MYSQL_DB", "envdb")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, "staging", cfg.App.Env)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "envdb", cfg.MySQL.DB)
	assert.Equal(t, []int{15, 30}, cfg.Leaderboard.Durations)
	// untouched by file or env
	assert.Equal(t, "127.0.0.1", cfg.MySQL.Host)
}

func TestLoad_RejectsPlaceholderSecretOutsideDev(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("APP_ENV", "prod")

	_, err := Load(context.Background())
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Auth.JWTSecret = "  "
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Leaderboard.Durations = []int{30, 0}
	assert.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Auth.JWTExpireMinute = -1
	assert.Error(t, cfg.Validate())
}

func TestOrigins(t *testing.T) {
	cfg := defaultConfig()
	cfg.CORS.FrontendURL = "https://typespeed.example.com/"

	assert.Equal(t, []string{
		"http://localhost:5173",
		"https://*.vercel.app",
		"https://*.netlify.app",
		"https://typespeed.example.com",
	}, cfg.Origins())

	cfg.CORS.AllowedOrigins = []string{"", " "}
	cfg.CORS.FrontendURL = ""
	assert.Empty(t, cfg.Origins())
}

func TestLoad_ExampleFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join("..", "..", "configs", "config.example.toml"))

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.App.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "typespeed.score.recorded", cfg.RabbitMQ.ScoreEventsQueue)
	assert.Equal(t, []int{30, 60}, cfg.Leaderboard.Durations)
}
