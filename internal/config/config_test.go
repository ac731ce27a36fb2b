package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8000", cfg.Port)
	require.Equal(t, "summit_family_dental", cfg.DefaultClientID)
	require.Equal(t, "memory", cfg.StateBackend)
	require.Equal(t, 30*time.Minute, cfg.StateTTL)
	require.Equal(t, 20*time.Second, cfg.GenerateTimeout)
	require.Equal(t, 500, cfg.MaxMessageLen)
	require.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	require.Equal(t, "auto", cfg.EmailProvider)
	require.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	require.Equal(t, 587, cfg.SMTPPort)
	require.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CLIENT_ID", "acme")
	t.Setenv("STATE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("STATE_TTL", "10m")
	t.Setenv("LLM_PROVIDER", "bedrock")
	t.Setenv("BEDROCK_MODEL_ID", "anthropic.claude-3-haiku")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("GENERATE_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "acme", cfg.DefaultClientID)
	require.Equal(t, "redis", cfg.StateBackend)
	require.Equal(t, 10*time.Minute, cfg.StateTTL)
	require.Equal(t, 20*time.Second, cfg.GenerateTimeout)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Run("unknown state backend", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("STATE_BACKEND", "etcd")
		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "StateBackend")
	})
	t.Run("redis without address", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("STATE_BACKEND", "redis")
		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "RedisAddr")
	})
	t.Run("openai without key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("OPENAI_TOKEN_PARAM", "")
		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "OPENAI_API_KEY")
	})
	t.Run("telegram token without chat", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("LOG_TELEGRAM_TOKEN", "123:abc")
		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "TelegramChatID")
	})
	t.Run("bad business email", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("BUSINESS_EMAIL", "nope")
		_, err := Load()
		require.Error(t, err)
		require.Contains(t, err.Error(), "BusinessEmail")
	})
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SUPPORT_WIDGET_DOTENV_TEST=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("SUPPORT_WIDGET_DOTENV_TEST") })

	require.NoError(t, LoadDotEnv(path))
	require.Equal(t, "from-file", os.Getenv("SUPPORT_WIDGET_DOTENV_TEST"))

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLogOptions(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "console", TelegramToken: "t", TelegramChatID: "c"}
	opts := cfg.LogOptions()
	require.Equal(t, "debug", opts.Level)
	require.Equal(t, "console", opts.Format)
	require.Equal(t, "t", opts.TelegramToken)
	require.Equal(t, "c", opts.TelegramChatID)
}
