package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"support-widget/internal/logging"
)

// Config holds application configuration for both the HTTP server and the
// Lambda handler.
type Config struct {
	Port      string `validate:"required,numeric"`
	Env       string
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
	AWSRegion string

	TelegramToken  string
	TelegramChatID string `validate:"required_with=TelegramToken"`

	DefaultClientID string `validate:"required"`
	ClientsDir      string `validate:"required"`
	LexiconFile     string
	MaxMessageLen   int           `validate:"gt=0"`
	GenerateTimeout time.Duration `validate:"gt=0"`
	ProfileCacheTTL time.Duration `validate:"gt=0"`

	StateBackend  string        `validate:"oneof=memory redis dynamodb"`
	StateTTL      time.Duration `validate:"gt=0"`
	RedisAddr     string        `validate:"required_if=StateBackend redis"`
	RedisPassword string
	RedisTLS      bool
	DynamoTable   string `validate:"required_if=StateBackend dynamodb,required_if=TranscriptStore dynamodb"`

	TranscriptStore string `validate:"oneof=file dynamodb none"`
	LeadStore       string `validate:"oneof=csv dynamodb"`
	LeadsCSVPath    string `validate:"required_if=LeadStore csv"`
	LeadsTable      string `validate:"required_if=LeadStore dynamodb"`

	ProfileSource string `validate:"oneof=file ssm"`
	ParamPrefix   string `validate:"required_if=ProfileSource ssm"`

	LLMProvider      string `validate:"oneof=openai bedrock gemini"`
	OpenAIAPIKey     string
	OpenAITokenParam string
	OpenAIModel      string
	OpenAIBaseURL    string
	BedrockModelID   string `validate:"required_if=LLMProvider bedrock"`
	BedrockMaxTokens int
	GeminiAPIKey     string `validate:"required_if=LLMProvider gemini"`
	GeminiModel      string

	EmailProvider     string `validate:"oneof=auto smtp sendgrid ses stub none"`
	BusinessEmail     string `validate:"omitempty,email"`
	SenderEmail       string
	AppPassword       string
	SMTPHost          string
	SMTPPort          int
	SendGridAPIKey    string
	SendGridFromEmail string
	SESFromEmail      string
	EmailFromName     string

	CORSAllowedOrigins []string
	RateLimitRPS       float64 `validate:"gte=0"`
	RateLimitBurst     int     `validate:"gte=0"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8000"),
		Env:       getEnv("ENV", "development"),
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),

		TelegramToken:  getEnv("LOG_TELEGRAM_TOKEN", ""),
		TelegramChatID: getEnv("LOG_TELEGRAM_CHAT_ID", ""),

		DefaultClientID: getEnv("CLIENT_ID", "summit_family_dental"),
		ClientsDir:      getEnv("CLIENTS_DIR", "clients"),
		LexiconFile:     getEnv("LEXICON_FILE", ""),
		MaxMessageLen:   getEnvAsInt("MAX_MESSAGE_LEN", 500),
		GenerateTimeout: getEnvAsDuration("GENERATE_TIMEOUT", 20*time.Second),
		ProfileCacheTTL: getEnvAsDuration("PROFILE_CACHE_TTL", 5*time.Minute),

		StateBackend:  strings.ToLower(getEnv("STATE_BACKEND", "memory")),
		StateTTL:      getEnvAsDuration("STATE_TTL", 30*time.Minute),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),
		DynamoTable:   getEnv("DYNAMODB_TABLE", ""),

		TranscriptStore: strings.ToLower(getEnv("TRANSCRIPT_STORE", "file")),
		LeadStore:       strings.ToLower(getEnv("LEAD_STORE", "csv")),
		LeadsCSVPath:    getEnv("LEADS_CSV", "leads.csv"),
		LeadsTable:      getEnv("LEADS_TABLE", ""),

		ProfileSource: strings.ToLower(getEnv("PROFILE_SOURCE", "file")),
		ParamPrefix:   getEnv("PARAM_PREFIX", "/support-widget"),

		LLMProvider:      strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAITokenParam: getEnv("OPENAI_TOKEN_PARAM", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
		BedrockModelID:   getEnv("BEDROCK_MODEL_ID", ""),
		BedrockMaxTokens: getEnvAsInt("BEDROCK_MAX_TOKENS", 512),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", ""),

		EmailProvider:     strings.ToLower(getEnv("EMAIL_PROVIDER", "auto")),
		BusinessEmail:     getEnv("BUSINESS_EMAIL", ""),
		SenderEmail:       getEnv("SENDER_EMAIL", ""),
		AppPassword:       getEnv("APP_PASSWORD", ""),
		SMTPHost:          getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:          getEnvAsInt("SMTP_PORT", 587),
		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		EmailFromName:     getEnv("EMAIL_FROM_NAME", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RateLimitRPS:       getEnvAsFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field requirements.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return errors.Join(errors.New("config: invalid configuration"), err)
	}
	if c.LLMProvider == "openai" && c.OpenAIAPIKey == "" && c.OpenAITokenParam == "" {
		return errors.New("config: OPENAI_API_KEY or OPENAI_TOKEN_PARAM is required for the openai provider")
	}
	return nil
}

// LogOptions returns the logging settings.
func (c *Config) LogOptions() logging.Options {
	return logging.Options{
		Level:          c.LogLevel,
		Format:         c.LogFormat,
		TelegramToken:  c.TelegramToken,
		TelegramChatID: c.TelegramChatID,
	}
}

// IsDevelopment reports whether the service runs outside production.
func (c *Config) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development" || c.Env == "local"
}

// LoadDotEnv loads variables from the given .env files (default ".env").
// Missing files are ignored; existing environment variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
