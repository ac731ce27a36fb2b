package app

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"support-widget/internal/config"
	"support-widget/internal/httpapi"
	"support-widget/internal/integrations/bedrock"
	"support-widget/internal/integrations/gemini"
	"support-widget/internal/integrations/openai"
	"support-widget/internal/integrations/paramstore"
	"support-widget/internal/lexicon"
	"support-widget/internal/metrics"
	"support-widget/internal/notify"
	"support-widget/internal/profile"
	"support-widget/internal/repository"
	"support-widget/internal/usecase"
)

const sweepInterval = time.Minute

// App holds the wired services for one process.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Chat     *usecase.ChatService
	Leads    *usecase.LeadService
	Metrics  *metrics.WidgetMetrics
	Registry *prometheus.Registry

	memory  *repository.MemoryStore
	closers []func() error
	awsCfg  *aws.Config
}

// Option overrides a dependency normally built from configuration.
type Option func(*overrides)

type overrides struct {
	generator usecase.Generator
	sender    notify.EmailSender
}

// WithGenerator replaces the configured LLM provider.
func WithGenerator(g usecase.Generator) Option {
	return func(o *overrides) { o.generator = g }
}

// WithEmailSender replaces the configured email provider.
func WithEmailSender(s notify.EmailSender) Option {
	return func(o *overrides) { o.sender = s }
}

// Build wires every service described by cfg. Call Close when done.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	var o overrides
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{Config: cfg, Logger: logger}
	ok := false
	defer func() {
		if !ok {
			_ = a.Close()
		}
	}()

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = metrics.New(a.Registry)

	matcher, err := lexicon.LoadMatcher(cfg.LexiconFile)
	if err != nil {
		return nil, fmt.Errorf("app: load lexicon: %w", err)
	}
	logger.Info("lexicon loaded", "version", matcher.Version(), "file", cfg.LexiconFile)

	var params *paramstore.Client
	if cfg.ProfileSource == "ssm" || (o.generator == nil && cfg.LLMProvider == "openai" && cfg.OpenAIAPIKey == "") {
		awsCfg, err := a.awsConfig(ctx)
		if err != nil {
			return nil, err
		}
		if params, err = paramstore.New(awsssm.NewFromConfig(awsCfg)); err != nil {
			return nil, fmt.Errorf("app: paramstore: %w", err)
		}
	}

	gen := o.generator
	if gen == nil {
		if gen, err = a.buildGenerator(ctx, params); err != nil {
			return nil, err
		}
	}

	state, err := a.buildStateStore(ctx)
	if err != nil {
		return nil, err
	}

	profiles, err := a.buildProfiles(params)
	if err != nil {
		return nil, err
	}

	chatOpts := []usecase.ChatOption{
		usecase.WithChatLogger(logger),
		usecase.WithChatMetrics(a.Metrics),
		usecase.WithGenerateTimeout(cfg.GenerateTimeout),
		usecase.WithMaxMessageLen(cfg.MaxMessageLen),
		usecase.WithDefaultClientID(cfg.DefaultClientID),
	}
	transcript, err := a.buildTranscript(ctx)
	if err != nil {
		return nil, err
	}
	if transcript != nil {
		chatOpts = append(chatOpts, usecase.WithTranscript(transcript))
	}
	if a.Chat, err = usecase.NewChatService(gen, state, profiles, matcher, chatOpts...); err != nil {
		return nil, fmt.Errorf("app: chat service: %w", err)
	}

	leadStore, err := a.buildLeadStore(ctx)
	if err != nil {
		return nil, err
	}
	notifier, err := a.buildNotifier(ctx, o.sender)
	if err != nil {
		return nil, err
	}
	var leadNotifier usecase.LeadNotifier
	if notifier != nil {
		leadNotifier = notifier
	}
	if a.Leads, err = usecase.NewLeadService(leadStore, leadNotifier, a.Metrics, logger, cfg.DefaultClientID); err != nil {
		return nil, fmt.Errorf("app: lead service: %w", err)
	}

	ok = true
	return a, nil
}

// Start launches background work. It returns immediately; work stops when
// ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	if a.memory != nil {
		go a.memory.RunSweeper(ctx, sweepInterval, a.Logger)
	}
}

// Router returns the HTTP API backed by this App.
func (a *App) Router() (http.Handler, error) {
	return httpapi.New(httpapi.Config{
		Chat:               a.Chat,
		Leads:              a.Leads,
		Logger:             a.Logger,
		Metrics:            a.Metrics,
		MetricsHandler:     promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: a.Config.CORSAllowedOrigins,
		RateLimitRPS:       a.Config.RateLimitRPS,
		RateLimitBurst:     a.Config.RateLimitBurst,
	})
}

// Close releases clients opened by Build.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) awsConfig(ctx context.Context) (aws.Config, error) {
	if a.awsCfg != nil {
		return *a.awsCfg, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(a.Config.AWSRegion))
	if err != nil {
		return aws.Config{}, fmt.Errorf("app: load AWS config: %w", err)
	}
	a.awsCfg = &cfg
	return cfg, nil
}

func (a *App) buildGenerator(ctx context.Context, params *paramstore.Client) (usecase.Generator, error) {
	cfg := a.Config
	switch cfg.LLMProvider {
	case "bedrock":
		awsCfg, err := a.awsConfig(ctx)
		if err != nil {
			return nil, err
		}
		c, err := bedrock.New(bedrockruntime.NewFromConfig(awsCfg), cfg.BedrockModelID, int32(cfg.BedrockMaxTokens))
		if err != nil {
			return nil, fmt.Errorf("app: bedrock: %w", err)
		}
		return c, nil
	case "gemini":
		c, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("app: gemini: %w", err)
		}
		a.closers = append(a.closers, c.Close)
		return c, nil
	default:
		opts := []openai.Option{openai.WithModel(cfg.OpenAIModel)}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}
		if cfg.OpenAIAPIKey != "" {
			opts = append(opts, openai.WithAPIKey(cfg.OpenAIAPIKey))
		} else if params != nil {
			opts = append(opts, openai.WithParamStore(params, cfg.OpenAITokenParam))
		}
		c, err := openai.NewClient(opts...)
		if err != nil {
			return nil, fmt.Errorf("app: openai: %w", err)
		}
		return c, nil
	}
}

func (a *App) buildStateStore(ctx context.Context) (usecase.StateStore, error) {
	cfg := a.Config
	switch cfg.StateBackend {
	case "redis":
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		a.closers = append(a.closers, client.Close)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("app: redis ping: %w", err)
		}
		store, err := repository.NewRedisStore(client, cfg.StateTTL)
		if err != nil {
			return nil, fmt.Errorf("app: redis store: %w", err)
		}
		return store, nil
	case "dynamodb":
		client, err := a.dynamoClient(ctx)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		a.memory = repository.NewMemoryStore(cfg.StateTTL)
		return a.memory, nil
	}
}

func (a *App) dynamoClient(ctx context.Context) (*repository.Client, error) {
	awsCfg, err := a.awsConfig(ctx)
	if err != nil {
		return nil, err
	}
	client, err := repository.New(awsdynamodb.NewFromConfig(awsCfg), a.Config.DynamoTable, a.Config.StateTTL)
	if err != nil {
		return nil, fmt.Errorf("app: dynamodb: %w", err)
	}
	return client, nil
}

func (a *App) buildProfiles(params *paramstore.Client) (*profile.Loader, error) {
	var src profile.Source = profile.NewFileSource(a.Config.ClientsDir)
	if a.Config.ProfileSource == "ssm" {
		ssmSrc, err := profile.NewSSMSource(params, a.Config.ParamPrefix)
		if err != nil {
			return nil, fmt.Errorf("app: ssm profile source: %w", err)
		}
		src = ssmSrc
	}
	return profile.NewLoader(src, a.Config.ProfileCacheTTL, a.Logger), nil
}

func (a *App) buildTranscript(ctx context.Context) (usecase.TranscriptRecorder, error) {
	switch a.Config.TranscriptStore {
	case "none":
		return nil, nil
	case "dynamodb":
		return a.dynamoClient(ctx)
	default:
		return repository.NewTranscriptLog(a.Config.ClientsDir), nil
	}
}

func (a *App) buildLeadStore(ctx context.Context) (usecase.LeadStore, error) {
	if a.Config.LeadStore != "dynamodb" {
		return repository.NewLeadCSV(a.Config.LeadsCSVPath), nil
	}
	awsCfg, err := a.awsConfig(ctx)
	if err != nil {
		return nil, err
	}
	table, err := repository.NewLeadTable(awsdynamodb.NewFromConfig(awsCfg), a.Config.LeadsTable)
	if err != nil {
		return nil, fmt.Errorf("app: lead table: %w", err)
	}
	return table, nil
}

// buildNotifier returns nil when email is not configured.
func (a *App) buildNotifier(ctx context.Context, override notify.EmailSender) (*notify.LeadNotifier, error) {
	cfg := a.Config
	if cfg.EmailProvider == "none" {
		return nil, nil
	}
	sender := override
	if sender == nil {
		var err error
		if sender, err = a.buildEmailSender(ctx); err != nil {
			return nil, err
		}
	}
	if sender == nil {
		a.Logger.Warn("email not configured, leads will be stored without notification")
		return nil, nil
	}
	if cfg.BusinessEmail == "" {
		a.Logger.Warn("BUSINESS_EMAIL not set, leads will be stored without notification")
		return nil, nil
	}
	n, err := notify.NewLeadNotifier(sender, cfg.BusinessEmail)
	if err != nil {
		return nil, fmt.Errorf("app: lead notifier: %w", err)
	}
	return n, nil
}

func (a *App) buildEmailSender(ctx context.Context) (notify.EmailSender, error) {
	cfg := a.Config
	smtpSender := func() notify.EmailSender {
		if s := notify.NewSMTPSender(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SenderEmail,
			Password: cfg.AppPassword,
		}, a.Logger); s != nil {
			return s
		}
		return nil
	}
	sendgridSender := func() notify.EmailSender {
		if s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.EmailFromName,
		}, a.Logger); s != nil {
			return s
		}
		return nil
	}
	sesSender := func() (notify.EmailSender, error) {
		awsCfg, err := a.awsConfig(ctx)
		if err != nil {
			return nil, err
		}
		s, err := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.EmailFromName,
		}, a.Logger)
		if err != nil {
			return nil, fmt.Errorf("app: ses sender: %w", err)
		}
		return s, nil
	}

	switch cfg.EmailProvider {
	case "smtp":
		return smtpSender(), nil
	case "sendgrid":
		return sendgridSender(), nil
	case "ses":
		return sesSender()
	case "stub":
		return notify.NewStubEmailSender(a.Logger), nil
	}

	// auto: first configured provider wins.
	if s := smtpSender(); s != nil {
		return s, nil
	}
	if s := sendgridSender(); s != nil {
		return s, nil
	}
	if cfg.SESFromEmail != "" {
		return sesSender()
	}
	return nil, nil
}
