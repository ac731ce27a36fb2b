package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config holds router dependencies.
type Config struct {
	Chat               ChatAnswerer
	Leads              LeadSubmitter
	Logger             *slog.Logger
	Metrics            HTTPMetrics
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// New creates the chi router serving the widget API.
func New(cfg Config) (http.Handler, error) {
	if cfg.Chat == nil {
		return nil, errors.New("httpapi: chat service must not be nil")
	}
	if cfg.Leads == nil {
		return nil, errors.New("httpapi: lead service must not be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := &handlers{chat: cfg.Chat, leads: cfg.Leads, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Metrics != nil {
		r.Use(Instrument(cfg.Metrics))
	}

	r.Get("/health", h.health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Group(func(api chi.Router) {
		if cfg.RateLimitRPS > 0 && cfg.RateLimitBurst > 0 {
			api.Use(NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware)
		}
		api.Post("/chat", h.postChat)
		api.Post("/lead", h.postLead)
	})

	return r, nil
}
