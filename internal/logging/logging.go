package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	console "github.com/phsym/console-slog"
	slogmulti "github.com/samber/slog-multi"
	slogtelegram "github.com/samber/slog-telegram/v2"
)

// AlertKey is the attribute that routes a record to the alert channel.
const AlertKey = "alert"

// Options selects the handlers behind a logger.
type Options struct {
	Level  string
	Format string // "json" or "console"

	// TelegramToken and TelegramChatID enable an alert channel that receives
	// errors and records carrying AlertKey.
	TelegramToken  string
	TelegramChatID string
}

// ParseLevel maps debug/info/warn/error to a slog level. Unknown values
// fall back to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w, plus the alert channel when configured.
func New(w io.Writer, opts Options) *slog.Logger {
	router := slogmulti.Router().Add(baseHandler(w, opts))

	if opts.TelegramToken != "" && opts.TelegramChatID != "" {
		router = router.Add(
			slogtelegram.Option{
				Level:    slog.LevelWarn,
				Token:    opts.TelegramToken,
				Username: opts.TelegramChatID,
			}.NewTelegramHandler(),
			isAlert,
		)
	}
	return slog.New(router.Handler()).With("service", "support-widget")
}

// Setup builds a logger on stderr and installs it as the slog default.
func Setup(opts Options) *slog.Logger {
	logger := New(os.Stderr, opts)
	slog.SetDefault(logger)
	return logger
}

func baseHandler(w io.Writer, opts Options) slog.Handler {
	lvl := ParseLevel(opts.Level)
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "console", "text":
		return console.NewHandler(w, &console.HandlerOptions{
			AddSource: lvl == slog.LevelDebug,
			Level:     lvl,
		})
	default:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	}
}

func isAlert(_ context.Context, r slog.Record) bool {
	if r.Level >= slog.LevelError {
		return true
	}
	alert := false
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == AlertKey {
			alert = attr.Value.Kind() != slog.KindBool || attr.Value.Bool()
			return false
		}
		return true
	})
	return alert
}
