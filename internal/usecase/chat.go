package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"support-widget/internal/domain"
	"support-widget/internal/lexicon"
)

const (
	defaultMaxMessage      = 500
	defaultGenerateTimeout = 20 * time.Second
	defaultClientID        = "summit_family_dental"
	maxSessionIDLen        = 128
)

// Fixed user-facing replies.
const (
	WelcomeReply  = "You’re very welcome! 😊 If you have any other questions, just ask."
	DeclineReply  = "No problem at all — if you change your mind later, just let me know and I can have the team reach out."
	ApologyReply  = "I'm sorry, something went wrong generating a reply. Please try again."
	CallbackOffer = "\n\nIf you'd like, I can have the team give you a call to help with this — just reply 'yes' and I'll collect your phone number."
)

// Generator turns a prompt into reply text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// StateStore holds the per-conversation "awaiting confirmation" flag.
type StateStore interface {
	TakePending(ctx context.Context, key string) (bool, error)
	ArmPending(ctx context.Context, key string) error
}

// ProfileLoader supplies a client's FAQ and tone text. It never fails;
// missing text comes back empty.
type ProfileLoader interface {
	Load(ctx context.Context, clientID string) domain.ClientProfile
}

// TranscriptRecorder keeps answered turns for later review.
type TranscriptRecorder interface {
	Record(ctx context.Context, turn domain.Turn) error
}

// ChatMetrics observes controller outcomes.
type ChatMetrics interface {
	ObserveReply(kind domain.ReplyKind)
	ObserveGeneration(elapsed time.Duration, ok bool)
}

type ChatService struct {
	generator  Generator
	state      StateStore
	profiles   ProfileLoader
	matcher    *lexicon.Matcher
	transcript TranscriptRecorder
	metrics    ChatMetrics
	logger     *slog.Logger

	generateTimeout time.Duration
	maxMessageLen   int
	defaultClientID string
	now             func() time.Time
}

type ChatInput struct {
	Message   string
	SessionID string
	ClientID  string
}

type ChatOutput struct {
	Reply     domain.Reply
	SessionID string
	ClientID  string
}

// ChatOption customizes a ChatService.
type ChatOption func(*ChatService)

// WithTranscript records every answered turn to r.
func WithTranscript(r TranscriptRecorder) ChatOption {
	return func(s *ChatService) { s.transcript = r }
}

func WithChatMetrics(m ChatMetrics) ChatOption {
	return func(s *ChatService) {
		if m != nil {
			s.metrics = m
		}
	}
}

func WithChatLogger(l *slog.Logger) ChatOption {
	return func(s *ChatService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGenerateTimeout bounds each generation call.
func WithGenerateTimeout(d time.Duration) ChatOption {
	return func(s *ChatService) {
		if d > 0 {
			s.generateTimeout = d
		}
	}
}

// WithMaxMessageLen limits accepted messages to n characters.
func WithMaxMessageLen(n int) ChatOption {
	return func(s *ChatService) {
		if n > 0 {
			s.maxMessageLen = n
		}
	}
}

// WithDefaultClientID sets the client used when a request names none.
func WithDefaultClientID(id string) ChatOption {
	return func(s *ChatService) {
		if id = strings.TrimSpace(id); id != "" {
			s.defaultClientID = id
		}
	}
}

func NewChatService(gen Generator, state StateStore, profiles ProfileLoader, matcher *lexicon.Matcher, opts ...ChatOption) (*ChatService, error) {
	if gen == nil {
		return nil, errors.New("usecase: generator must not be nil")
	}
	if state == nil {
		return nil, errors.New("usecase: state store must not be nil")
	}
	if profiles == nil {
		return nil, errors.New("usecase: profile loader must not be nil")
	}
	if matcher == nil {
		return nil, errors.New("usecase: matcher must not be nil")
	}
	s := &ChatService{
		generator:       gen,
		state:           state,
		profiles:        profiles,
		matcher:         matcher,
		metrics:         nopChatMetrics{},
		logger:          slog.Default(),
		generateTimeout: defaultGenerateTimeout,
		maxMessageLen:   defaultMaxMessage,
		defaultClientID: defaultClientID,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Answer decides the reply to one customer message. Only invalid input is
// reported as an error; every other failure degrades to a reply.
func (s *ChatService) Answer(ctx context.Context, in ChatInput) (ChatOutput, error) {
	message := in.Message
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return ChatOutput{}, newError(ErrorInvalidInput, "empty_message", nil)
	}
	if utf8.RuneCountInString(trimmed) > s.maxMessageLen {
		return ChatOutput{}, newError(ErrorInvalidInput, "message_too_long", nil)
	}

	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" {
		clientID = s.defaultClientID
	}
	if !domain.ValidClientID(clientID) {
		return ChatOutput{}, newError(ErrorInvalidInput, "invalid_client_id", nil)
	}
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		sessionID = newUUID()
	}
	if len(sessionID) > maxSessionIDLen {
		return ChatOutput{}, newError(ErrorInvalidInput, "invalid_session_id", nil)
	}
	key := domain.ConversationKey(clientID, sessionID)
	log := s.logger.With("client_id", clientID, "session_id", sessionID)

	reply := s.decide(ctx, log, key, clientID, message)
	s.metrics.ObserveReply(reply.Kind)
	s.record(ctx, log, domain.Turn{
		ClientID:  clientID,
		SessionID: sessionID,
		Question:  message,
		Answer:    reply.Wire(),
		Kind:      reply.Kind,
		At:        s.now(),
	})

	return ChatOutput{Reply: reply, SessionID: sessionID, ClientID: clientID}, nil
}

func (s *ChatService) decide(ctx context.Context, log *slog.Logger, key, clientID, message string) domain.Reply {
	pending, err := s.state.TakePending(ctx, key)
	if err != nil {
		log.Warn("read pending confirmation failed, treating as idle", "error", err)
		pending = false
	}
	if pending {
		switch {
		case s.matcher.LooksAffirmative(message):
			return domain.LeadFlowReply()
		case s.matcher.LooksNegative(message):
			return domain.LiteralReply(DeclineReply)
		}
		// Neither yes nor no: the offer lapses and the message is answered as new.
	}

	if s.matcher.IsBriefAcknowledgement(message) {
		return domain.LiteralReply(WelcomeReply)
	}
	if s.matcher.WantsHandoff(message) {
		return domain.LeadFlowReply()
	}

	profile := s.profiles.Load(ctx, clientID)
	answer, ok := s.generate(ctx, log, buildPrompt(profile, message))
	if !ok {
		return domain.LiteralReply(ApologyReply)
	}
	if answer == domain.LeadFlowSentinel {
		return domain.LeadFlowReply()
	}

	if s.matcher.MentionsUrgency(message) && !s.matcher.WantsHandoff(message) {
		if err := s.state.ArmPending(ctx, key); err != nil {
			log.Warn("arm pending confirmation failed, omitting callback offer", "error", err)
			return domain.GeneratedReply(answer)
		}
		answer += CallbackOffer
	}
	return domain.GeneratedReply(answer)
}

// generate makes exactly one bounded call and reports whether it produced
// usable text.
func (s *ChatService) generate(ctx context.Context, log *slog.Logger, prompt string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()

	start := time.Now()
	out, err := s.generator.Generate(ctx, prompt)
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.ObserveGeneration(elapsed, false)
		log.Error("generate reply failed", "error", err, "elapsed", elapsed)
		return "", false
	}
	out = strings.TrimSpace(out)
	if out == "" {
		s.metrics.ObserveGeneration(elapsed, false)
		log.Error("generator returned empty reply", "elapsed", elapsed)
		return "", false
	}
	s.metrics.ObserveGeneration(elapsed, true)
	return out, true
}

func (s *ChatService) record(ctx context.Context, log *slog.Logger, turn domain.Turn) {
	if s.transcript == nil {
		return
	}
	if err := s.transcript.Record(ctx, turn); err != nil {
		log.Warn("record transcript failed", "error", err)
	}
}

type nopChatMetrics struct{}

func (nopChatMetrics) ObserveReply(domain.ReplyKind) {}
func (nopChatMetrics) ObserveGeneration(time.Duration, bool) {}

var newUUID = func() string {
	return uuid.NewString()
}
