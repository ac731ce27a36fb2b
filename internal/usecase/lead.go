package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"support-widget/internal/domain"
	"support-widget/internal/logging"
)

// LeadStore appends leads. Prior records are never changed.
type LeadStore interface {
	Append(ctx context.Context, lead domain.Lead) error
}

// LeadNotifier tells the business about a new lead.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead domain.Lead) error
}

type LeadMetrics interface {
	ObserveLead(emailed bool)
}

type LeadService struct {
	store           LeadStore
	notifier        LeadNotifier
	metrics         LeadMetrics
	logger          *slog.Logger
	validate        *validator.Validate
	defaultClientID string
	now             func() time.Time
}

type LeadInput struct {
	Name     string `validate:"required,max=200"`
	Email    string `validate:"required,email,max=320"`
	Message  string `validate:"max=5000"`
	ClientID string
}

type LeadOutput struct {
	Lead    domain.Lead
	Emailed bool
}

// NewLeadService creates a LeadService. A nil notifier means email is not
// configured; leads are still stored.
func NewLeadService(store LeadStore, notifier LeadNotifier, metrics LeadMetrics, logger *slog.Logger, defaultClient string) (*LeadService, error) {
	if store == nil {
		return nil, errors.New("usecase: lead store must not be nil")
	}
	if metrics == nil {
		metrics = nopLeadMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(defaultClient) == "" {
		defaultClient = defaultClientID
	}
	return &LeadService{
		store:           store,
		notifier:        notifier,
		metrics:         metrics,
		logger:          logger,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
		defaultClientID: strings.TrimSpace(defaultClient),
		now:             time.Now,
	}, nil
}

// Submit stores the lead and then tries to email the business. Only
// validation and storage failures are returned.
func (s *LeadService) Submit(ctx context.Context, in LeadInput) (LeadOutput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.ClientID = strings.TrimSpace(in.ClientID)
	if err := s.validate.Struct(in); err != nil {
		return LeadOutput{}, newError(ErrorInvalidInput, validationReason(err), err)
	}
	if in.ClientID == "" {
		in.ClientID = s.defaultClientID
	}
	if !domain.ValidClientID(in.ClientID) {
		return LeadOutput{}, newError(ErrorInvalidInput, "invalid_client_id", nil)
	}

	lead := domain.Lead{
		ID:        newUUID(),
		ClientID:  in.ClientID,
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: s.now(),
	}
	log := s.logger.With("client_id", lead.ClientID, "lead_id", lead.ID)

	if err := s.store.Append(ctx, lead); err != nil {
		return LeadOutput{}, newError(ErrorInternal, "lead_store_error", err)
	}

	emailed := s.notify(ctx, log, lead)
	s.metrics.ObserveLead(emailed)
	if emailed {
		log.Info("lead submitted", "emailed", true)
	} else {
		log.Warn("lead stored without email notification", "name", lead.Name, "email", lead.Email, logging.AlertKey, true)
	}
	return LeadOutput{Lead: lead, Emailed: emailed}, nil
}

func (s *LeadService) notify(ctx context.Context, log *slog.Logger, lead domain.Lead) bool {
	if s.notifier == nil {
		log.Warn("email notification not configured, skipping")
		return false
	}
	if err := s.notifier.NotifyLead(ctx, lead); err != nil {
		log.Error("send lead email failed", "error", err)
		return false
	}
	return true
}

func validationReason(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "invalid_" + strings.ToLower(verrs[0].Field())
	}
	return "invalid_lead"
}

type nopLeadMetrics struct{}

func (nopLeadMetrics) ObserveLead(bool) {}
