package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"support-widget/internal/domain"
)

const defaultFromName = "Support Widget"

// LeadNotifier emails the business about each new lead.
type LeadNotifier struct {
	sender        EmailSender
	businessEmail string
}

func NewLeadNotifier(sender EmailSender, businessEmail string) (*LeadNotifier, error) {
	if sender == nil {
		return nil, errors.New("notify: email sender must not be nil")
	}
	businessEmail = strings.TrimSpace(businessEmail)
	if businessEmail == "" {
		return nil, errors.New("notify: business email must not be empty")
	}
	return &LeadNotifier{sender: sender, businessEmail: businessEmail}, nil
}

func (n *LeadNotifier) NotifyLead(ctx context.Context, lead domain.Lead) error {
	if err := n.sender.Send(ctx, LeadEmail(lead, n.businessEmail)); err != nil {
		return fmt.Errorf("notify: NotifyLead: %w", err)
	}
	return nil
}

// LeadEmail renders the notification sent to the business for lead.
func LeadEmail(lead domain.Lead, to string) EmailMessage {
	body := "New lead from your website:\n\n" +
		"Name: " + lead.Name + "\n" +
		"Email: " + lead.Email + "\n" +
		"Message:\n" + lead.Message + "\n\n" +
		"Received at: " + lead.CreatedAt.Format("2006-01-02T15:04:05")
	return EmailMessage{
		To:      to,
		Subject: "New website lead from " + lead.Name,
		Body:    body,
	}
}
