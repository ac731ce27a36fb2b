package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"support-widget/internal/domain"
)

type mockLeadStore struct {
	leads []domain.Lead
	err   error
}

func (m *mockLeadStore) Append(_ context.Context, lead domain.Lead) error {
	if m.err != nil {
		return m.err
	}
	m.leads = append(m.leads, lead)
	return nil
}

type mockNotifier struct {
	sent []domain.Lead
	err  error
}

func (m *mockNotifier) NotifyLead(_ context.Context, lead domain.Lead) error {
	m.sent = append(m.sent, lead)
	return m.err
}

type mockLeadMetrics struct{ emailed []bool }

func (m *mockLeadMetrics) ObserveLead(emailed bool) { m.emailed = append(m.emailed, emailed) }

func newTestLeadService(t *testing.T, store LeadStore, notifier LeadNotifier, m LeadMetrics) *LeadService {
	t.Helper()
	svc, err := NewLeadService(store, notifier, m, nil, "")
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestNewLeadService_NilStore(t *testing.T) {
	_, err := NewLeadService(nil, &mockNotifier{}, nil, nil, "")
	require.Error(t, err)
}

func TestSubmit_StoresAndNotifies(t *testing.T) {
	store, notifier, m := &mockLeadStore{}, &mockNotifier{}, &mockLeadMetrics{}
	svc := newTestLeadService(t, store, notifier, m)

	out, err := svc.Submit(context.Background(), LeadInput{Name: " Ada ", Email: "ada@example.com", Message: "Call me"})
	require.NoError(t, err)
	require.True(t, out.Emailed)
	require.Len(t, store.leads, 1)
	require.Equal(t, "Ada", store.leads[0].Name)
	require.Equal(t, defaultClientID, store.leads[0].ClientID)
	require.NotEmpty(t, store.leads[0].ID)
	require.Equal(t, store.leads[0], notifier.sent[0])
	require.Equal(t, []bool{true}, m.emailed)
}

func TestSubmit_NotifyFailureStillOK(t *testing.T) {
	store := &mockLeadStore{}
	svc := newTestLeadService(t, store, &mockNotifier{err: errors.New("smtp auth failed")}, nil)

	out, err := svc.Submit(context.Background(), LeadInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	require.False(t, out.Emailed)
	require.Len(t, store.leads, 1)
}

func TestSubmit_NoNotifierConfigured(t *testing.T) {
	svc := newTestLeadService(t, &mockLeadStore{}, nil, nil)
	out, err := svc.Submit(context.Background(), LeadInput{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	require.False(t, out.Emailed)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	store := &mockLeadStore{}
	svc := newTestLeadService(t, store, &mockNotifier{}, nil)

	_, err := svc.Submit(context.Background(), LeadInput{Email: "ada@example.com"})
	expectChatError(t, err, ErrorInvalidInput, "invalid_name")

	_, err = svc.Submit(context.Background(), LeadInput{Name: "Ada", Email: "not-an-email"})
	expectChatError(t, err, ErrorInvalidInput, "invalid_email")
	require.Empty(t, store.leads)
}

func TestSubmit_StoreFailure(t *testing.T) {
	notifier := &mockNotifier{}
	svc := newTestLeadService(t, &mockLeadStore{err: errors.New("disk full")}, notifier, nil)

	_, err := svc.Submit(context.Background(), LeadInput{Name: "Ada", Email: "ada@example.com"})
	expectChatError(t, err, ErrorInternal, "lead_store_error")
	require.Empty(t, notifier.sent)
}

func TestCodeOf(t *testing.T) {
	require.Equal(t, ErrorInvalidInput, CodeOf(newError(ErrorInvalidInput, "x", nil)))
	require.Equal(t, ErrorInternal, CodeOf(errors.New("plain")))
}
