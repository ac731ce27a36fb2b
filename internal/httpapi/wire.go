package httpapi

import (
	"errors"
	"net/http"

	"support-widget/internal/usecase"
)

// MaxBodyBytes caps request bodies on every write endpoint.
const MaxBodyBytes = 64 << 10

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
	ClientID  string `json:"clientId,omitempty"`
}

// ChatResponse carries the wire reply. Reply is the lead-flow sentinel when
// LeadFlow is true.
type ChatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"sessionId"`
	LeadFlow  bool   `json:"leadFlow"`
}

// LeadRequest is the body of POST /lead.
type LeadRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	ClientID string `json:"clientId,omitempty"`
}

type LeadResponse struct {
	Status  string `json:"status"`
	Emailed bool   `json:"emailed"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// ChatResponseFrom converts a controller result to its wire form.
func ChatResponseFrom(out usecase.ChatOutput) ChatResponse {
	return ChatResponse{
		Reply:     out.Reply.Wire(),
		SessionID: out.SessionID,
		LeadFlow:  out.Reply.IsLeadFlow(),
	}
}

// ChatInput converts a wire request to controller input.
func (r ChatRequest) ChatInput() usecase.ChatInput {
	return usecase.ChatInput{Message: r.Message, SessionID: r.SessionID, ClientID: r.ClientID}
}

func (r LeadRequest) LeadInput() usecase.LeadInput {
	return usecase.LeadInput{Name: r.Name, Email: r.Email, Message: r.Message, ClientID: r.ClientID}
}

// ErrorStatus maps a usecase error to an HTTP status and body. Unknown
// errors become INTERNAL_ERROR without leaking their text.
func ErrorStatus(err error) (int, ErrorResponse) {
	var ue *usecase.Error
	if !errors.As(err, &ue) {
		return http.StatusInternalServerError, ErrorResponse{Error: string(usecase.ErrorInternal)}
	}
	switch ue.Code {
	case usecase.ErrorInvalidInput:
		return http.StatusBadRequest, ErrorResponse{Error: string(ue.Code), Reason: ue.Reason}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: string(usecase.ErrorInternal), Reason: ue.Reason}
	}
}

// InvalidBody is the response for bodies that are not valid JSON.
func InvalidBody() (int, ErrorResponse) {
	return http.StatusBadRequest, ErrorResponse{Error: string(usecase.ErrorInvalidInput), Reason: "invalid_body"}
}
