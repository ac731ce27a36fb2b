package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"support-widget/internal/usecase"
)

// ChatAnswerer answers one chat message.
type ChatAnswerer interface {
	Answer(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
}

// LeadSubmitter stores and announces a lead.
type LeadSubmitter interface {
	Submit(ctx context.Context, in usecase.LeadInput) (usecase.LeadOutput, error)
}

type handlers struct {
	chat   ChatAnswerer
	leads  LeadSubmitter
	logger *slog.Logger
}

func (h *handlers) postChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.chat.Answer(r.Context(), req.ChatInput())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ChatResponseFrom(out))
}

func (h *handlers) postLead(w http.ResponseWriter, r *http.Request) {
	var req LeadRequest
	if !h.decode(w, r, &req) {
		return
	}
	out, err := h.leads.Submit(r.Context(), req.LeadInput())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LeadResponse{Status: "ok", Emailed: out.Emailed})
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: string(usecase.ErrorInvalidInput), Reason: "body_too_large"})
			return false
		}
		status, body := InvalidBody()
		writeJSON(w, status, body)
		return false
	}
	return true
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := ErrorStatus(err)
	log := h.logger.With("request_id", middleware.GetReqID(r.Context()), "path", r.URL.Path)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "error", err, "code", body.Error, "reason", body.Reason)
	} else {
		log.Info("request rejected", "code", body.Error, "reason", body.Reason)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
