package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"support-widget/internal/httpapi"
)

const correlationHeader = "X-Correlation-Id"

type Handler struct {
	chat   httpapi.ChatAnswerer
	leads  httpapi.LeadSubmitter
	logger *slog.Logger
	cors   httpapi.CORSPolicy
}

type Option func(*Handler)

// WithCORSOrigins answers preflight requests and adds CORS headers for the
// listed origins.
func WithCORSOrigins(origins []string) Option {
	return func(h *Handler) {
		h.cors = httpapi.NewCORSPolicy(origins)
	}
}

func NewHandler(chat httpapi.ChatAnswerer, leads httpapi.LeadSubmitter, logger *slog.Logger, opts ...Option) (*Handler, error) {
	if chat == nil {
		return nil, errors.New("handler: chat service must not be nil")
	}
	if leads == nil {
		return nil, errors.New("handler: lead service must not be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{chat: chat, leads: leads, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Handle serves API Gateway proxy events for /chat, /lead and /health.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := headerValue(req.Headers, correlationHeader)
	if correlationID == "" {
		correlationID = newUUID()
	}

	origin := headerValue(req.Headers, "Origin")
	var resp events.APIGatewayProxyResponse
	if httpapi.IsPreflight(req.HTTPMethod, origin, headerValue(req.Headers, "Access-Control-Request-Method")) {
		resp = events.APIGatewayProxyResponse{
			StatusCode: http.StatusNoContent,
			Headers:    map[string]string{correlationHeader: correlationID},
		}
	} else {
		resp = h.route(ctx, req, correlationID)
	}
	for k, v := range h.cors.Headers(origin) {
		resp.Headers[k] = v
	}
	return resp, nil
}

func (h *Handler) route(ctx context.Context, req events.APIGatewayProxyRequest, correlationID string) events.APIGatewayProxyResponse {
	log := h.logger.With("correlation_id", correlationID, "path", req.Path)

	route := routeOf(req.Path)
	switch {
	case route == "/health" && req.HTTPMethod == http.MethodGet:
		return respond(http.StatusOK, correlationID, map[string]string{"status": "ok"})
	case route != "/chat" && route != "/lead":
		return respond(http.StatusNotFound, correlationID, httpapi.ErrorResponse{Error: "NOT_FOUND"})
	case req.HTTPMethod != http.MethodPost:
		return respond(http.StatusMethodNotAllowed, correlationID, httpapi.ErrorResponse{Error: "METHOD_NOT_ALLOWED"})
	}

	body, err := requestBody(req)
	if err != nil {
		status, out := httpapi.InvalidBody()
		return respond(status, correlationID, out)
	}

	if route == "/chat" {
		var in httpapi.ChatRequest
		if err := json.Unmarshal(body, &in); err != nil {
			status, out := httpapi.InvalidBody()
			return respond(status, correlationID, out)
		}
		out, err := h.chat.Answer(ctx, in.ChatInput())
		if err != nil {
			return h.failure(log, correlationID, err)
		}
		return respond(http.StatusOK, correlationID, httpapi.ChatResponseFrom(out))
	}

	var in httpapi.LeadRequest
	if err := json.Unmarshal(body, &in); err != nil {
		status, out := httpapi.InvalidBody()
		return respond(status, correlationID, out)
	}
	out, err := h.leads.Submit(ctx, in.LeadInput())
	if err != nil {
		return h.failure(log, correlationID, err)
	}
	return respond(http.StatusOK, correlationID, httpapi.LeadResponse{Status: "ok", Emailed: out.Emailed})
}

func (h *Handler) failure(log *slog.Logger, correlationID string, err error) events.APIGatewayProxyResponse {
	status, out := httpapi.ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "error", err, "code", out.Error, "reason", out.Reason)
	} else {
		log.Info("request rejected", "code", out.Error, "reason", out.Reason)
	}
	return respond(status, correlationID, out)
}

func requestBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	if len(req.Body) > httpapi.MaxBodyBytes*2 {
		return nil, errors.New("body too large")
	}
	if req.IsBase64Encoded {
		b, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return []byte(req.Body), nil
}

// routeOf strips any stage or base path so "/prod/chat" routes as "/chat".
func routeOf(path string) string {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i:]
	}
	return "/" + path
}

func respond(status int, correlationID string, v any) events.APIGatewayProxyResponse {
	b, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		b = []byte(`{"error":"INTERNAL_ERROR"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: correlationID,
		},
		Body: string(b),
	}
}

func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

var newUUID = func() string {
	return uuid.NewString()
}
