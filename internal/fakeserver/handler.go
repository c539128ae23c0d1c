package fakeserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler serves the message endpoint for a fixed set of application tokens.
type Handler struct {
	store  *MemoryStore
	tokens map[string]struct{}
	clock  func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler creates a Handler accepting the given application tokens.
func NewHandler(store *MemoryStore, tokens []string, opts ...HandlerOption) *Handler {
	h := &Handler{
		store:  store,
		tokens: make(map[string]struct{}, len(tokens)),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, token := range tokens {
		h.tokens[token] = struct{}{}
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	token := appTokenFromRequest(r)
	if _, ok := h.tokens[token]; !ok {
		writeError(w, http.StatusUnauthorized, "you need to provide a valid access token or user credentials to access this api")
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "unable to parse JSON payload")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Field 'message' is required")
		return
	}

	stored := h.store.Add(StoredMessage{
		AppToken: token,
		Title:    req.Title,
		Message:  req.Message,
		Priority: req.Priority,
		Date:     h.clock(),
	})
	writeJSON(w, http.StatusOK, stored)
}

// appTokenFromRequest returns the token from the query string or, failing
// that, the X-Gotify-Key header.
func appTokenFromRequest(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	return strings.TrimSpace(r.Header.Get("X-Gotify-Key"))
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type messageRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorCode        int    `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, description string) {
	writeJSON(w, status, errorResponse{
		Error:            http.StatusText(status),
		ErrorCode:        status,
		ErrorDescription: description,
	})
}
