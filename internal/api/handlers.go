package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/sharjeelz/famories/internal/apperr"
	"github.com/sharjeelz/famories/internal/assistant"
	"github.com/sharjeelz/famories/internal/family"
	"github.com/sharjeelz/famories/internal/foodlog"
	"github.com/sharjeelz/famories/internal/memories"
	"github.com/sharjeelz/famories/internal/models"
	"github.com/sharjeelz/famories/internal/session"
)

const maxBodyBytes = 1 << 20 // 1 MB for JSON bodies

// Handler holds API route handlers.
type Handler struct {
	memories *memories.Service
	family   *family.Service
	foodlog  *foodlog.Service
	ai       *assistant.Assistant
	sessions *session.Manager
}

// NewHandler creates a new Handler. ai may be nil when no completion
// backend is configured; assistant routes then report the service as
// unavailable.
func NewHandler(mem *memories.Service, fam *family.Service, food *foodlog.Service,
	ai *assistant.Assistant, sessions *session.Manager) *Handler {
	return &Handler{memories: mem, family: fam, foodlog: food, ai: ai, sessions: sessions}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// writeError maps domain errors to HTTP responses.
func writeError(w http.ResponseWriter, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
	case errors.Is(err, apperr.ErrServiceUnavailable),
		errors.Is(err, apperr.ErrMalformedAIResponse),
		errors.Is(err, apperr.ErrUnintelligibleAudio):
		writeJSON(w, http.StatusBadGateway, errorBody(err.Error()))
	default:
		slog.Error("request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// Unlock handles POST /session: plaintext PIN comparison, token out.
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sess, err := h.sessions.Unlock(req.PIN)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorBody("incorrect PIN"))
		return
	}
	writeJSON(w, http.StatusOK, UnlockResponse{Token: sess.Token})
}

// Logout handles DELETE /session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := sessionFrom(r); sess != nil {
		h.sessions.Logout(sess.Token)
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListMemories handles GET /memories.
func (h *Handler) ListMemories(w http.ResponseWriter, r *http.Request) {
	mems, err := h.memories.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MemoryListResponse{Memories: mems, Total: len(mems)})
}

// GetMemory handles GET /memories/{id}.
func (h *Handler) GetMemory(w http.ResponseWriter, r *http.Request) {
	m, err := h.memories.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// CreateMemory handles POST /memories.
func (h *Handler) CreateMemory(w http.ResponseWriter, r *http.Request) {
	var req MemoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	m, err := h.memories.Create(models.Memory{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Emotion:     req.Emotion,
		Tags:        req.Tags,
		People:      req.People,
		Location:    req.Location,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// UpdateMemory handles PUT /memories/{id}. The stored record is fully
// replaced; updating an unknown id leaves the collection unchanged and
// still returns the submitted record, matching the store contract.
func (h *Handler) UpdateMemory(w http.ResponseWriter, r *http.Request) {
	var req MemoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	m, err := h.memories.Update(models.Memory{
		ID:          chi.URLParam(r, "id"),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Emotion:     req.Emotion,
		Tags:        req.Tags,
		People:      req.People,
		Location:    req.Location,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// DeleteMemory handles DELETE /memories/{id}. Idempotent.
func (h *Handler) DeleteMemory(w http.ResponseWriter, r *http.Request) {
	if err := h.memories.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
