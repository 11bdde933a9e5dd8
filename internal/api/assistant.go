package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sharjeelz/famories/internal/apperr"
)

const noMemoriesMessage = "No memories found. Please add some first."

// Ask handles POST /assistant/ask. An empty memory collection is
// answered locally without a service call; service failures surface as
// inline errors and never change any collection.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("assistant is not configured"))
		return
	}
	var req AskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("question is required"))
		return
	}
	answer, err := h.ai.Ask(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, apperr.ErrNoMemories) {
			writeJSON(w, http.StatusOK, AskResponse{Answer: noMemoriesMessage})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AskResponse{Answer: answer})
}

// Insights handles GET /assistant/insights. Each call recomputes the
// summary and caches it on the session; when the backend fails, the
// previous cached summary (if any) is served with the error inline.
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("assistant is not configured"))
		return
	}
	sess := sessionFrom(r)

	summary, err := h.ai.Summarize(r.Context())
	if err != nil {
		if errors.Is(err, apperr.ErrNoMemories) {
			writeJSON(w, http.StatusOK, InsightsResponse{Summary: noMemoriesMessage})
			return
		}
		if sess != nil && sess.Summary != "" {
			writeJSON(w, http.StatusOK, InsightsResponse{
				Summary: sess.Summary,
				Cached:  true,
				Error:   "failed to fetch summary",
			})
			return
		}
		writeError(w, err)
		return
	}
	if sess != nil {
		h.sessions.SetSummary(sess.Token, summary)
	}
	writeJSON(w, http.StatusOK, InsightsResponse{Summary: summary})
}

// VoiceMemory handles POST /memories/voice: multipart "audio" field in,
// transcribed and categorized draft out. Nothing is stored; the client
// confirms by POSTing the draft to /memories.
func (h *Handler) VoiceMemory(w http.ResponseWriter, r *http.Request) {
	if h.ai == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("assistant is not configured"))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBytes)
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("audio too large or invalid multipart"))
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'audio' field in multipart form"))
		return
	}
	defer file.Close()

	draft, err := h.ai.CaptureVoice(r.Context(), file, header.Filename)
	if err != nil {
		if errors.Is(err, apperr.ErrUnintelligibleAudio) {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody("could not understand the audio"))
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

const maxAudioBytes = 25 << 20 // 25 MB, the transcription API cap
